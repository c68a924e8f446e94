package curriculum

// EmptyMessage is shown instead of a blank region when nothing was recommended.
const EmptyMessage = "Nenhum conteúdo encontrado para este semestre."

// Group holds the topics of one non-empty tier.
type Group struct {
	Tier   TierName
	Topics []string
}

// View is the grouped, render-ready form of a recommendation list.
type View struct {
	Semester int
	Groups   []Group
	Total    int
	// Skipped counts entries whose tier is unknown; only remote payloads produce them.
	Skipped int
}

// Empty reports whether the view has nothing to show.
func (v View) Empty() bool {
	return v.Total == 0
}

// BuildView groups recs by tier in display order, dropping empty tiers.
func BuildView(semester int, recs []Recommendation) View {
	byTier := make(map[TierName][]string, len(DisplayOrder))
	view := View{Semester: semester}
	for _, rec := range recs {
		if !rec.Tier.Valid() {
			view.Skipped++
			continue
		}
		byTier[rec.Tier] = append(byTier[rec.Tier], rec.Topic)
		view.Total++
	}
	for _, tier := range DisplayOrder {
		topics := byTier[tier]
		if len(topics) == 0 {
			continue
		}
		view.Groups = append(view.Groups, Group{Tier: tier, Topics: topics})
	}
	return view
}
