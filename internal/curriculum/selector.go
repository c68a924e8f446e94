package curriculum

// Recommendation is a single topic paired with the tier it belongs to.
type Recommendation struct {
	Topic string   `json:"conteudo"`
	Tier  TierName `json:"nivel"`
}

// Select returns every topic the semester unlocks, tier by tier in display order
// and topic by topic in declaration order. The semester must already be validated.
func Select(catalog Catalog, semester int) []Recommendation {
	out := make([]Recommendation, 0, catalog.TopicCount())
	for _, tier := range catalog.tiers {
		if semester < tier.MinSemester {
			continue
		}
		for _, topic := range tier.Topics {
			out = append(out, Recommendation{Topic: topic, Tier: tier.Name})
		}
	}
	return out
}
