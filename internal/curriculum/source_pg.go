package curriculum

import (
	"context"
	"database/sql"
	"fmt"
)

// PGSource reads the catalog from the curriculum_tiers and curriculum_topics tables.
type PGSource struct {
	DB *sql.DB
}

func (s *PGSource) Load(ctx context.Context) (Catalog, error) {
	if s == nil || s.DB == nil {
		return Catalog{}, fmt.Errorf("postgres catalog source not configured")
	}
	const query = `
SELECT t.name, t.min_semester, p.title
FROM curriculum_tiers t
LEFT JOIN curriculum_topics p ON p.tier_name = t.name
ORDER BY t.position, p.position`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return Catalog{}, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var tiers []Tier
	for rows.Next() {
		var name string
		var minSemester int
		var title sql.NullString
		if err := rows.Scan(&name, &minSemester, &title); err != nil {
			return Catalog{}, fmt.Errorf("scan catalog row: %w", err)
		}
		if len(tiers) == 0 || tiers[len(tiers)-1].Name != TierName(name) {
			tiers = append(tiers, Tier{Name: TierName(name), MinSemester: minSemester})
		}
		if title.Valid {
			last := &tiers[len(tiers)-1]
			last.Topics = append(last.Topics, title.String)
		}
	}
	if err := rows.Err(); err != nil {
		return Catalog{}, fmt.Errorf("iterate catalog rows: %w", err)
	}
	return NewCatalog("postgres", tiers...)
}
