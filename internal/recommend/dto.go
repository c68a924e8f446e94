package recommend

import "curriculum-backend/internal/curriculum"

// Response is the success payload of POST /recommend.
type Response struct {
	Semester int                         `json:"semester"`
	Results  []curriculum.Recommendation `json:"results"`
}

// HealthResponse is the payload of GET /health.
type HealthResponse struct {
	Status        string `json:"status"`
	CatalogSource string `json:"catalog_source"`
	Tiers         int    `json:"tiers"`
	Topics        int    `json:"topics"`
}
