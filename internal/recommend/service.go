package recommend

import (
	"errors"
	"time"

	"curriculum-backend/internal/curriculum"
	"curriculum-backend/internal/shared/metrics"
)

var ErrCatalogNotLoaded = errors.New("catalog not loaded")

// Service validates input and runs the selector against one immutable catalog.
type Service struct {
	Catalog curriculum.Catalog
}

func NewService(catalog curriculum.Catalog) *Service {
	return &Service{Catalog: catalog}
}

// Recommend validates raw and returns the parsed semester and its recommendations.
// Validation errors wrap the curriculum sentinels.
func (s *Service) Recommend(raw any) (int, []curriculum.Recommendation, error) {
	semester, err := curriculum.ParseSemester(raw)
	if err != nil {
		metrics.IncValidationFailed()
		return 0, nil, err
	}
	if s == nil || s.Catalog.Empty() {
		metrics.IncRecommendFailed()
		return 0, nil, ErrCatalogNotLoaded
	}
	start := time.Now()
	recs := curriculum.Select(s.Catalog, semester)
	metrics.ObserveDuration(time.Since(start))
	metrics.IncRecommendRequests()
	metrics.AddResults(len(recs))
	return semester, recs, nil
}

// Health summarizes the loaded catalog.
func (s *Service) Health() HealthResponse {
	if s == nil || s.Catalog.Empty() {
		return HealthResponse{Status: "degraded"}
	}
	return HealthResponse{
		Status:        "ok",
		CatalogSource: s.Catalog.Source(),
		Tiers:         len(s.Catalog.Tiers()),
		Topics:        s.Catalog.TopicCount(),
	}
}

// IsValidation reports whether err came from semester validation.
func IsValidation(err error) bool {
	return errors.Is(err, curriculum.ErrSemesterMissing) ||
		errors.Is(err, curriculum.ErrSemesterInvalid) ||
		errors.Is(err, curriculum.ErrSemesterNotPositive)
}
