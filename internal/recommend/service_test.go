package recommend

import (
	"errors"
	"testing"

	"curriculum-backend/internal/curriculum"
)

func TestServiceRejectsBeforeSelecting(t *testing.T) {
	svc := NewService(curriculum.DefaultCatalog())
	for _, raw := range []any{nil, "", 0, -1, "x"} {
		_, recs, err := svc.Recommend(raw)
		if err == nil || !IsValidation(err) {
			t.Fatalf("Recommend(%#v): expected validation error, got %v", raw, err)
		}
		if recs != nil {
			t.Fatalf("Recommend(%#v): selector must not run", raw)
		}
	}
}

func TestServiceWithoutCatalog(t *testing.T) {
	var svc *Service
	if _, _, err := svc.Recommend(3); !errors.Is(err, ErrCatalogNotLoaded) {
		t.Fatalf("expected ErrCatalogNotLoaded, got %v", err)
	}
	if IsValidation(ErrCatalogNotLoaded) {
		t.Fatalf("catalog error is not a validation error")
	}
}
