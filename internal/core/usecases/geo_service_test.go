package usecases_test

import (
	"context"
	"math"
	"testing"

	"github.com/strategickhaos/pipetrades/internal/core/usecases"
)

func TestGeoService_Decode(t *testing.T) {
	svc := usecases.NewGeoService(nil)

	area, err := svc.Decode(context.Background(), "86285MHH+P8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if area.South >= area.North || area.West >= area.East {
		t.Errorf("degenerate area: %+v", area)
	}
}

func TestGeoService_DecodeCaches(t *testing.T) {
	cache := newMockCache()
	svc := usecases.NewGeoService(cache)

	first, err := svc.Decode(context.Background(), "86285MHH+P8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cache.store) != 1 {
		t.Fatalf("expected 1 cached entry, got %d", len(cache.store))
	}

	second, err := svc.Decode(context.Background(), "86285MHH+P8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.hits != 1 {
		t.Errorf("expected 1 cache hit, got %d", cache.hits)
	}
	if *first != *second {
		t.Errorf("cached decode differs: %+v vs %+v", first, second)
	}
}

func TestGeoService_DecodeErrorNotCached(t *testing.T) {
	cache := newMockCache()
	svc := usecases.NewGeoService(cache)

	if _, err := svc.Decode(context.Background(), "5MHH+P8G"); err == nil {
		t.Fatal("expected error for unanchored short code")
	}
	if len(cache.store) != 0 {
		t.Errorf("failed decode must not be cached, got %d entries", len(cache.store))
	}
}

func TestGeoService_Distance(t *testing.T) {
	svc := usecases.NewGeoService(nil)

	ft := svc.Distance(30.2266, -93.2174, 30.2366, -93.3774, "ft")
	mi := svc.Distance(30.2266, -93.2174, 30.2366, -93.3774, "mi")
	if math.Abs(mi-ft/5280) > 1e-9 {
		t.Errorf("mile conversion off: %f vs %f", mi, ft/5280)
	}
}

func TestGeoService_Hypotenuse(t *testing.T) {
	svc := usecases.NewGeoService(nil)
	if got := svc.Hypotenuse(3, 4); got != 5 {
		t.Errorf("expected 5, got %f", got)
	}
}
