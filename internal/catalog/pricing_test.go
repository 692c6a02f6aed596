package catalog

import (
	"context"
	"testing"
)

type fakeSettings struct {
	discount  int
	overrides map[string]int
}

func (f *fakeSettings) DiscountPercent(ctx context.Context) (int, error) {
	return f.discount, nil
}

func (f *fakeSettings) BasePriceOverride(ctx context.Context, slug string) (int, bool, error) {
	v, ok := f.overrides[slug]
	return v, ok, nil
}

func TestPriceDiscountAndSurcharge(t *testing.T) {
	// Base $149 at 10% discounts to 134.1 -> 134, then suv adds $20.
	r := NewResolver(&fakeSettings{discount: 10})
	q, err := r.Price(context.Background(), "full-detail", nil, "suv")
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	if q.Total != 154 {
		t.Errorf("total = %d, want 154", q.Total)
	}
	if q.BasePrice != 149 || q.Surcharge != 20 || q.DiscountPercent != 10 {
		t.Errorf("quote = %+v", q)
	}
}

func TestPriceDiscountAppliesToBaseOnly(t *testing.T) {
	r := NewResolver(&fakeSettings{discount: 50})
	q, err := r.Price(context.Background(), "exterior-detail", nil, "truck")
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	// 99 -> 49.5 rounds to 50; the $35 surcharge is never discounted.
	if q.Total != 85 {
		t.Errorf("total = %d, want 85", q.Total)
	}
}

func TestPriceCustomPackageIgnoresClientTotals(t *testing.T) {
	r := NewResolver(&fakeSettings{})
	q, err := r.Price(context.Background(), "custom-detail", []string{"ext-only", "wax"}, "sedan")
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	if q.BasePrice != 105 || q.Total != 105 {
		t.Errorf("custom quote = %+v, want base and total 105", q)
	}
}

func TestPriceCustomPackageUnknownLine(t *testing.T) {
	r := NewResolver(&fakeSettings{})
	if _, err := r.Price(context.Background(), "custom-detail", []string{"ext-only", "nonexistent"}, "sedan"); err == nil {
		t.Error("expected error for unknown service line")
	}
}

func TestPriceOverrideWins(t *testing.T) {
	r := NewResolver(&fakeSettings{overrides: map[string]int{"full-detail": 199}})
	q, err := r.Price(context.Background(), "full-detail", nil, "sedan")
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	if q.Total != 199 {
		t.Errorf("total = %d, want 199", q.Total)
	}
}

func TestPriceUnknownInputs(t *testing.T) {
	r := NewResolver(&fakeSettings{})
	if _, err := r.Price(context.Background(), "gold-plating", nil, "sedan"); err == nil {
		t.Error("expected error for unknown package")
	}
	if _, err := r.Price(context.Background(), "full-detail", nil, "hovercraft"); err == nil {
		t.Error("expected error for unknown vehicle size")
	}
}

func TestPriceNilSettings(t *testing.T) {
	r := NewResolver(nil)
	q, err := r.Price(context.Background(), "interior-detail", nil, "sedan")
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	if q.Total != 119 || q.DiscountPercent != 0 {
		t.Errorf("quote = %+v, want default pricing", q)
	}
}

func TestCustomBasePrice(t *testing.T) {
	total, err := CustomBasePrice([]string{"interior-vacuum", "shampoo", "engine-bay"})
	if err != nil {
		t.Fatalf("custom base price: %v", err)
	}
	if total != 140 {
		t.Errorf("total = %d, want 140", total)
	}
	if _, err := CustomBasePrice(nil); err == nil {
		t.Error("expected error for empty selection")
	}
}

func TestSeatMaterialRequirementFlag(t *testing.T) {
	ext, _ := PackageBySlug("exterior-detail")
	if ext.RequiresInteriorDetails {
		t.Error("exterior-detail must not require interior details")
	}
	for _, slug := range []string{"interior-detail", "full-detail", "custom-detail"} {
		p, ok := PackageBySlug(slug)
		if !ok || !p.RequiresInteriorDetails {
			t.Errorf("%s should require interior details", slug)
		}
	}
}
