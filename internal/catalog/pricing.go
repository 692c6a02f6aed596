package catalog

import (
	"context"
	"fmt"
	"math"
)

// SettingsReader supplies the admin-configurable pricing inputs: the global
// discount percent and per-package base-price overrides.
type SettingsReader interface {
	DiscountPercent(ctx context.Context) (int, error)
	BasePriceOverride(ctx context.Context, slug string) (int, bool, error)
}

// Quote is a fully resolved price. Total is what gets stamped on the hold.
type Quote struct {
	PackageSlug     string `json:"package"`
	PackageName     string `json:"package_name"`
	BillingLabel    string `json:"billing_label"`
	BasePrice       int    `json:"base_price"`
	DiscountPercent int    `json:"discount_percent"`
	Surcharge       int    `json:"surcharge"`
	Total           int    `json:"total"`
}

// Resolver computes prices from the catalog and the settings store.
type Resolver struct {
	settings SettingsReader
}

// NewResolver builds a price resolver. settings may be nil, in which case
// defaults apply (no discount, no overrides).
func NewResolver(settings SettingsReader) *Resolver {
	return &Resolver{settings: settings}
}

// Price resolves the final price for a submission. customLines is only
// consulted for the customizable package. The discount applies to the base
// price only, rounded to the nearest dollar; the vehicle surcharge is added
// afterwards at full value.
func (r *Resolver) Price(ctx context.Context, slug string, customLines []string, vehicleSize string) (Quote, error) {
	pkg, ok := PackageBySlug(slug)
	if !ok {
		return Quote{}, fmt.Errorf("catalog: unknown package %q", slug)
	}
	surcharge, ok := SurchargeFor(vehicleSize)
	if !ok {
		return Quote{}, fmt.Errorf("catalog: unknown vehicle size %q", vehicleSize)
	}

	base := pkg.BasePrice
	if pkg.Customizable {
		var err error
		base, err = CustomBasePrice(customLines)
		if err != nil {
			return Quote{}, err
		}
	} else if r.settings != nil {
		override, found, err := r.settings.BasePriceOverride(ctx, slug)
		if err != nil {
			return Quote{}, fmt.Errorf("catalog: price override lookup: %w", err)
		}
		if found {
			base = override
		}
	}

	discount := 0
	if r.settings != nil {
		var err error
		discount, err = r.settings.DiscountPercent(ctx)
		if err != nil {
			return Quote{}, fmt.Errorf("catalog: discount lookup: %w", err)
		}
	}
	if discount < 0 || discount > 90 {
		discount = 0
	}

	discounted := int(math.Round(float64(base) * float64(100-discount) / 100))

	return Quote{
		PackageSlug:     pkg.Slug,
		PackageName:     pkg.Name,
		BillingLabel:    pkg.BillingLabel,
		BasePrice:       base,
		DiscountPercent: discount,
		Surcharge:       surcharge,
		Total:           discounted + surcharge,
	}, nil
}
