// Package catalog defines the detail packages, custom service lines and
// vehicle surcharges, and resolves the final price stamped onto a hold.
package catalog

import "fmt"

// Package is a bookable detail package.
type Package struct {
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	BasePrice    int    `json:"base_price"`
	BillingLabel string `json:"billing_label"`
	// RequiresInteriorDetails gates the seat-material requirement on
	// submissions. Exterior-only work has no use for interior fields.
	RequiresInteriorDetails bool `json:"requires_interior_details"`
	// Customizable marks the build-your-own package whose base price is
	// the sum of its selected service lines.
	Customizable bool `json:"customizable"`
}

// ServiceLine is a single selectable service in the customizable package.
type ServiceLine struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

var packages = []Package{
	{Slug: "exterior-detail", Name: "Exterior Detail", BasePrice: 99, BillingLabel: "one-time"},
	{Slug: "interior-detail", Name: "Interior Detail", BasePrice: 119, BillingLabel: "one-time", RequiresInteriorDetails: true},
	{Slug: "full-detail", Name: "Full Detail", BasePrice: 149, BillingLabel: "one-time", RequiresInteriorDetails: true},
	{Slug: "custom-detail", Name: "Build Your Own", BillingLabel: "one-time", RequiresInteriorDetails: true, Customizable: true},
}

var serviceLines = []ServiceLine{
	{ID: "ext-only", Name: "Exterior Wash & Decontamination", Price: 65},
	{ID: "wax", Name: "Hand Wax & Sealant", Price: 40},
	{ID: "interior-vacuum", Name: "Interior Vacuum & Wipe-Down", Price: 45},
	{ID: "shampoo", Name: "Carpet & Upholstery Shampoo", Price: 60},
	{ID: "engine-bay", Name: "Engine Bay Cleaning", Price: 35},
	{ID: "headlight-restore", Name: "Headlight Restoration", Price: 50},
}

// vehicleSurcharges are flat add-ons by size class, applied after the
// discount. The default class carries no surcharge.
var vehicleSurcharges = map[string]int{
	"sedan": 0,
	"suv":   20,
	"truck": 35,
}

// Packages returns all bookable packages.
func Packages() []Package {
	out := make([]Package, len(packages))
	copy(out, packages)
	return out
}

// PackageBySlug looks up a package definition.
func PackageBySlug(slug string) (Package, bool) {
	for _, p := range packages {
		if p.Slug == slug {
			return p, true
		}
	}
	return Package{}, false
}

// ServiceLines returns the selectable lines for the customizable package.
func ServiceLines() []ServiceLine {
	out := make([]ServiceLine, len(serviceLines))
	copy(out, serviceLines)
	return out
}

// CustomBasePrice sums the prices of the submitted service-line ids. The
// total is always recomputed server-side; client-supplied totals are never
// trusted.
func CustomBasePrice(lineIDs []string) (int, error) {
	if len(lineIDs) == 0 {
		return 0, fmt.Errorf("catalog: no services selected")
	}
	total := 0
	for _, id := range lineIDs {
		found := false
		for _, line := range serviceLines {
			if line.ID == id {
				total += line.Price
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("catalog: unknown service %q", id)
		}
	}
	return total, nil
}

// SurchargeFor returns the flat surcharge for a vehicle size class.
func SurchargeFor(size string) (int, bool) {
	s, ok := vehicleSurcharges[size]
	return s, ok
}

// VehicleSizes lists the accepted size classes.
func VehicleSizes() []string {
	return []string{"sedan", "suv", "truck"}
}
