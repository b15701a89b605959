package gigdraft

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Normalize converts d into the payload sent to the persistence layer. It does
// not validate; callers gate on Validate first. d is left untouched.
func Normalize(d Draft) Payload {
	p := Payload{
		UserID:           d.OwnerID,
		Title:            d.Title,
		Category:         d.Category,
		Subcategory:      d.Subcategory,
		Description:      d.Description,
		ShortTitle:       d.ShortTitle,
		ShortDescription: d.ShortDescription,
		Cover:            d.Cover,
		Images:           append([]string{}, d.Images...),
		Features:         append([]string{}, d.Features...),
		Price:            amountOf(d.Price),
	}

	switch d.PricingMode {
	case ModePackages:
		p.Packages = make(map[Tier]PackagePayload, len(Tiers))
		for _, t := range Tiers {
			pkg, _ := d.Packages.Get(t)
			p.Packages[t] = normalizePackage(pkg)
		}
	case ModeMilestones:
		if len(d.Milestones) > 0 {
			p.Milestones = make([]MilestonePayload, len(d.Milestones))
			for i, m := range d.Milestones {
				p.Milestones[i] = MilestonePayload{
					Title:            strings.TrimSpace(m.Title),
					Description:      m.Description,
					Price:            amountOf(m.Price),
					DeliveryTimeDays: intOf(m.DeliveryTimeDays),
					Order:            i + 1,
				}
			}
		}
	default:
		days := intOf(d.DeliveryTimeDays)
		revisions := intOf(d.RevisionCount)
		p.DeliveryTimeDays = &days
		p.RevisionCount = &revisions
	}

	return p
}

func normalizePackage(pkg Package) PackagePayload {
	if !pkg.Enabled {
		return PackagePayload{Enabled: false}
	}
	return PackagePayload{
		Enabled: true,
		PackageTerms: &PackageTerms{
			Title:            pkg.Title,
			Description:      pkg.Description,
			Price:            amountOf(pkg.Price),
			DeliveryTimeDays: intOf(pkg.DeliveryTimeDays),
			RevisionCount:    intOf(pkg.RevisionCount),
			Features:         append([]string{}, pkg.Features...),
		},
	}
}

// Unparseable input coerces to zero; Validate is what rejects it.
func amountOf(n NumberInput) Amount {
	d, ok := n.Amount()
	if !ok {
		return NewAmount(decimal.Zero)
	}
	return NewAmount(d)
}

func intOf(n NumberInput) int {
	v, _ := n.Int()
	return v
}
