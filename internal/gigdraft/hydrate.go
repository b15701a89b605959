package gigdraft

import "strconv"

// Hydrate builds the ResetState action that loads a persisted gig into a draft.
// The pricing mode is derived from the substructures present; a record carrying
// both packages and milestones opens in packages mode and its milestones are
// dropped.
func Hydrate(p Payload) ResetState {
	mode := p.Mode()
	patch := Patch{
		Title:            strPtr(p.Title),
		Category:         strPtr(p.Category),
		Subcategory:      strPtr(p.Subcategory),
		Description:      strPtr(p.Description),
		ShortTitle:       strPtr(p.ShortTitle),
		ShortDescription: strPtr(p.ShortDescription),
		Cover:            strPtr(p.Cover),
		Images:           nonNil(p.Images),
		Features:         nonNil(p.Features),
		Price:            numPtr(p.Price.String()),
		PricingMode:      &mode,
	}
	if p.DeliveryTimeDays != nil {
		patch.DeliveryTimeDays = numPtr(strconv.Itoa(*p.DeliveryTimeDays))
	}
	if p.RevisionCount != nil {
		patch.RevisionCount = numPtr(strconv.Itoa(*p.RevisionCount))
	}

	switch mode {
	case ModePackages:
		set := DefaultPackages()
		for _, t := range Tiers {
			pp, ok := p.Packages[t]
			if !ok {
				continue
			}
			set = set.With(t, packageFromPayload(pp))
		}
		patch.Packages = &set
	case ModeMilestones:
		ms := make([]Milestone, len(p.Milestones))
		for i, m := range p.Milestones {
			ms[i] = Milestone{
				Title:            m.Title,
				Description:      m.Description,
				Price:            NumberInput(m.Price.String()),
				DeliveryTimeDays: NumberInput(strconv.Itoa(m.DeliveryTimeDays)),
				Order:            i + 1,
			}
		}
		patch.Milestones = ms
	}

	return ResetState{Patch: patch}
}

func packageFromPayload(pp PackagePayload) Package {
	pkg := DefaultPackage()
	pkg.Enabled = pp.Enabled
	if pp.PackageTerms == nil {
		return pkg
	}
	pkg.Title = pp.Title
	pkg.Description = pp.Description
	pkg.Price = NumberInput(pp.PackageTerms.Price.String())
	pkg.DeliveryTimeDays = NumberInput(strconv.Itoa(pp.DeliveryTimeDays))
	pkg.RevisionCount = NumberInput(strconv.Itoa(pp.RevisionCount))
	pkg.Features = nonNil(pp.Features)
	return pkg
}

func strPtr(s string) *string { return &s }

func numPtr(s string) *NumberInput {
	n := NumberInput(s)
	return &n
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return append([]string{}, list...)
}
