package gigdraft

// Patch is a partial draft. Nil fields keep their default when merged by
// ResetState.
type Patch struct {
	Title            *string `json:"title,omitempty"`
	Category         *string `json:"category,omitempty"`
	Subcategory      *string `json:"subcategory,omitempty"`
	Description      *string `json:"description,omitempty"`
	ShortTitle       *string `json:"shortTitle,omitempty"`
	ShortDescription *string `json:"shortDescription,omitempty"`
	Cover            *string `json:"cover,omitempty"`

	Images   []string `json:"images,omitempty"`
	Features []string `json:"features,omitempty"`

	Price            *NumberInput `json:"price,omitempty"`
	DeliveryTimeDays *NumberInput `json:"deliveryTimeDays,omitempty"`
	RevisionCount    *NumberInput `json:"revisionCount,omitempty"`

	PricingMode *PricingMode `json:"pricingMode,omitempty"`
	Packages    *PackageSet  `json:"packages,omitempty"`
	Milestones  []Milestone  `json:"milestones,omitempty"`
}

func (p Patch) mergeInto(d *Draft) {
	setString(&d.Title, p.Title)
	setString(&d.Category, p.Category)
	setString(&d.Subcategory, p.Subcategory)
	setString(&d.Description, p.Description)
	setString(&d.ShortTitle, p.ShortTitle)
	setString(&d.ShortDescription, p.ShortDescription)
	setString(&d.Cover, p.Cover)

	if p.Images != nil {
		d.Images = append([]string{}, p.Images...)
	}
	if p.Features != nil {
		d.Features = append([]string{}, p.Features...)
	}

	setNumber(&d.Price, p.Price)
	setNumber(&d.DeliveryTimeDays, p.DeliveryTimeDays)
	setNumber(&d.RevisionCount, p.RevisionCount)

	if p.PricingMode != nil && p.PricingMode.Valid() {
		d.PricingMode = *p.PricingMode
	}
	if p.Packages != nil {
		d.Packages = PackageSet{
			Basic:    withFeatures(p.Packages.Basic),
			Standard: withFeatures(p.Packages.Standard),
			Premium:  withFeatures(p.Packages.Premium),
		}
	}
	if p.Milestones != nil {
		d.Milestones = renumber(append([]Milestone{}, p.Milestones...))
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setNumber(dst *NumberInput, v *NumberInput) {
	if v != nil {
		*dst = *v
	}
}

func withFeatures(p Package) Package {
	p.Features = append([]string{}, p.Features...)
	return p
}
