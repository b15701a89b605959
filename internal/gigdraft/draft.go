// Package gigdraft models a gig listing while it is being authored: the draft
// shape, the transitions a form can apply to it, the business-rule validation and
// the normalization into the payload the persistence layer accepts.
package gigdraft

import (
	"github.com/google/uuid"
)

type PricingMode string

const (
	ModeStandard   PricingMode = "standard"
	ModePackages   PricingMode = "packages"
	ModeMilestones PricingMode = "milestones"
)

func (m PricingMode) Valid() bool {
	return m == ModeStandard || m == ModePackages || m == ModeMilestones
}

type Tier string

const (
	TierBasic    Tier = "basic"
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

// Tiers lists the package tiers in evaluation and display order.
var Tiers = []Tier{TierBasic, TierStandard, TierPremium}

func (t Tier) Valid() bool {
	return t == TierBasic || t == TierStandard || t == TierPremium
}

type Package struct {
	Enabled          bool        `json:"enabled"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Price            NumberInput `json:"price"`
	DeliveryTimeDays NumberInput `json:"deliveryTimeDays"`
	RevisionCount    NumberInput `json:"revisionCount"`
	Features         []string    `json:"features"`
}

// PackageSet always holds the three fixed tiers.
type PackageSet struct {
	Basic    Package `json:"basic"`
	Standard Package `json:"standard"`
	Premium  Package `json:"premium"`
}

// Get returns the tier's package; ok is false for an unknown tier.
func (s PackageSet) Get(t Tier) (Package, bool) {
	switch t {
	case TierBasic:
		return s.Basic, true
	case TierStandard:
		return s.Standard, true
	case TierPremium:
		return s.Premium, true
	}
	return Package{}, false
}

// With returns a copy of s with the tier replaced. Unknown tiers leave s as is.
func (s PackageSet) With(t Tier, p Package) PackageSet {
	switch t {
	case TierBasic:
		s.Basic = p
	case TierStandard:
		s.Standard = p
	case TierPremium:
		s.Premium = p
	}
	return s
}

func (s PackageSet) AnyEnabled() bool {
	return s.Basic.Enabled || s.Standard.Enabled || s.Premium.Enabled
}

type Milestone struct {
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Price            NumberInput `json:"price"`
	DeliveryTimeDays NumberInput `json:"deliveryTimeDays"`
	Order            int         `json:"order"`
}

// Draft is the editable representation of a gig. Only the substructure selected
// by PricingMode is live; the other one is kept until the opposite mode is entered.
type Draft struct {
	OwnerID uuid.UUID `json:"ownerId"`

	Title            string   `json:"title"`
	Category         string   `json:"category"`
	Subcategory      string   `json:"subcategory"`
	Description      string   `json:"description"`
	ShortTitle       string   `json:"shortTitle"`
	ShortDescription string   `json:"shortDescription"`
	Cover            string   `json:"cover"`
	Images           []string `json:"images"`
	Features         []string `json:"features"`

	Price            NumberInput `json:"price"`
	DeliveryTimeDays NumberInput `json:"deliveryTimeDays"`
	RevisionCount    NumberInput `json:"revisionCount"`

	PricingMode PricingMode `json:"pricingMode"`
	Packages    PackageSet  `json:"packages"`
	Milestones  []Milestone `json:"milestones"`
}

// New returns the default draft for owner.
func New(owner uuid.UUID) Draft {
	return Draft{
		OwnerID:     owner,
		Images:      []string{},
		Features:    []string{},
		PricingMode: ModeStandard,
		Packages:    DefaultPackages(),
		Milestones:  []Milestone{},
	}
}

func DefaultPackage() Package {
	return Package{Features: []string{}}
}

func DefaultPackages() PackageSet {
	return PackageSet{
		Basic:    DefaultPackage(),
		Standard: DefaultPackage(),
		Premium:  DefaultPackage(),
	}
}

func (d Draft) HasPackages() bool   { return d.PricingMode == ModePackages }
func (d Draft) HasMilestones() bool { return d.PricingMode == ModeMilestones }
