package gigdraft

import (
	"bytes"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Amount is a decimal that encodes as a bare JSON number.
type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) Amount { return Amount{Decimal: d} }

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}
	return a.Decimal.UnmarshalJSON(b)
}

// Payload is the wire shape a gig is persisted with. At most one of Packages and
// Milestones is set.
type Payload struct {
	UserID uuid.UUID `json:"userId"`

	Title            string   `json:"title"`
	Category         string   `json:"category"`
	Subcategory      string   `json:"subcategory"`
	Description      string   `json:"description"`
	ShortTitle       string   `json:"shortTitle"`
	ShortDescription string   `json:"shortDescription"`
	Cover            string   `json:"cover"`
	Images           []string `json:"images"`
	Features         []string `json:"features"`

	Price            Amount `json:"price"`
	DeliveryTimeDays *int   `json:"deliveryTimeDays,omitempty"`
	RevisionCount    *int   `json:"revisionCount,omitempty"`

	Packages   map[Tier]PackagePayload `json:"packages,omitempty"`
	Milestones []MilestonePayload      `json:"milestones,omitempty"`
}

// PackagePayload encodes a disabled tier as {"enabled":false}; the terms are
// only present for enabled tiers.
type PackagePayload struct {
	Enabled bool `json:"enabled"`
	*PackageTerms
}

type PackageTerms struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Price            Amount   `json:"price"`
	DeliveryTimeDays int      `json:"deliveryTimeDays"`
	RevisionCount    int      `json:"revisionCount"`
	Features         []string `json:"features"`
}

type MilestonePayload struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Price            Amount `json:"price"`
	DeliveryTimeDays int    `json:"deliveryTimeDays"`
	Order            int    `json:"order"`
}

// Mode derives the pricing mode from the substructures present.
func (p Payload) Mode() PricingMode {
	switch {
	case len(p.Packages) > 0:
		return ModePackages
	case len(p.Milestones) > 0:
		return ModeMilestones
	}
	return ModeStandard
}
