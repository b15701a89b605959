package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/Windi-Fikriyansyah/gigstudio/internal/gigdraft"
)

type GigStatus string

const (
	GigStatusDraft     GigStatus = "draft"
	GigStatusReview    GigStatus = "review"
	GigStatusPublished GigStatus = "published"
	GigStatusRejected  GigStatus = "rejected"
)

func (s GigStatus) Valid() bool {
	switch s {
	case GigStatusDraft, GigStatusReview, GigStatusPublished, GigStatusRejected:
		return true
	}
	return false
}

type Gig struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Title            string `gorm:"not null" json:"title"`
	Category         string `gorm:"index" json:"category"`
	Subcategory      string `json:"subcategory"`
	Description      string `gorm:"type:text" json:"description"`
	ShortTitle       string `json:"short_title"`
	ShortDescription string `json:"short_description"`

	CoverURL string         `json:"cover_url"`
	Images   datatypes.JSON `json:"images"`   // ["https://..."]
	Features datatypes.JSON `json:"features"` // ["source files", ...]

	PricingMode      string          `gorm:"type:varchar(20);not null;default:'standard'" json:"pricing_mode"`
	BasePrice        decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"base_price"`
	DeliveryTimeDays *int            `json:"delivery_time_days,omitempty"`
	RevisionCount    *int            `json:"revision_count,omitempty"`

	// set only for the matching pricing mode
	Packages   datatypes.JSON `json:"packages"`   // { basic: {...}, standard: {...}, premium: {...} }
	Milestones datatypes.JSON `json:"milestones"` // [{ title, price, order, ... }]

	Status     GigStatus `gorm:"type:varchar(20);default:'draft';index" json:"status"`
	ReviewNote string    `json:"review_note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Apply copies a submission payload onto the gig. Identity, status and
// timestamps are left to the caller.
func (g *Gig) Apply(p gigdraft.Payload) error {
	images, err := encodeJSON(p.Images)
	if err != nil {
		return fmt.Errorf("images: %w", err)
	}
	features, err := encodeJSON(p.Features)
	if err != nil {
		return fmt.Errorf("features: %w", err)
	}

	g.UserID = p.UserID
	g.Title = p.Title
	g.Category = p.Category
	g.Subcategory = p.Subcategory
	g.Description = p.Description
	g.ShortTitle = p.ShortTitle
	g.ShortDescription = p.ShortDescription
	g.CoverURL = p.Cover
	g.Images = images
	g.Features = features
	g.PricingMode = string(p.Mode())
	g.BasePrice = p.Price.Decimal
	g.DeliveryTimeDays = p.DeliveryTimeDays
	g.RevisionCount = p.RevisionCount
	g.Packages = nil
	g.Milestones = nil

	if len(p.Packages) > 0 {
		if g.Packages, err = encodeJSON(p.Packages); err != nil {
			return fmt.Errorf("packages: %w", err)
		}
	}
	if len(p.Milestones) > 0 {
		if g.Milestones, err = encodeJSON(p.Milestones); err != nil {
			return fmt.Errorf("milestones: %w", err)
		}
	}
	return nil
}

// Payload converts the stored gig back to the submission shape, which is what
// an edit session is hydrated from.
func (g *Gig) Payload() (gigdraft.Payload, error) {
	p := gigdraft.Payload{
		UserID:           g.UserID,
		Title:            g.Title,
		Category:         g.Category,
		Subcategory:      g.Subcategory,
		Description:      g.Description,
		ShortTitle:       g.ShortTitle,
		ShortDescription: g.ShortDescription,
		Cover:            g.CoverURL,
		Images:           []string{},
		Features:         []string{},
		Price:            gigdraft.NewAmount(g.BasePrice),
		DeliveryTimeDays: g.DeliveryTimeDays,
		RevisionCount:    g.RevisionCount,
	}
	if err := decodeJSON(g.Images, &p.Images); err != nil {
		return p, fmt.Errorf("images: %w", err)
	}
	if err := decodeJSON(g.Features, &p.Features); err != nil {
		return p, fmt.Errorf("features: %w", err)
	}
	if err := decodeJSON(g.Packages, &p.Packages); err != nil {
		return p, fmt.Errorf("packages: %w", err)
	}
	if err := decodeJSON(g.Milestones, &p.Milestones); err != nil {
		return p, fmt.Errorf("milestones: %w", err)
	}
	return p, nil
}

func encodeJSON(v any) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// decodeJSON leaves dest untouched for an empty or null column.
func decodeJSON(raw datatypes.JSON, dest any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, dest)
}
