package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/gigstudio/internal/gigdraft"
)

func intPtr(v int) *int { return &v }

func TestGig_ApplyAndPayload_Standard(t *testing.T) {
	owner := uuid.New()
	in := gigdraft.Payload{
		UserID:           owner,
		Title:            "Logo",
		Category:         "Design",
		Description:      "Custom logo",
		ShortTitle:       "Logo",
		ShortDescription: "Fast logo",
		Cover:            "https://cdn.example.com/covers/a.png",
		Images:           []string{"https://cdn.example.com/a.png"},
		Features:         []string{"svg"},
		Price:            gigdraft.NewAmount(decimal.RequireFromString("25000")),
		DeliveryTimeDays: intPtr(3),
		RevisionCount:    intPtr(2),
	}

	var g Gig
	require.NoError(t, g.Apply(in))
	assert.Equal(t, "standard", g.PricingMode)
	assert.True(t, g.BasePrice.Equal(decimal.NewFromInt(25000)))
	assert.Nil(t, g.Packages)
	assert.Nil(t, g.Milestones)

	out, err := g.Payload()
	require.NoError(t, err)
	assert.Equal(t, in.Title, out.Title)
	assert.Equal(t, in.Images, out.Images)
	assert.Equal(t, in.Features, out.Features)
	assert.Equal(t, 3, *out.DeliveryTimeDays)
	assert.Equal(t, gigdraft.ModeStandard, out.Mode())
}

func TestGig_ApplyAndPayload_Packages(t *testing.T) {
	in := gigdraft.Payload{
		UserID:   uuid.New(),
		Title:    "Logo",
		Images:   []string{},
		Features: []string{},
		Packages: map[gigdraft.Tier]gigdraft.PackagePayload{
			gigdraft.TierBasic: {Enabled: true, PackageTerms: &gigdraft.PackageTerms{
				Title:            "Basic",
				Price:            gigdraft.NewAmount(decimal.NewFromInt(100)),
				DeliveryTimeDays: 2,
				RevisionCount:    1,
				Features:         []string{"1 concept"},
			}},
			gigdraft.TierStandard: {Enabled: false},
			gigdraft.TierPremium:  {Enabled: false},
		},
	}

	var g Gig
	require.NoError(t, g.Apply(in))
	assert.Equal(t, "packages", g.PricingMode)
	assert.JSONEq(t, `{"basic":{"enabled":true,"title":"Basic","description":"","price":100,"deliveryTimeDays":2,"revisionCount":1,"features":["1 concept"]},"standard":{"enabled":false},"premium":{"enabled":false}}`, string(g.Packages))

	out, err := g.Payload()
	require.NoError(t, err)
	require.Len(t, out.Packages, 3)
	assert.Nil(t, out.Packages[gigdraft.TierStandard].PackageTerms)
	assert.Equal(t, "Basic", out.Packages[gigdraft.TierBasic].Title)
	assert.Equal(t, gigdraft.ModePackages, out.Mode())
}

func TestGig_Apply_SwitchingModeClearsOther(t *testing.T) {
	g := Gig{Packages: []byte(`{"basic":{"enabled":true}}`)}
	require.NoError(t, g.Apply(gigdraft.Payload{
		Milestones: []gigdraft.MilestonePayload{{Title: "Draft", Order: 1}},
	}))
	assert.Nil(t, g.Packages)
	assert.Equal(t, "milestones", g.PricingMode)

	out, err := g.Payload()
	require.NoError(t, err)
	require.Len(t, out.Milestones, 1)
	assert.Equal(t, "Draft", out.Milestones[0].Title)
}

func TestGig_Payload_NullColumns(t *testing.T) {
	g := Gig{Images: []byte("null")}
	out, err := g.Payload()
	require.NoError(t, err)
	assert.Equal(t, []string{}, out.Images)
	assert.Nil(t, out.Packages)
}
