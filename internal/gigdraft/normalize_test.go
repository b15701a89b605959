package gigdraft

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_StandardScenario(t *testing.T) {
	p := Normalize(validStandard())

	assert.True(t, p.Price.Equal(decimal.NewFromInt(25000)))
	require.NotNil(t, p.DeliveryTimeDays)
	require.NotNil(t, p.RevisionCount)
	assert.Equal(t, 3, *p.DeliveryTimeDays)
	assert.Equal(t, 2, *p.RevisionCount)
	assert.Nil(t, p.Packages)
	assert.Nil(t, p.Milestones)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, float64(25000), m["price"])
	assert.Equal(t, float64(3), m["deliveryTimeDays"])
	assert.Equal(t, float64(2), m["revisionCount"])
	assert.NotContains(t, m, "packages")
	assert.NotContains(t, m, "milestones")
}

func TestNormalize_StandardZeroRevisionsIsSent(t *testing.T) {
	d := Reduce(validStandard(), SetField{Field: FieldRevisionCount, Value: "0"})
	raw, err := json.Marshal(Normalize(d))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"revisionCount":0`)
}

func TestNormalize_Packages(t *testing.T) {
	d := ReduceAll(validStandard(),
		SetPricingMode{Mode: ModePackages},
		UpdatePackageField{Tier: TierBasic, Field: FieldEnabled, Value: true},
		UpdatePackageField{Tier: TierBasic, Field: FieldTitle, Value: "Basic"},
		UpdatePackageField{Tier: TierBasic, Field: FieldPrice, Value: "50000"},
		UpdatePackageField{Tier: TierBasic, Field: FieldDeliveryTimeDays, Value: "4"},
		UpdatePackageField{Tier: TierBasic, Field: FieldRevisionCount, Value: "1"},
		AddPackageFeature{Tier: TierBasic, Feature: "1 concept"},
		UpdatePackageField{Tier: TierPremium, Field: FieldTitle, Value: "dropped"},
	)
	p := Normalize(d)

	assert.Nil(t, p.DeliveryTimeDays)
	assert.Nil(t, p.RevisionCount)
	assert.Nil(t, p.Milestones)
	require.Len(t, p.Packages, 3)

	basic := p.Packages[TierBasic]
	require.True(t, basic.Enabled)
	require.NotNil(t, basic.PackageTerms)
	assert.Equal(t, "Basic", basic.Title)
	assert.True(t, basic.Price.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, 4, basic.DeliveryTimeDays)
	assert.Equal(t, 1, basic.RevisionCount)
	assert.Equal(t, []string{"1 concept"}, basic.Features)

	raw, err := json.Marshal(p.Packages[TierPremium])
	require.NoError(t, err)
	assert.JSONEq(t, `{"enabled":false}`, string(raw))

	raw, err = json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "deliveryTimeDays\":3")
	assert.NotContains(t, string(raw), "revisionCount\":2")
}

func TestNormalize_Milestones(t *testing.T) {
	d := ReduceAll(validStandard(),
		SetPricingMode{Mode: ModeMilestones},
		AddMilestone{}, AddMilestone{}, AddMilestone{},
		UpdateMilestoneField{Index: 0, Field: FieldTitle, Value: "  Research "},
		UpdateMilestoneField{Index: 0, Field: FieldPrice, Value: "1000.50"},
		UpdateMilestoneField{Index: 0, Field: FieldDeliveryTimeDays, Value: "2"},
		UpdateMilestoneField{Index: 2, Field: FieldTitle, Value: "Handover"},
		RemoveMilestone{Index: 1},
	)
	p := Normalize(d)

	assert.Nil(t, p.Packages)
	assert.Nil(t, p.DeliveryTimeDays)
	require.Len(t, p.Milestones, 2)
	assert.Equal(t, "Research", p.Milestones[0].Title)
	assert.True(t, p.Milestones[0].Price.Equal(decimal.RequireFromString("1000.5")))
	assert.Equal(t, 2, p.Milestones[0].DeliveryTimeDays)
	assert.Equal(t, 1, p.Milestones[0].Order)
	assert.Equal(t, "Handover", p.Milestones[1].Title)
	assert.Equal(t, 2, p.Milestones[1].Order)
}

func TestNormalize_NeverBothStructures(t *testing.T) {
	drafts := []Draft{
		newDraft(),
		Reduce(newDraft(), SetPricingMode{Mode: ModePackages}),
		ReduceAll(newDraft(), SetPricingMode{Mode: ModeMilestones}, AddMilestone{}),
		ReduceAll(newDraft(), SetPricingMode{Mode: ModeMilestones}, AddMilestone{}, SetPricingMode{Mode: ModeStandard}),
		ReduceAll(newDraft(), SetPricingMode{Mode: ModeMilestones}, AddMilestone{}, SetPricingMode{Mode: ModePackages}),
	}
	for i, d := range drafts {
		p := Normalize(d)
		assert.False(t, p.Packages != nil && p.Milestones != nil, "draft %d", i)
	}
}

func TestNormalize_DoesNotMutateDraft(t *testing.T) {
	d := ReduceAll(validStandard(), AddFeature{Value: "a"}, SetField{Field: FieldImages, Value: []any{"x.png"}})
	snapshot := ReduceAll(validStandard(), AddFeature{Value: "a"}, SetField{Field: FieldImages, Value: []any{"x.png"}})

	p := Normalize(d)
	p.Features[0] = "changed"
	p.Images[0] = "changed"

	assert.Equal(t, snapshot, d)
}

func TestNormalize_UnparseableCoercesToZero(t *testing.T) {
	d := Reduce(validStandard(), SetField{Field: FieldPrice, Value: "lots"})
	assert.True(t, Normalize(d).Price.IsZero())
}

func TestNormalize_EmitsValidatedNumbers(t *testing.T) {
	d := ReduceAll(validStandard(),
		SetField{Field: FieldPrice, Value: "2.5e4"},
		SetField{Field: FieldDeliveryTimeDays, Value: "7.9"},
	)
	require.Empty(t, Validate(d))

	p := Normalize(d)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(25000)))
	require.NotNil(t, p.DeliveryTimeDays)
	assert.Equal(t, 7, *p.DeliveryTimeDays)
}
