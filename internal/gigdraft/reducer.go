package gigdraft

import (
	"strings"

	"github.com/spf13/cast"
)

// Top-level field names accepted by SetField.
const (
	FieldTitle            = "title"
	FieldCategory         = "category"
	FieldSubcategory      = "subcategory"
	FieldDescription      = "description"
	FieldShortTitle       = "shortTitle"
	FieldShortDescription = "shortDescription"
	FieldCover            = "cover"
	FieldImages           = "images"
	FieldFeatures         = "features"
	FieldPrice            = "price"
	FieldDeliveryTimeDays = "deliveryTimeDays"
	FieldRevisionCount    = "revisionCount"
)

// Package and milestone field names.
const (
	FieldEnabled = "enabled"
	FieldOrder   = "order"
)

// Action is a single transition over a Draft. Implementations never mutate the
// draft they receive.
type Action interface {
	apply(d Draft) Draft
}

// Reduce applies a to d and returns the resulting draft. Actions that reference
// unknown fields, tiers or indexes return d unchanged.
func Reduce(d Draft, a Action) Draft {
	if a == nil {
		return d
	}
	return a.apply(d)
}

// ReduceAll folds actions over d in order.
func ReduceAll(d Draft, actions ...Action) Draft {
	for _, a := range actions {
		d = Reduce(d, a)
	}
	return d
}

type SetField struct {
	Field string
	Value any
}

func (a SetField) apply(d Draft) Draft {
	switch a.Field {
	case FieldImages, FieldFeatures:
		list, ok := stringsFrom(a.Value)
		if !ok {
			return d
		}
		if a.Field == FieldImages {
			d.Images = list
		} else {
			d.Features = list
		}
		return d
	case FieldPrice, FieldDeliveryTimeDays, FieldRevisionCount:
		n, ok := NumberInputFrom(a.Value)
		if !ok {
			return d
		}
		switch a.Field {
		case FieldPrice:
			d.Price = n
		case FieldDeliveryTimeDays:
			d.DeliveryTimeDays = n
		default:
			d.RevisionCount = n
		}
		return d
	}

	s, ok := stringFrom(a.Value)
	if !ok {
		return d
	}
	switch a.Field {
	case FieldTitle:
		d.Title = s
	case FieldCategory:
		d.Category = s
	case FieldSubcategory:
		d.Subcategory = s
	case FieldDescription:
		d.Description = s
	case FieldShortTitle:
		d.ShortTitle = s
	case FieldShortDescription:
		d.ShortDescription = s
	case FieldCover:
		d.Cover = s
	}
	return d
}

type AddFeature struct{ Value string }

func (a AddFeature) apply(d Draft) Draft {
	v := strings.TrimSpace(a.Value)
	if v == "" {
		return d
	}
	for _, f := range d.Features {
		if f == v {
			return d
		}
	}
	d.Features = appendCopy(d.Features, v)
	return d
}

// RemoveFeature matches the trimmed value, as stored by AddFeature.
type RemoveFeature struct{ Value string }

func (a RemoveFeature) apply(d Draft) Draft {
	v := strings.TrimSpace(a.Value)
	out := make([]string, 0, len(d.Features))
	for _, f := range d.Features {
		if f != v {
			out = append(out, f)
		}
	}
	if len(out) == len(d.Features) {
		return d
	}
	d.Features = out
	return d
}

// ResetState replaces the whole draft with the defaults merged with Patch. The
// owner of the current draft is kept.
type ResetState struct{ Patch Patch }

func (a ResetState) apply(d Draft) Draft {
	next := New(d.OwnerID)
	a.Patch.mergeInto(&next)
	return dropInactive(next)
}

// SetPricingMode switches the live pricing mode. Entering packages empties the
// milestone list and entering milestones resets every tier, also when the mode
// is already live; the data of the mode being entered is kept.
type SetPricingMode struct{ Mode PricingMode }

func (a SetPricingMode) apply(d Draft) Draft {
	if !a.Mode.Valid() {
		return d
	}
	d.PricingMode = a.Mode
	return dropInactive(d)
}

// dropInactive clears the structure that the live pricing mode excludes.
func dropInactive(d Draft) Draft {
	switch d.PricingMode {
	case ModePackages:
		d.Milestones = []Milestone{}
	case ModeMilestones:
		d.Packages = DefaultPackages()
	}
	return d
}

type UpdatePackageField struct {
	Tier  Tier
	Field string
	Value any
}

func (a UpdatePackageField) apply(d Draft) Draft {
	p, ok := d.Packages.Get(a.Tier)
	if !ok {
		return d
	}
	switch a.Field {
	case FieldEnabled:
		b, err := cast.ToBoolE(a.Value)
		if err != nil {
			return d
		}
		p.Enabled = b
	case FieldTitle, FieldDescription:
		s, ok := stringFrom(a.Value)
		if !ok {
			return d
		}
		if a.Field == FieldTitle {
			p.Title = s
		} else {
			p.Description = s
		}
	case FieldPrice, FieldDeliveryTimeDays, FieldRevisionCount:
		n, ok := NumberInputFrom(a.Value)
		if !ok {
			return d
		}
		switch a.Field {
		case FieldPrice:
			p.Price = n
		case FieldDeliveryTimeDays:
			p.DeliveryTimeDays = n
		default:
			p.RevisionCount = n
		}
	case FieldFeatures:
		list, ok := stringsFrom(a.Value)
		if !ok {
			return d
		}
		p.Features = list
	default:
		return d
	}
	d.Packages = d.Packages.With(a.Tier, p)
	return d
}

type AddPackageFeature struct {
	Tier    Tier
	Feature string
}

func (a AddPackageFeature) apply(d Draft) Draft {
	p, ok := d.Packages.Get(a.Tier)
	v := strings.TrimSpace(a.Feature)
	if !ok || v == "" {
		return d
	}
	p.Features = appendCopy(p.Features, v)
	d.Packages = d.Packages.With(a.Tier, p)
	return d
}

// RemovePackageFeature removes by position, unlike RemoveFeature which removes
// by value.
type RemovePackageFeature struct {
	Tier  Tier
	Index int
}

func (a RemovePackageFeature) apply(d Draft) Draft {
	p, ok := d.Packages.Get(a.Tier)
	if !ok || a.Index < 0 || a.Index >= len(p.Features) {
		return d
	}
	p.Features = removeAt(p.Features, a.Index)
	d.Packages = d.Packages.With(a.Tier, p)
	return d
}

type AddMilestone struct{}

func (AddMilestone) apply(d Draft) Draft {
	next := make([]Milestone, len(d.Milestones), len(d.Milestones)+1)
	copy(next, d.Milestones)
	d.Milestones = append(next, Milestone{Order: len(next) + 1})
	return d
}

type UpdateMilestoneField struct {
	Index int
	Field string
	Value any
}

func (a UpdateMilestoneField) apply(d Draft) Draft {
	if a.Index < 0 || a.Index >= len(d.Milestones) {
		return d
	}
	m := d.Milestones[a.Index]
	switch a.Field {
	case FieldTitle, FieldDescription:
		s, ok := stringFrom(a.Value)
		if !ok {
			return d
		}
		if a.Field == FieldTitle {
			m.Title = s
		} else {
			m.Description = s
		}
	case FieldPrice, FieldDeliveryTimeDays:
		n, ok := NumberInputFrom(a.Value)
		if !ok {
			return d
		}
		if a.Field == FieldPrice {
			m.Price = n
		} else {
			m.DeliveryTimeDays = n
		}
	default:
		return d
	}
	next := make([]Milestone, len(d.Milestones))
	copy(next, d.Milestones)
	next[a.Index] = m
	d.Milestones = next
	return d
}

type RemoveMilestone struct{ Index int }

func (a RemoveMilestone) apply(d Draft) Draft {
	if a.Index < 0 || a.Index >= len(d.Milestones) {
		return d
	}
	next := make([]Milestone, 0, len(d.Milestones)-1)
	next = append(next, d.Milestones[:a.Index]...)
	next = append(next, d.Milestones[a.Index+1:]...)
	d.Milestones = renumber(next)
	return d
}

// renumber rewrites Order as the 1-based position. It writes into ms.
func renumber(ms []Milestone) []Milestone {
	for i := range ms {
		ms[i].Order = i + 1
	}
	return ms
}

func stringFrom(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return t, true
	case bool, []any, map[string]any:
		return "", false
	}
	s, err := cast.ToStringE(v)
	return s, err == nil
}

func stringsFrom(v any) ([]string, bool) {
	if v == nil {
		return []string{}, true
	}
	if _, isString := v.(string); isString {
		return nil, false
	}
	list, err := cast.ToStringSliceE(v)
	if err != nil {
		return nil, false
	}
	out := make([]string, len(list))
	copy(out, list)
	return out, true
}

func appendCopy(list []string, v string) []string {
	out := make([]string, len(list), len(list)+1)
	copy(out, list)
	return append(out, v)
}

func removeAt(list []string, i int) []string {
	out := make([]string, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}
