package gigdraft

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	ActionSetField             = "SET_FIELD"
	ActionAddFeature           = "ADD_FEATURE"
	ActionRemoveFeature        = "REMOVE_FEATURE"
	ActionResetState           = "RESET_STATE"
	ActionSetPricingMode       = "SET_PRICING_MODE"
	ActionUpdatePackageField   = "UPDATE_PACKAGE_FIELD"
	ActionAddPackageFeature    = "ADD_PACKAGE_FEATURE"
	ActionRemovePackageFeature = "REMOVE_PACKAGE_FEATURE"
	ActionAddMilestone         = "ADD_MILESTONE"
	ActionUpdateMilestoneField = "UPDATE_MILESTONE_FIELD"
	ActionRemoveMilestone      = "REMOVE_MILESTONE"
)

var (
	ErrUnknownAction   = errors.New("unknown action type")
	ErrMalformedAction = errors.New("malformed action")
)

// Envelope is the JSON form of an action as sent by the editing client.
type Envelope struct {
	Type  string          `json:"type"`
	Field string          `json:"field,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
	Tier  Tier            `json:"tier,omitempty"`
	Index *int            `json:"index,omitempty"`
	Mode  PricingMode     `json:"mode,omitempty"`
	Patch *Patch          `json:"patch,omitempty"`
}

// Decode turns an envelope into a typed action. Unknown tiers, fields and
// indexes are not rejected here; the reducer treats them as no-ops.
func (e Envelope) Decode() (Action, error) {
	switch e.Type {
	case ActionSetField:
		v, err := e.value()
		if err != nil {
			return nil, err
		}
		return SetField{Field: e.Field, Value: v}, nil
	case ActionAddFeature, ActionRemoveFeature:
		s, err := e.stringValue()
		if err != nil {
			return nil, err
		}
		if e.Type == ActionAddFeature {
			return AddFeature{Value: s}, nil
		}
		return RemoveFeature{Value: s}, nil
	case ActionResetState:
		var p Patch
		if e.Patch != nil {
			p = *e.Patch
		}
		return ResetState{Patch: p}, nil
	case ActionSetPricingMode:
		return SetPricingMode{Mode: e.Mode}, nil
	case ActionUpdatePackageField:
		v, err := e.value()
		if err != nil {
			return nil, err
		}
		return UpdatePackageField{Tier: e.Tier, Field: e.Field, Value: v}, nil
	case ActionAddPackageFeature:
		s, err := e.stringValue()
		if err != nil {
			return nil, err
		}
		return AddPackageFeature{Tier: e.Tier, Feature: s}, nil
	case ActionRemovePackageFeature:
		i, err := e.index()
		if err != nil {
			return nil, err
		}
		return RemovePackageFeature{Tier: e.Tier, Index: i}, nil
	case ActionAddMilestone:
		return AddMilestone{}, nil
	case ActionUpdateMilestoneField:
		i, err := e.index()
		if err != nil {
			return nil, err
		}
		v, err := e.value()
		if err != nil {
			return nil, err
		}
		return UpdateMilestoneField{Index: i, Field: e.Field, Value: v}, nil
	case ActionRemoveMilestone:
		i, err := e.index()
		if err != nil {
			return nil, err
		}
		return RemoveMilestone{Index: i}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, e.Type)
}

// DecodeAll decodes envelopes in order and stops at the first bad one.
func DecodeAll(envs []Envelope) ([]Action, error) {
	out := make([]Action, 0, len(envs))
	for i, e := range envs {
		a, err := e.Decode()
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func (e Envelope) value() (any, error) {
	if len(e.Value) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(e.Value, &v); err != nil {
		return nil, fmt.Errorf("%w: value: %v", ErrMalformedAction, err)
	}
	return v, nil
}

func (e Envelope) stringValue() (string, error) {
	var s string
	if err := json.Unmarshal(e.Value, &s); err != nil {
		return "", fmt.Errorf("%w: %s expects a string value", ErrMalformedAction, e.Type)
	}
	return s, nil
}

func (e Envelope) index() (int, error) {
	if e.Index == nil {
		return 0, fmt.Errorf("%w: %s requires an index", ErrMalformedAction, e.Type)
	}
	return *e.Index, nil
}
