package gigdraft

import (
	"fmt"
	"strings"
)

// Error keys reported by Validate.
const (
	ErrKeyTitle            = "title"
	ErrKeyCategory         = "category"
	ErrKeyDescription      = "description"
	ErrKeyShortTitle       = "shortTitle"
	ErrKeyShortDescription = "shortDescription"
	ErrKeyPackages         = "packages"
	ErrKeyMilestones       = "milestones"
	ErrKeyPrice            = "price"
	ErrKeyDeliveryTime     = "deliveryTime"
	ErrKeyRevisions        = "revisions"
)

const maxRevisions = 10

// Errors maps a field key to a user-facing message.
type Errors map[string]string

func (e Errors) Empty() bool { return len(e) == 0 }

// Validate runs every business rule over d. The result is empty when d can be
// submitted.
//
// Inside the packages and milestones checks every failure writes the same key,
// so only the last failing check survives.
func Validate(d Draft) Errors {
	errs := Errors{}

	required(errs, ErrKeyTitle, d.Title, "Title is required")
	required(errs, ErrKeyCategory, d.Category, "Please select a category")
	required(errs, ErrKeyDescription, d.Description, "Description is required")
	required(errs, ErrKeyShortTitle, d.ShortTitle, "Short title is required")
	required(errs, ErrKeyShortDescription, d.ShortDescription, "Short description is required")

	switch d.PricingMode {
	case ModePackages:
		validatePackages(errs, d.Packages)
	case ModeMilestones:
		validateMilestones(errs, d.Milestones)
	default:
		if msg := daysProblem(d.DeliveryTimeDays); msg != "" {
			errs[ErrKeyDeliveryTime] = "Delivery time " + msg
		}
		if !d.RevisionCount.Between(0, maxRevisions) {
			errs[ErrKeyRevisions] = fmt.Sprintf("Revisions must be between 0 and %d", maxRevisions)
		}
		if msg := amountProblem(d.Price); msg != "" {
			errs[ErrKeyPrice] = "Price " + msg
		}
	}

	return errs
}

func required(errs Errors, key, value, msg string) {
	if strings.TrimSpace(value) == "" {
		errs[key] = msg
	}
}

func validatePackages(errs Errors, set PackageSet) {
	if !set.AnyEnabled() {
		errs[ErrKeyPackages] = "Enable at least one package"
		return
	}
	for _, t := range Tiers {
		p, _ := set.Get(t)
		if !p.Enabled {
			continue
		}
		name := tierLabel(t)
		if msg := amountProblem(p.Price); msg != "" {
			errs[ErrKeyPackages] = name + " package: price " + msg
		}
		if msg := daysProblem(p.DeliveryTimeDays); msg != "" {
			errs[ErrKeyPackages] = name + " package: delivery time " + msg
		}
		if !p.RevisionCount.Between(0, maxRevisions) {
			errs[ErrKeyPackages] = fmt.Sprintf("%s package: revisions must be between 0 and %d", name, maxRevisions)
		}
	}
}

func validateMilestones(errs Errors, ms []Milestone) {
	if len(ms) == 0 {
		errs[ErrKeyMilestones] = "Add at least one milestone"
		return
	}
	for i, m := range ms {
		if strings.TrimSpace(m.Title) == "" {
			errs[ErrKeyMilestones] = fmt.Sprintf("Milestone %d: title is required", i+1)
		}
		if msg := amountProblem(m.Price); msg != "" {
			errs[ErrKeyMilestones] = fmt.Sprintf("Milestone %d: price %s", i+1, msg)
		}
		if msg := daysProblem(m.DeliveryTimeDays); msg != "" {
			errs[ErrKeyMilestones] = fmt.Sprintf("Milestone %d: delivery time %s", i+1, msg)
		}
	}
}

// amountProblem returns the message tail for an unacceptable amount, or "".
func amountProblem(n NumberInput) string {
	if !n.AtLeast(1) {
		return "must be at least 1"
	}
	if _, ok := n.Amount(); !ok {
		return "is too large"
	}
	return ""
}

func daysProblem(n NumberInput) string {
	if !n.AtLeast(1) {
		return "must be at least 1 day"
	}
	if _, ok := n.Int(); !ok {
		return "is too large"
	}
	return ""
}

func tierLabel(t Tier) string {
	s := string(t)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
