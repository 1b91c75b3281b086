package recommend

import (
	"go.uber.org/zap"

	"github.com/avoskres/career-compass/internal/interview"
)

// Refiner is a single preference-driven re-ranking step. Refiners only
// reorder or drop directions from the deterministic candidate set; they never
// add anything the generator did not select.
type Refiner interface {
	Name() string
	Apply(s *interview.SessionState, r *interview.Result) bool
}

// refiners run in fixed order after every generator.
var refiners = []Refiner{
	workStyleRefiner{},
	customerRefiner{},
	drivingRefiner{},
}

// Refine applies the preference gate to a generated result.
func Refine(s *interview.SessionState, r *interview.Result, logger *zap.Logger) {
	for _, step := range refiners {
		changed := step.Apply(s, r)
		if changed && logger != nil {
			logger.Debug("preference refiner applied",
				zap.String("refiner", step.Name()),
				zap.Int("work_now_left", len(r.WorkNow)),
			)
		}
	}
}

type workStyleRefiner struct{}

func (workStyleRefiner) Name() string { return "work_style" }

func (workStyleRefiner) Apply(s *interview.SessionState, r *interview.Result) bool {
	switch s.PreferenceString("work_style") {
	case "fixed_place":
		return dropByTrait(r, TraitDriving)
	case "moving_delivery":
		return promoteByTrait(r, TraitDriving)
	}
	return false
}

type customerRefiner struct{}

func (customerRefiner) Name() string { return "customer_interaction" }

func (customerRefiner) Apply(s *interview.SessionState, r *interview.Result) bool {
	switch s.PreferenceString("customer_interaction") {
	case "avoid":
		return dropByTrait(r, TraitCustomerFacing)
	case "daily_fine":
		return promoteByTrait(r, TraitCustomerFacing)
	}
	return false
}

type drivingRefiner struct{}

func (drivingRefiner) Name() string { return "driving_interest" }

func (drivingRefiner) Apply(s *interview.SessionState, r *interview.Result) bool {
	switch s.PreferenceString("driving_interest") {
	case "no":
		return dropByTrait(r, TraitDriving)
	case "yes":
		return promoteByTrait(r, TraitDriving)
	}
	return false
}

// dropByTrait removes matching directions from the work-now list, but never
// empties it: a lone remaining direction survives regardless of preference.
func dropByTrait(r *interview.Result, trait Trait) bool {
	kept := make([]interview.Direction, 0, len(r.WorkNow))
	for _, d := range r.WorkNow {
		if HasTrait(d.ID, trait) {
			continue
		}
		kept = append(kept, d)
	}
	if len(kept) == 0 || len(kept) == len(r.WorkNow) {
		return false
	}
	r.WorkNow = kept
	return true
}

// promoteByTrait moves the first matching direction to the front of the
// work-now list.
func promoteByTrait(r *interview.Result, trait Trait) bool {
	for i, d := range r.WorkNow {
		if !HasTrait(d.ID, trait) {
			continue
		}
		if i == 0 {
			return false
		}
		promoted := append([]interview.Direction{d}, append(append([]interview.Direction(nil), r.WorkNow[:i]...), r.WorkNow[i+1:]...)...)
		r.WorkNow = promoted
		return true
	}
	return false
}
