package recommend

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/avoskres/career-compass/internal/interview"
)

const (
	whyBullets    = 3
	avoidEntries  = 2
	maxDirections = 3
)

// Generic avoid fillers used to pad the avoid list up to its fixed size when
// fewer than two real constraints apply.
var genericAvoid = []string{
	"Roles with no training or growth on offer",
	"Unstructured gig work without a contract",
}

// picks is the intermediate output of a path generator: direction ids plus
// narrative, before catalog materialization and preference refinement.
type picks struct {
	workNow      []string
	improveLater []string
	avoid        []string
	summary      string
	nextStep     string
	fallback     string
}

// Build turns a completed session into the final recommendation. Selection is
// fully deterministic: generators choose from the fixed catalog using locked
// answers only, then the preference refiner reorders and filters the set.
func Build(state *interview.SessionState, logger *zap.Logger) (*interview.Result, error) {
	if state == nil {
		return nil, fmt.Errorf("session state is required")
	}

	var p picks
	switch state.Path {
	case interview.PathFreshStart:
		p = freshStartPicks(state)
	case interview.PathPractical:
		p = practicalPicks(state)
	case interview.PathGraduate:
		p = graduatePicks(state)
	case interview.PathPivot:
		p = pivotPicks(state)
	case interview.PathBuilder:
		p = builderPicks(state)
	default:
		return nil, fmt.Errorf("no generator for path %q", state.Path)
	}

	result := &interview.Result{
		Summary:  p.summary,
		WorkNow:  materialize(p.workNow),
		Avoid:    padAvoid(p.avoid),
		NextStep: p.nextStep,
	}
	if later := materialize(p.improveLater); len(later) > 0 {
		result.ImproveLater = later
	}

	// At least one work-now direction is guaranteed even when every candidate
	// was filtered out by constraints.
	if len(result.WorkNow) == 0 {
		if d, ok := direction(p.fallback); ok {
			result.WorkNow = []interview.Direction{d}
		}
	}

	Refine(state, result, logger)

	if len(result.WorkNow) == 0 {
		// The refiner only filters when an alternative remains, so this is a
		// rule bug rather than a data condition.
		return nil, fmt.Errorf("path %q produced no work-now directions", state.Path)
	}

	return result, nil
}

// materialize resolves ids against the catalog, dropping unknowns and
// duplicates and capping the list at the direction budget.
func materialize(ids []string) []interview.Direction {
	seen := map[string]bool{}
	out := make([]interview.Direction, 0, maxDirections)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		d, ok := direction(id)
		if !ok {
			continue
		}
		seen[id] = true
		out = append(out, d)
		if len(out) == maxDirections {
			break
		}
	}
	return out
}

// padAvoid dedupes the avoid entries and pads or trims to the fixed size.
func padAvoid(entries []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, avoidEntries)
	for _, entry := range entries {
		if entry == "" || seen[entry] {
			continue
		}
		seen[entry] = true
		out = append(out, entry)
		if len(out) == avoidEntries {
			return out
		}
	}
	for _, filler := range genericAvoid {
		if len(out) == avoidEntries {
			break
		}
		if seen[filler] {
			continue
		}
		seen[filler] = true
		out = append(out, filler)
	}
	return out
}

// Shared constraint readers used across generators.

func avoidsHeavyWork(s *interview.SessionState) bool {
	return s.AnswerString("physical_ability") == "health_limitations"
}

func limitedPhysically(s *interview.SessionState) bool {
	switch s.AnswerString("physical_ability") {
	case "health_limitations", "some_limitations":
		return true
	}
	return false
}

func prefersTasks(s *interview.SessionState) bool {
	return s.AnswerString("people_comfort") == "prefer_tasks"
}

func lovesPeople(s *interview.SessionState) bool {
	return s.AnswerString("people_comfort") == "love_it"
}

func readyForCourse(s *interview.SessionState) bool {
	return s.AnswerString("learning_appetite") == "ready_for_course"
}

// applyConstraints drops candidates that collide with hard constraints from
// the locked answers: heavy directions for health limitations, customer-facing
// directions for task-focused people.
func applyConstraints(s *interview.SessionState, ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if avoidsHeavyWork(s) && HasTrait(id, TraitPhysical) {
			continue
		}
		if prefersTasks(s) && HasTrait(id, TraitCustomerFacing) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// constraintAvoids derives avoid entries from the same hard constraints.
func constraintAvoids(s *interview.SessionState) []string {
	var out []string
	if limitedPhysically(s) {
		out = append(out, "Heavy lifting and hard manual labor")
	}
	if prefersTasks(s) {
		out = append(out, "Front-line roles with constant customer pressure")
	}
	if s.AnswerString("learning_appetite") == "not_now" {
		out = append(out, "Roles demanding certification before the first day")
	}
	return out
}
