package recommend

import (
	"testing"

	"go.uber.org/zap"

	"github.com/avoskres/career-compass/internal/interview"
)

func sessionFor(t *testing.T, path interview.PathID, answers map[string]any) *interview.SessionState {
	t.Helper()
	s := interview.NewSession("test")
	s.Phase = interview.PhasePath
	s.Path = path
	for field, value := range answers {
		if err := s.Commit(field, value); err != nil {
			t.Fatalf("commit %s: %v", field, err)
		}
	}
	return s
}

func checkShape(t *testing.T, r *interview.Result) {
	t.Helper()
	if len(r.WorkNow) < 1 || len(r.WorkNow) > 3 {
		t.Fatalf("work_now must hold 1..3 directions, got %d", len(r.WorkNow))
	}
	if len(r.Avoid) != 2 {
		t.Fatalf("avoid must hold exactly 2 entries, got %v", r.Avoid)
	}
	if r.Avoid[0] == r.Avoid[1] {
		t.Fatalf("avoid entries must be unique, got %v", r.Avoid)
	}
	for _, list := range [][]interview.Direction{r.WorkNow, r.ImproveLater} {
		for _, d := range list {
			if len(d.Why) != 3 {
				t.Fatalf("direction %s must carry 3 why bullets, got %d", d.ID, len(d.Why))
			}
		}
	}
	if r.Summary == "" || r.NextStep == "" {
		t.Fatalf("summary and next_step are required")
	}
}

func TestBuildShapeForEveryPath(t *testing.T) {
	cases := []struct {
		name    string
		path    interview.PathID
		answers map[string]any
	}{
		{"fresh start", interview.PathFreshStart, map[string]any{
			"physical_ability":    "no_limitations",
			"work_environment":    []string{"warehouse", "outdoors"},
			"people_comfort":      "fine_in_doses",
			"schedule_preference": "shifts_ok",
			"learning_appetite":   "ready_for_course",
			"motivation":          []string{"stability"},
		}},
		{"practical", interview.PathPractical, map[string]any{
			"experience_field":    "trades",
			"trade_type":          "electrical",
			"physical_ability":    "no_limitations",
			"stay_or_switch":      "stay_in_field",
			"people_comfort":      "fine_in_doses",
			"schedule_preference": "regular_hours",
			"learning_appetite":   "ready_for_course",
		}},
		{"graduate", interview.PathGraduate, map[string]any{
			"education_field":     "engineering_it",
			"work_environment":    []string{"office"},
			"people_comfort":      "love_it",
			"schedule_preference": "regular_hours",
			"motivation":          []string{"growth"},
		}},
		{"pivot", interview.PathPivot, map[string]any{
			"education_field":   "arts_humanities",
			"experience_field":  "warehouse_logistics",
			"warehouse_specialization": "forklift",
			"stay_or_switch":    "adjacent_field",
			"physical_ability":  "some_limitations",
			"people_comfort":    "prefer_tasks",
			"learning_appetite": "on_the_job_only",
		}},
		{"builder", interview.PathBuilder, map[string]any{
			"education_field":     "business_economics",
			"experience_field":    "office_admin",
			"stay_or_switch":      "stay_in_field",
			"people_comfort":      "love_it",
			"schedule_preference": "regular_hours",
			"motivation":          []string{"growth", "income"},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := sessionFor(t, tc.path, tc.answers)
			r, err := Build(s, zap.NewNop())
			if err != nil {
				t.Fatalf("build failed: %v", err)
			}
			checkShape(t, r)
		})
	}
}

func TestBuildFailsForUnknownPath(t *testing.T) {
	s := interview.NewSession("test")
	s.Path = "path_z"
	if _, err := Build(s, zap.NewNop()); err == nil {
		t.Fatalf("expected an error for an unknown path")
	}
}

func TestHealthLimitationsExcludePhysicalDirections(t *testing.T) {
	s := sessionFor(t, interview.PathFreshStart, map[string]any{
		"physical_ability":    "health_limitations",
		"work_environment":    []string{"warehouse", "outdoors"},
		"people_comfort":      "prefer_tasks",
		"schedule_preference": "regular_hours",
		"learning_appetite":   "not_now",
		"motivation":          []string{"stability"},
	})

	r, err := Build(s, zap.NewNop())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	checkShape(t, r)

	for _, d := range r.WorkNow {
		if HasTrait(d.ID, TraitPhysical) {
			t.Fatalf("physically demanding direction %s survived health limitations", d.ID)
		}
		if HasTrait(d.ID, TraitCustomerFacing) {
			t.Fatalf("customer-facing direction %s survived task preference", d.ID)
		}
	}
}

func TestFallbackDirectionWhenEverythingFiltered(t *testing.T) {
	// Warehouse-and-outdoors wishes collide with hard constraints across the
	// board; the default direction still has to appear.
	s := sessionFor(t, interview.PathFreshStart, map[string]any{
		"physical_ability":    "health_limitations",
		"work_environment":    []string{"warehouse", "workshop"},
		"people_comfort":      "prefer_tasks",
		"schedule_preference": "regular_hours",
		"learning_appetite":   "not_now",
		"motivation":          []string{"stability"},
	})

	r, err := Build(s, zap.NewNop())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(r.WorkNow) == 0 {
		t.Fatalf("work_now must never be empty")
	}
}

func TestAvoidListDerivedFromConstraints(t *testing.T) {
	s := sessionFor(t, interview.PathFreshStart, map[string]any{
		"physical_ability":    "health_limitations",
		"work_environment":    []string{"office"},
		"people_comfort":      "prefer_tasks",
		"schedule_preference": "regular_hours",
		"learning_appetite":   "ready_for_course",
		"motivation":          []string{"stability"},
	})

	r, err := Build(s, zap.NewNop())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if r.Avoid[0] != "Heavy lifting and hard manual labor" {
		t.Fatalf("expected physical constraint first in avoid, got %v", r.Avoid)
	}
	if r.Avoid[1] != "Front-line roles with constant customer pressure" {
		t.Fatalf("expected people constraint second in avoid, got %v", r.Avoid)
	}
}

func TestPadAvoid(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want int
	}{
		{"empty input pads with fillers", nil, 2},
		{"single entry pads once", []string{"custom"}, 2},
		{"duplicates collapse then pad", []string{"same", "same"}, 2},
		{"overflow trims", []string{"a", "b", "c"}, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := padAvoid(tc.in)
			if len(got) != tc.want {
				t.Fatalf("expected %d entries, got %v", tc.want, got)
			}
			if got[0] == got[1] {
				t.Fatalf("padded entries must be unique: %v", got)
			}
		})
	}
}

func TestCatalogBulletDiscipline(t *testing.T) {
	for id, def := range directionCatalog {
		if len(def.Why) != 3 {
			t.Fatalf("direction %s has %d why bullets", id, len(def.Why))
		}
		if def.Title == "" {
			t.Fatalf("direction %s has no title", id)
		}
	}
}
