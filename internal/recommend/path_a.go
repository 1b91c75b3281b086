package recommend

import "github.com/avoskres/career-compass/internal/interview"

// environmentDirections maps a preferred work environment to its entry-level
// direction.
var environmentDirections = map[string]string{
	"outdoors":    "groundskeeping_outdoor",
	"workshop":    "production_assembly",
	"office":      "office_administration",
	"retail":      "retail_service",
	"warehouse":   "warehouse_operations",
	"on_the_road": "delivery_driving",
}

// freshStartPicks builds the recommendation for the no-education,
// no-experience profile. The environment answer drives the shortlist; course
// appetite opens the improve-later ladder.
func freshStartPicks(s *interview.SessionState) picks {
	var workNow []string
	for _, env := range s.AnswerList("work_environment") {
		if id, ok := environmentDirections[env]; ok {
			workNow = append(workNow, id)
		}
	}

	if lovesPeople(s) {
		workNow = append(workNow, "retail_service", "customer_support")
	}
	workNow = append(workNow, "warehouse_operations", "production_assembly")
	workNow = applyConstraints(s, workNow)

	var later []string
	if readyForCourse(s) {
		later = []string{"it_support_helpdesk", "skilled_trades_helper", "security_services"}
		later = applyConstraints(s, later)
	}

	fallback := "warehouse_operations"
	if avoidsHeavyWork(s) {
		fallback = "quality_inspection"
	}

	return picks{
		workNow:      workNow,
		improveLater: later,
		avoid:        constraintAvoids(s),
		summary:      "You are starting fresh, and that is a real advantage: the doors below open fast and teach you on the job.",
		nextStep:     "Pick one work-now direction and apply to three openings this week.",
		fallback:     fallback,
	}
}
