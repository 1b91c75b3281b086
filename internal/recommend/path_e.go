package recommend

import "github.com/avoskres/career-compass/internal/interview"

// builderPicks builds the recommendation for the strongest profile: education
// with related experience. The field leads; the interview mostly decides
// between deepening and stepping sideways.
func builderPicks(s *interview.SessionState) picks {
	eduField := s.AnswerString("education_field")
	expField := s.AnswerString("experience_field")

	core := append([]string(nil), experienceDirections[expField]...)
	core = append(core, educationDirections[eduField]...)

	var workNow []string
	switch s.AnswerString("stay_or_switch") {
	case "fresh_start":
		workNow = append([]string{"customer_support", "retail_service", "warehouse_operations"}, core...)
	case "adjacent_field":
		workNow = append(adjacentDirections(expField), core...)
	default:
		workNow = append(core, adjacentDirections(expField)...)
	}
	workNow = applyConstraints(s, workNow)

	later := applyConstraints(s, []string{"logistics_coordination", "it_support_helpdesk"})

	fallback := "logistics_coordination"
	if prefersTasks(s) {
		fallback = "quality_inspection"
	}

	return picks{
		workNow:      workNow,
		improveLater: later,
		avoid:        constraintAvoids(s),
		summary:      "Your education and experience reinforce each other, which puts you in the strongest position of all five profiles; aim one level up, not sideways.",
		nextStep:     "Target roles one step above your last one and let your combined track record argue for you.",
		fallback:     fallback,
	}
}
