package recommend

import "github.com/avoskres/career-compass/internal/interview"

// pivotPicks builds the recommendation for the education-plus-unrelated-
// experience profile. The stay-or-switch answer decides whether the degree or
// the work history leads the shortlist.
func pivotPicks(s *interview.SessionState) picks {
	eduField := s.AnswerString("education_field")
	expField := s.AnswerString("experience_field")

	fromEducation := append([]string(nil), educationDirections[eduField]...)
	fromExperience := append([]string(nil), experienceDirections[expField]...)

	var workNow []string
	switch s.AnswerString("stay_or_switch") {
	case "stay_in_field":
		// "Field" for a pivot profile means the field they actually work in.
		workNow = append(fromExperience, fromEducation...)
	case "fresh_start":
		workNow = append([]string{"warehouse_operations", "retail_service"}, fromEducation...)
	default:
		workNow = append(fromEducation, fromExperience...)
	}
	workNow = append(workNow, "logistics_coordination")
	workNow = applyConstraints(s, workNow)

	var later []string
	if readyForCourse(s) {
		later = applyConstraints(s, []string{"it_support_helpdesk", "logistics_coordination", "skilled_trades_helper"})
	}

	fallback := "office_administration"
	if prefersTasks(s) {
		fallback = "quality_inspection"
	}

	return picks{
		workNow:      workNow,
		improveLater: later,
		avoid:        constraintAvoids(s),
		summary:      "You bring two assets at once, a degree and real work experience, even if they point in different directions; the best moves combine them.",
		nextStep:     "Write down which of your two tracks you enjoyed more, then apply along that one first.",
		fallback:     fallback,
	}
}
