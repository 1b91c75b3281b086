package recommend

import "github.com/avoskres/career-compass/internal/interview"

// educationDirections maps a study field to the directions where the degree
// pays off without prior work experience.
var educationDirections = map[string][]string{
	"business_economics": {"office_administration", "logistics_coordination"},
	"engineering_it":     {"it_support_helpdesk", "quality_inspection"},
	"health_social":      {"care_assistance", "customer_support"},
	"arts_humanities":    {"customer_support", "retail_service"},
	"science":            {"quality_inspection", "it_support_helpdesk"},
}

// graduatePicks builds the recommendation for graduates without work
// experience: degree-adjacent entry roles first, environment wishes second.
func graduatePicks(s *interview.SessionState) picks {
	field := s.AnswerString("education_field")

	workNow := append([]string(nil), educationDirections[field]...)
	for _, env := range s.AnswerList("work_environment") {
		if id, ok := environmentDirections[env]; ok {
			workNow = append(workNow, id)
		}
	}
	if lovesPeople(s) {
		workNow = append(workNow, "customer_support")
	}
	workNow = append(workNow, "office_administration")
	workNow = applyConstraints(s, workNow)

	later := applyConstraints(s, []string{"logistics_coordination", "it_support_helpdesk"})

	return picks{
		workNow:      workNow,
		improveLater: later,
		avoid:        constraintAvoids(s),
		summary:      "Your education opens entry roles that value exactly what you studied; the first position matters less than getting moving.",
		nextStep:     "Apply to entry roles in your strongest direction and name your degree early in every application.",
		fallback:     "office_administration",
	}
}
