package recommend

import "github.com/avoskres/career-compass/internal/interview"

// experienceDirections maps a past work field to the directions it carries
// over to, strongest first.
var experienceDirections = map[string][]string{
	"trades":              {"skilled_trades_helper", "facility_maintenance"},
	"warehouse_logistics": {"warehouse_operations", "logistics_coordination"},
	"customer_service":    {"customer_support", "retail_service"},
	"office_admin":        {"office_administration"},
	"care_health":         {"care_assistance"},
	"transport_driving":   {"delivery_driving", "logistics_coordination"},
}

// practicalPicks builds the recommendation for experienced workers without a
// formal qualification. Their field carries most of the weight unless they
// explicitly want a fresh start.
func practicalPicks(s *interview.SessionState) picks {
	field := s.AnswerString("experience_field")
	stay := s.AnswerString("stay_or_switch")

	var workNow []string
	switch stay {
	case "fresh_start":
		workNow = append(workNow, "warehouse_operations", "production_assembly", "security_services")
	case "adjacent_field":
		workNow = append(workNow, adjacentDirections(field)...)
		workNow = append(workNow, experienceDirections[field]...)
	default:
		workNow = append(workNow, experienceDirections[field]...)
		workNow = append(workNow, adjacentDirections(field)...)
	}
	workNow = append(workNow, "facility_maintenance")
	workNow = applyConstraints(s, workNow)

	var later []string
	if readyForCourse(s) {
		later = applyConstraints(s, []string{"logistics_coordination", "skilled_trades_helper", "security_services"})
	}

	fallback := "production_assembly"
	if avoidsHeavyWork(s) {
		fallback = "office_administration"
	}

	return picks{
		workNow:      workNow,
		improveLater: later,
		avoid:        constraintAvoids(s),
		summary:      "Your hands-on experience is worth more than you may think: employers in these directions hire for exactly what you have done.",
		nextStep:     "Update your CV around your strongest practical skills and contact two employers directly.",
		fallback:     fallback,
	}
}

// adjacentDirections returns the step-up or sideways moves for a field.
func adjacentDirections(field string) []string {
	switch field {
	case "trades":
		return []string{"facility_maintenance", "quality_inspection"}
	case "warehouse_logistics":
		return []string{"logistics_coordination", "quality_inspection"}
	case "customer_service":
		return []string{"office_administration", "it_support_helpdesk"}
	case "office_admin":
		return []string{"logistics_coordination", "customer_support"}
	case "care_health":
		return []string{"customer_support", "retail_service"}
	case "transport_driving":
		return []string{"warehouse_operations", "security_services"}
	}
	return []string{"warehouse_operations"}
}
