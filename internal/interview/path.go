package interview

// PathID identifies one of the five career-transition profiles.
type PathID string

const (
	// PathFreshStart: no education, no experience.
	PathFreshStart PathID = "path_a"
	// PathPractical: work experience without formal education.
	PathPractical PathID = "path_b"
	// PathGraduate: education without work experience.
	PathGraduate PathID = "path_c"
	// PathPivot: education plus unrelated (or uncertain) experience.
	PathPivot PathID = "path_d"
	// PathBuilder: education plus related experience.
	PathBuilder PathID = "path_e"
)

// AllPaths lists every path in canonical order.
var AllPaths = []PathID{PathFreshStart, PathPractical, PathGraduate, PathPivot, PathBuilder}

// ValidPath reports whether p names a known path.
func ValidPath(p PathID) bool {
	for _, known := range AllPaths {
		if p == known {
			return true
		}
	}
	return false
}

// ResolvePath maps the three classification answers to a path. It is total:
// any combination of answers, including missing or unexpected relation values,
// resolves to exactly one path.
func ResolvePath(c Classification) PathID {
	edu := c.Education == AnswerYes
	exp := c.Experience == AnswerYes

	switch {
	case !edu && !exp:
		return PathFreshStart
	case !edu && exp:
		return PathPractical
	case edu && !exp:
		return PathGraduate
	}

	// Education and experience both present. Only an explicit "yes" on the
	// relation question counts as related; "no", "not_sure" and anything
	// else (including absence) lands on the pivot path.
	if c.ExperienceRelated == AnswerYes {
		return PathBuilder
	}
	return PathPivot
}
