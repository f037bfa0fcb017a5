package interview

// ComplexityLabel maps a complexity value to its four-way difficulty label.
func ComplexityLabel(v int) string {
	switch {
	case v <= 25:
		return "Easy"
	case v <= 50:
		return "Medium-Low"
	case v <= 75:
		return "Medium-High"
	default:
		return "Hard"
	}
}

// ComplexityDescription returns the longer description accompanying the
// difficulty label, following the same four-way partition.
func ComplexityDescription(v int) string {
	switch {
	case v <= 25:
		return "Fundamental questions covering definitions and basic usage."
	case v <= 50:
		return "Applied questions that require working knowledge and some reasoning."
	case v <= 75:
		return "Scenario-driven questions probing design trade-offs and debugging."
	default:
		return "Expert questions on architecture, edge cases and deep internals."
	}
}

// QuestionCountLabel maps the question count to an interview length label.
func QuestionCountLabel(n int) string {
	switch {
	case n <= 5:
		return "Quick interview"
	case n <= 10:
		return "Standard interview"
	case n <= 15:
		return "Comprehensive interview"
	default:
		return "Extended assessment"
	}
}
