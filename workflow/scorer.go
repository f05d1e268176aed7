package workflow

// Score returns the percentage of questions whose selected option matches the
// answer key, rounded half up. Unanswered questions count as wrong. A module
// without questions scores 100 so it passes as soon as its media are done.
func Score(m Module, answers map[int]int) int {
	total := len(m.Questions)
	if total == 0 {
		return 100
	}
	correct := 0
	for i, q := range m.Questions {
		if opt, ok := answers[i]; ok && opt == q.CorrectOptionIndex {
			correct++
		}
	}
	return roundDiv(100*correct, total)
}

// Passes reports whether score meets the module threshold (inclusive).
func Passes(m Module, score int) bool {
	return score >= m.RequiredScorePercent
}

// Aggregate is the unweighted mean of scores rounded to the nearest integer.
// No scores aggregate to 0.
func Aggregate(scores []int) int {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return roundDiv(sum, len(scores))
}

// roundDiv computes num/den rounded half up for non-negative operands.
func roundDiv(num, den int) int {
	return (2*num + den) / (2 * den)
}
