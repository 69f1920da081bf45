package domain

// Difficulty represents a question difficulty level. The three levels are
// totally ordered: easy < medium < hard.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var difficultyOrder = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Valid reports whether the difficulty is a known value.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// NextDifficulty computes the difficulty of the next question from the most
// recent evaluation scores (oldest first, at most the sliding window of 3).
// An empty window leaves the level unchanged. A mean of 8 or above promotes
// one step, a mean of 4 or below demotes one step; the level never moves more
// than a single step per call and never past either end of the order.
func NextDifficulty(current Difficulty, recentScores []int) Difficulty {
	if len(recentScores) == 0 {
		return current
	}

	sum := 0
	for _, s := range recentScores {
		sum += s
	}
	avg := float64(sum) / float64(len(recentScores))

	idx := 0
	for i, d := range difficultyOrder {
		if d == current {
			idx = i
			break
		}
	}

	if avg >= 8 && idx < len(difficultyOrder)-1 {
		return difficultyOrder[idx+1]
	}
	if avg <= 4 && idx > 0 {
		return difficultyOrder[idx-1]
	}
	return current
}
