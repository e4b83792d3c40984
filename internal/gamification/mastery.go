package gamification

import (
	"math"

	"github.com/tevfikefeaydin/StudyForge/internal/storage"
)

// masteryWindow is how many recent graded attempts feed the mastery score.
const masteryWindow = 20

// difficultyWeight scales an attempt's contribution to mastery. Harder
// questions count for more.
var difficultyWeight = map[string]float64{
	"easy":   0.7,
	"medium": 1.0,
	"hard":   1.5,
}

// CalculateMastery computes a 0..100 mastery score from graded attempts
// ordered newest first. Each attempt's score is weighted by recency
// (1 / (1 + 0.1 * position)) and difficulty. An incorrect attempt counts as
// score 0 but its weight still dilutes the total; with no graded attempts
// the score is 0.
func CalculateMastery(attempts []storage.Attempt) int {
	if len(attempts) > masteryWindow {
		attempts = attempts[:masteryWindow]
	}

	var weightedSum, totalWeight float64
	for i, attempt := range attempts {
		score := 0.0
		if attempt.Correct != nil && *attempt.Correct {
			if attempt.Score != nil {
				score = *attempt.Score
			} else {
				score = 1
			}
		}

		dw, ok := difficultyWeight[attempt.Difficulty]
		if !ok {
			dw = difficultyWeight["easy"]
		}

		weight := dw / (1 + 0.1*float64(i))
		weightedSum += score * weight
		totalWeight += weight
	}

	if totalWeight == 0 {
		return 0
	}

	return int(math.Round(weightedSum / totalWeight * 100))
}
