// Package gamification implements the reward loop: XP awards, daily streak
// tracking, weighted mastery scoring and SM-2 spaced-repetition scheduling.
package gamification

import "time"

const (
	// speedBonusXP is awarded when an answer lands under speedBonusWindow.
	speedBonusXP     = 5
	speedBonusWindow = 10000 // milliseconds

	// maxStreakBonusXP caps the per-attempt streak bonus.
	maxStreakBonusXP = 20

	// streakWindow is how long a streak survives between correct answers.
	streakWindow = 24 * time.Hour
)

// difficultyBaseXP maps question difficulty to base XP for a correct answer.
var difficultyBaseXP = map[string]int{
	"easy":   10,
	"medium": 15,
	"hard":   20,
}

// CalculateXP returns the XP earned by one graded attempt. Incorrect
// answers earn nothing. Correct answers earn a difficulty base plus a streak
// bonus of 2 XP per streak day (capped) and a speed bonus for answers under
// ten seconds.
func CalculateXP(correct bool, difficulty string, streak, timeMs int) int {
	if !correct {
		return 0
	}

	base, ok := difficultyBaseXP[difficulty]
	if !ok {
		base = difficultyBaseXP["easy"]
	}

	streakBonus := streak * 2
	if streakBonus > maxStreakBonusXP {
		streakBonus = maxStreakBonusXP
	}

	xp := base + streakBonus
	if timeMs > 0 && timeMs < speedBonusWindow {
		xp += speedBonusXP
	}

	return xp
}

// NextStreak returns the user's streak after an attempt. A correct answer
// within 24 hours of the last activity extends the streak; a correct answer
// after a longer gap starts over at 1. An incorrect answer resets to 0.
func NextStreak(current int, lastActiveAt *time.Time, correct bool, now time.Time) int {
	if !correct {
		return 0
	}

	if lastActiveAt == nil || now.Sub(*lastActiveAt) > streakWindow {
		return 1
	}

	return current + 1
}
