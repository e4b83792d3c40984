package gamification

import (
	"math"
	"time"
)

const (
	// minEaseFactor is the floor SM-2 never lets the ease factor drop below.
	minEaseFactor = 1.3

	// DefaultEaseFactor seeds new review items.
	DefaultEaseFactor = 2.5
)

// Schedule holds the SM-2 repetition state of one review item.
type Schedule struct {
	IntervalDays int
	EaseFactor   float64
	Repetitions  int
}

// NewSchedule returns the state a freshly queued review item starts with.
func NewSchedule() Schedule {
	return Schedule{IntervalDays: 1, EaseFactor: DefaultEaseFactor, Repetitions: 0}
}

// UpdateReviewSchedule applies one SM-2 step for a recall rated quality
// (0..5) and returns the next state plus the next review time. A quality
// below 3 restarts the repetition sequence at a one-day interval without
// touching the ease factor. The interval growth for later repetitions uses
// the ease factor from before this rating.
func UpdateReviewSchedule(s Schedule, quality int, now time.Time) (Schedule, time.Time) {
	if quality < 0 {
		quality = 0
	}
	if quality > 5 {
		quality = 5
	}

	next := s
	if quality >= 3 {
		switch s.Repetitions {
		case 0:
			next.IntervalDays = 1
		case 1:
			next.IntervalDays = 6
		default:
			next.IntervalDays = int(math.Round(float64(s.IntervalDays) * s.EaseFactor))
		}
		next.Repetitions = s.Repetitions + 1

		q := float64(quality)
		ef := s.EaseFactor + 0.1 - (5-q)*(0.08+(5-q)*0.02)
		if ef < minEaseFactor {
			ef = minEaseFactor
		}
		next.EaseFactor = ef
	} else {
		next.Repetitions = 0
		next.IntervalDays = 1
	}

	return next, now.AddDate(0, 0, next.IntervalDays)
}
