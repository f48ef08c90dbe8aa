package derive

import (
	"errors"
	"math"
)

var ErrBadDuration = errors.New("duration must be 1, 2, 3 or 4 hours")
var ErrNegativeRate = errors.New("hourly rate must not be negative")

// ValidDuration reports whether a booking length is one of the slots the
// courts rent out in.
func ValidDuration(hours int) bool {
	return hours >= 1 && hours <= 4
}

// BookingCost is rate x duration. Native float arithmetic, no currency
// rounding; that matches what callers display.
func BookingCost(hourlyRate float64, durationHours int) (float64, error) {
	if hourlyRate < 0 {
		return 0, ErrNegativeRate
	}
	if !ValidDuration(durationHours) {
		return 0, ErrBadDuration
	}
	return hourlyRate * float64(durationHours), nil
}

// WinRate is the percentage of games won, rounded to one decimal.
// Zero games played is 0, never a division by zero.
func WinRate(wins, losses int) float64 {
	total := wins + losses
	if total == 0 {
		return 0
	}
	return math.Round(1000*float64(wins)/float64(total)) / 10
}

// ProgressPercent clamps to [0,100]. A zero target counts as already
// complete.
func ProgressPercent(current, target float64) int {
	if target <= 0 {
		return 100
	}
	p := math.Round(100 * current / target)
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return int(p)
}

// ApplyDelta adjusts a score by a signed delta, clamped at zero.
func ApplyDelta(score, delta int) int {
	next := score + delta
	if next < 0 {
		return 0
	}
	return next
}

// Winner returns the leading player's id, or "" on a tie.
func Winner(player1ID, player2ID string, score1, score2 int) string {
	switch {
	case score1 > score2:
		return player1ID
	case score2 > score1:
		return player2ID
	default:
		return ""
	}
}
