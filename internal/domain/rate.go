package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultHourlyRate applies when no positive rate has been stored.
const DefaultHourlyRate = 100.0

// MaxHourlyRate keeps earnings finite for any realistic session length.
const MaxHourlyRate = 1_000_000.0

// ErrInvalidRate is returned for rates outside [0, MaxHourlyRate].
var ErrInvalidRate = errors.New("invalid hourly rate")

// ValidateHourlyRate accepts finite rates from 0 to MaxHourlyRate.
func ValidateHourlyRate(rate float64) error {
	if math.IsNaN(rate) || rate < 0 || rate > MaxHourlyRate {
		return fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}
	return nil
}

// ParseHourlyRate parses user text such as "75", "$75.50" or " 60 ".
func ParseHourlyRate(text string) (float64, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimSpace(strings.TrimPrefix(s, "$"))
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidRate)
	}
	rate, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidRate, text)
	}
	if err := ValidateHourlyRate(rate); err != nil {
		return 0, err
	}
	return rate, nil
}

// EffectiveStoredRate applies the load-side rule: a missing or
// non-positive stored rate reads back as DefaultHourlyRate.
func EffectiveStoredRate(stored float64, ok bool) float64 {
	if !ok || stored <= 0 || math.IsNaN(stored) || stored > MaxHourlyRate {
		return DefaultHourlyRate
	}
	return stored
}
