package converter

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Settings are the per-run constants applied to every output row.
// Settings is passed by value and never modified by the converter.
type Settings struct {
	// TimezoneOffsetHours is the local offset from UTC. Fractional values
	// such as 5.5 are allowed.
	TimezoneOffsetHours float64

	// WorkoutTime is the local time of day every workout starts at,
	// "HH:MM" or "HH:MM:SS".
	WorkoutTime string

	// WorkoutName is written to every row.
	WorkoutName string

	// Duration is "<n>m", "<n>s" or a bare number of seconds.
	Duration string

	// WorkoutNotes is written to every row.
	WorkoutNotes string
}

// DefaultSettings returns the stock settings.
func DefaultSettings() Settings {
	return Settings{
		TimezoneOffsetHours: 10,
		WorkoutTime:         "07:00",
		WorkoutName:         "Workout",
		Duration:            "60m",
		WorkoutNotes:        "Imported from FitNotes",
	}
}

// Validate checks that every setting can be applied.
func (s Settings) Validate() error {
	if math.IsNaN(s.TimezoneOffsetHours) || s.TimezoneOffsetHours < -12 || s.TimezoneOffsetHours > 14 {
		return fmt.Errorf("timezone offset %v is outside -12..14 hours", s.TimezoneOffsetHours)
	}
	if _, err := ParseWorkoutTime(s.WorkoutTime); err != nil {
		return err
	}
	if _, err := ParseDuration(s.Duration); err != nil {
		return err
	}
	return nil
}

// offset returns the timezone offset rounded to whole seconds.
func (s Settings) offset() time.Duration {
	return time.Duration(math.Round(s.TimezoneOffsetHours*3600)) * time.Second
}

// ParseWorkoutTime parses "HH:MM" or "HH:MM:SS" into an offset from midnight.
func ParseWorkoutTime(value string) (time.Duration, error) {
	v := strings.TrimSpace(value)
	if strings.Count(v, ":") == 1 {
		v += ":00"
	}
	t, err := time.Parse("15:04:05", v)
	if err != nil {
		return 0, fmt.Errorf("invalid workout time %q: use HH:MM or HH:MM:SS", value)
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}

// ParseDuration converts a workout duration to seconds.
//
// FORMATS:
//   - "60m": minutes
//   - "90s": seconds
//   - "3600": seconds
//
// Matching is case-insensitive and ignores surrounding spaces.
func ParseDuration(value string) (int, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	multiplier := 1
	switch {
	case strings.HasSuffix(v, "m"):
		v, multiplier = strings.TrimSuffix(v, "m"), 60
	case strings.HasSuffix(v, "s"):
		v = strings.TrimSuffix(v, "s")
	}

	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("invalid workout duration %q: use <n>m, <n>s or seconds", value)
	}
	if n < 0 {
		return 0, errors.New("workout duration must not be negative")
	}
	return n * multiplier, nil
}
