// =============================================================================
// FitNotes2Hevy - Field Derivation
// =============================================================================
//
// This module turns one ordered FitNotes row into one Hevy row. Each output
// field comes from a small pure function that takes the resolved exercise
// name and the raw input fields, so every rule can be tested on its own.
//
// DERIVATION ORDER:
//   1. Reps      - from Reps, or from Time for time-to-reps exercises
//   2. Distance  - from Distance, or from Time for time-to-distance exercises
//   3. Seconds   - depends on the derived Reps and Distance
//   4. Reps is cleared for reps-to-time exercises
//   5. Notes     - Comment, prefixed with the original name when a rename
//                  loses meaning
//
// Weight is passed through as text. Weight Unit is not used: no lb -> kg
// conversion is done.
//
// =============================================================================

package converter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alanjonesit/FitNotes2Hevy/internal/types"
)

// secondsPerRep is the time credited as one rep for time-to-reps exercises.
const secondsPerRep = 10

// =============================================================================
// TIME PARSING
// =============================================================================

// ParseTimeToSeconds converts "HH:MM:SS", "MM:SS" or a bare number of seconds
// to whole seconds. Empty or unparseable input yields 0; it never fails.
func ParseTimeToSeconds(value string) int {
	if value == "" {
		return 0
	}

	parts := strings.Split(value, ":")
	switch len(parts) {
	case 3:
		h, errH := strconv.Atoi(strings.TrimSpace(parts[0]))
		m, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
		s, errS := strconv.Atoi(strings.TrimSpace(parts[2]))
		if errH != nil || errM != nil || errS != nil {
			return 0
		}
		return h*3600 + m*60 + s
	case 2:
		m, errM := strconv.Atoi(strings.TrimSpace(parts[0]))
		s, errS := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errM != nil || errS != nil {
			return 0
		}
		return m*60 + s
	case 1:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return int(f)
	default:
		return 0
	}
}

// =============================================================================
// FIELD DERIVATION
// =============================================================================

// DeriveReps returns the output Reps for a set.
//
// PARAMETERS:
//   - name: The resolved exercise name.
//   - reps: The raw Reps value.
//   - elapsed: The raw Time value.
//   - rules: The unit-conversion rule sets.
//
// RETURNS:
//   - The integer reps as text, or "".
//   - An error if a non-empty Reps value is not a number.
func DeriveReps(name, reps, elapsed string, rules RuleSets) (string, error) {
	if reps != "" {
		n, err := parseWhole(reps)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(n), nil
	}

	if rules.TimeToReps.Contains(name) {
		if secs := ParseTimeToSeconds(elapsed); secs > 0 {
			return strconv.Itoa(max(1, secs/secondsPerRep)), nil
		}
	}
	return "", nil
}

// DeriveDistance returns the output distance in meters for a set. A zero
// Distance counts as absent.
func DeriveDistance(name, distance, elapsed string, rules RuleSets) (string, error) {
	if distance != "" {
		f, err := strconv.ParseFloat(distance, 64)
		if err != nil {
			return "", fmt.Errorf("invalid number %q", distance)
		}
		if f != 0 {
			return strconv.Itoa(int(f)), nil
		}
	}

	if rules.TimeToDistance.Contains(name) {
		if secs := ParseTimeToSeconds(elapsed); secs > 0 {
			return strconv.Itoa(secs), nil
		}
	}
	return "", nil
}

// DeriveSeconds returns the output Seconds for a set. reps and distance are
// the already derived values, not the raw input.
func DeriveSeconds(name, reps, distance, elapsed string, rules RuleSets) string {
	if rules.RepsToTime.Contains(name) && reps != "" {
		if n, err := strconv.Atoi(reps); err == nil {
			return formatSeconds(float64(n))
		}
	}

	// Time already credited as reps or distance is not repeated here.
	if rules.TimeToReps.Contains(name) && reps != "" {
		return ""
	}
	if rules.TimeToDistance.Contains(name) && distance != "" {
		return ""
	}

	if secs := ParseTimeToSeconds(elapsed); secs > 0 {
		return formatSeconds(float64(secs))
	}
	return ""
}

// DeriveNotes returns the set notes. When a rename to a generic Hevy
// exercise drops information, the original FitNotes name is kept in front
// of the comment.
func DeriveNotes(original, name, comment string) string {
	if original == name {
		return comment
	}

	lower := strings.ToLower(original)
	backwardWalk := strings.Contains(lower, "backward") && strings.Contains(lower, "walk")
	if !backwardWalk && name != "Warm Up" && name != "Stretching" {
		return comment
	}

	if comment == "" {
		return original
	}
	return original + "; " + comment
}

// =============================================================================
// RECORD TRANSFORM
// =============================================================================

// transform builds the output record for one ordered row.
func (c *Converter) transform(o ordered) (types.OutputRecord, error) {
	rec := o.record

	stamp, err := c.timestamp(rec.Date)
	if err != nil {
		return types.OutputRecord{}, &ConversionError{Row: rec.Row, Field: types.ColDate, Err: err}
	}

	reps, err := DeriveReps(o.name, rec.Reps, rec.Time, c.rules)
	if err != nil {
		return types.OutputRecord{}, &ConversionError{Row: rec.Row, Field: types.ColReps, Err: err}
	}
	distance, err := DeriveDistance(o.name, rec.Distance, rec.Time, c.rules)
	if err != nil {
		return types.OutputRecord{}, &ConversionError{Row: rec.Row, Field: types.ColDistance, Err: err}
	}
	seconds := DeriveSeconds(o.name, reps, distance, rec.Time, c.rules)
	if c.rules.RepsToTime.Contains(o.name) {
		reps = ""
	}

	return types.OutputRecord{
		WorkoutNumber:   o.workout,
		Date:            stamp,
		WorkoutName:     c.settings.WorkoutName,
		DurationSeconds: c.durationSeconds,
		ExerciseName:    o.name,
		SetOrder:        o.setOrder,
		Weight:          rec.Weight,
		Reps:            reps,
		Distance:        distance,
		Seconds:         seconds,
		Notes:           DeriveNotes(rec.Exercise, o.name, rec.Comment),
		WorkoutNotes:    c.settings.WorkoutNotes,
	}, nil
}

// timestamp combines a FitNotes date with the workout time and shifts the
// local instant to UTC.
func (c *Converter) timestamp(date string) (string, error) {
	day, err := parseDate(date)
	if err != nil {
		return "", err
	}
	return day.Add(c.workoutClock).Add(-c.settings.offset()).Format(timestampLayout), nil
}

// =============================================================================
// HELPERS
// =============================================================================

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// parseDate parses a FitNotes YYYY-MM-DD date as UTC midnight.
func parseDate(date string) (time.Time, error) {
	if date == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return t, nil
}

// parseWhole parses a count that FitNotes may export as "5" or "5.0" and
// truncates it to an integer.
func parseWhole(value string) (int, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid number %q", value)
	}
	return int(f), nil
}

// formatSeconds renders seconds as a decimal with at least one fractional
// digit, e.g. "30.0".
func formatSeconds(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
