package converter

import (
	"testing"
	"time"
)

// TestParseDuration covers minutes, seconds and bare seconds.
func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"60m", 3600},
		{"90s", 90},
		{"3600", 3600},
		{" 45M ", 2700},
		{"0", 0},
	}
	for _, tt := range tests {
		got, err := ParseDuration(tt.in)
		if err != nil {
			t.Errorf("ParseDuration(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDuration(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "abc", "1h", "-5", "m"} {
		if _, err := ParseDuration(bad); err == nil {
			t.Errorf("ParseDuration(%q) succeeded, want error", bad)
		}
	}
}

// TestParseWorkoutTime verifies HH:MM gets seconds appended.
func TestParseWorkoutTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"07:00", 7 * time.Hour},
		{"07:00:00", 7 * time.Hour},
		{"18:30:15", 18*time.Hour + 30*time.Minute + 15*time.Second},
	}
	for _, tt := range tests {
		got, err := ParseWorkoutTime(tt.in)
		if err != nil {
			t.Errorf("ParseWorkoutTime(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseWorkoutTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "7am", "25:00", "07:61"} {
		if _, err := ParseWorkoutTime(bad); err == nil {
			t.Errorf("ParseWorkoutTime(%q) succeeded, want error", bad)
		}
	}
}

// TestSettingsValidate verifies the defaults pass and out-of-range values fail.
func TestSettingsValidate(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}

	s := DefaultSettings()
	s.TimezoneOffsetHours = 15
	if err := s.Validate(); err == nil {
		t.Error("expected error for timezone offset 15")
	}

	s = DefaultSettings()
	s.Duration = "an hour"
	if err := s.Validate(); err == nil {
		t.Error("expected error for bad duration")
	}

	s = DefaultSettings()
	s.WorkoutTime = "noon"
	if err := s.Validate(); err == nil {
		t.Error("expected error for bad workout time")
	}
}

// TestSettingsOffset verifies fractional hours round to whole seconds.
func TestSettingsOffset(t *testing.T) {
	s := Settings{TimezoneOffsetHours: 5.5}
	if got := s.offset(); got != 5*time.Hour+30*time.Minute {
		t.Errorf("offset = %v, want 5h30m", got)
	}
	s.TimezoneOffsetHours = -3.25
	if got := s.offset(); got != -(3*time.Hour + 15*time.Minute) {
		t.Errorf("offset = %v, want -3h15m", got)
	}
}
