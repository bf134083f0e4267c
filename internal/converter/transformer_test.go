package converter

import "testing"

// TestParseTimeToSeconds covers every accepted format and the zero fallback.
func TestParseTimeToSeconds(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"01:30", 90},
		{"00:01:30", 90},
		{"1:00:00", 3600},
		{"45", 45},
		{"12.7", 12},
		{" 30 ", 30},
		{"", 0},
		{"garbage", 0},
		{"a:b", 0},
		{"1:2:3:4", 0},
		{"NaN", 0},
	}
	for _, tt := range tests {
		if got := ParseTimeToSeconds(tt.in); got != tt.want {
			t.Errorf("ParseTimeToSeconds(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// TestDeriveReps covers pass-through, time-to-reps credit and the minimum of one.
func TestDeriveReps(t *testing.T) {
	rules := DefaultRules()
	tests := []struct {
		name, reps, elapsed, want string
	}{
		{"Back Squat", "5", "", "5"},
		{"Back Squat", "5.0", "", "5"},
		{"Back Squat", "", "00:01:00", ""},
		{"Bird Dog", "", "00:01:00", "6"},
		{"Bird Dog", "", "5", "1"},
		{"Bird Dog", "", "", ""},
		{"Bird Dog", "12", "00:01:00", "12"},
	}
	for _, tt := range tests {
		got, err := DeriveReps(tt.name, tt.reps, tt.elapsed, rules)
		if err != nil {
			t.Errorf("DeriveReps(%q, %q, %q) error: %v", tt.name, tt.reps, tt.elapsed, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DeriveReps(%q, %q, %q) = %q, want %q", tt.name, tt.reps, tt.elapsed, got, tt.want)
		}
	}

	if _, err := DeriveReps("Back Squat", "five", "", rules); err == nil {
		t.Error("expected error for non-numeric reps")
	}
}

// TestDeriveDistance covers pass-through, zero as absent and time-to-distance.
func TestDeriveDistance(t *testing.T) {
	rules := DefaultRules()
	tests := []struct {
		name, distance, elapsed, want string
	}{
		{"Running", "5000", "", "5000"},
		{"Running", "1500.7", "", "1500"},
		{"Running", "0", "00:10:00", ""},
		{"Farmers Walk", "", "1:30", "90"},
		{"Farmers Walk", "0", "1:30", "90"},
		{"Farmers Walk", "40", "1:30", "40"},
		{"Farmers Walk", "", "", ""},
	}
	for _, tt := range tests {
		got, err := DeriveDistance(tt.name, tt.distance, tt.elapsed, rules)
		if err != nil {
			t.Errorf("DeriveDistance(%q, %q, %q) error: %v", tt.name, tt.distance, tt.elapsed, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DeriveDistance(%q, %q, %q) = %q, want %q", tt.name, tt.distance, tt.elapsed, got, tt.want)
		}
	}
}

// TestDeriveSeconds covers reps-to-time, suppression after crediting and the
// plain time path.
func TestDeriveSeconds(t *testing.T) {
	rules := DefaultRules()
	tests := []struct {
		label, name, reps, distance, elapsed, want string
	}{
		{"reps to time", "Warm Up", "30", "", "", "30.0"},
		{"reps to time without reps", "Warm Up", "", "", "00:05:00", "300.0"},
		{"time credited as reps", "Bird Dog", "6", "", "00:01:00", ""},
		{"time credited as distance", "Farmers Walk", "", "90", "1:30", ""},
		{"plain time", "Plank", "", "", "00:01:30", "90.0"},
		{"no time", "Back Squat", "5", "", "", ""},
	}
	for _, tt := range tests {
		if got := DeriveSeconds(tt.name, tt.reps, tt.distance, tt.elapsed, rules); got != tt.want {
			t.Errorf("%s: DeriveSeconds = %q, want %q", tt.label, got, tt.want)
		}
	}
}

// TestDeriveNotes covers the cases where the original name is kept.
func TestDeriveNotes(t *testing.T) {
	tests := []struct {
		original, name, comment, want string
	}{
		{"Squat", "Back Squat", "felt good", "felt good"},
		{"Squat", "Squat", "", ""},
		{"Backward Walk", "Warm Up", "", "Backward Walk"},
		{"Backward Walk", "Warm Up", "slow", "Backward Walk; slow"},
		{"Backwards Walking", "Treadmill", "", "Backwards Walking"},
		{"Foam Rolling", "Stretching", "calves", "Foam Rolling; calves"},
		{"Warm Up", "Warm Up", "easy", "easy"},
		{"Warmup", "Warm Up", "", "Warmup"},
	}
	for _, tt := range tests {
		if got := DeriveNotes(tt.original, tt.name, tt.comment); got != tt.want {
			t.Errorf("DeriveNotes(%q, %q, %q) = %q, want %q", tt.original, tt.name, tt.comment, got, tt.want)
		}
	}
}

// TestFormatSeconds verifies integral values keep one fractional digit.
func TestFormatSeconds(t *testing.T) {
	for in, want := range map[float64]string{30: "30.0", 90: "90.0", 1.5: "1.5", 0.25: "0.25"} {
		if got := formatSeconds(in); got != want {
			t.Errorf("formatSeconds(%v) = %q, want %q", in, got, want)
		}
	}
}
