package mappings

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

// TestLoadMergeOrder verifies base < supplementary < user priority and that
// user-tier comment keys are dropped.
func TestLoadMergeOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "default.json", `{"Squat": "Squat (Barbell)", "Deadlift": "Deadlift (Barbell)", "Plank": "Plank"}`)
	writeFile(t, dir, "extra.json", `{"Deadlift": "Romanian Deadlift (Barbell)", "Bird Dogs": "Bird Dog"}`)
	writeFile(t, dir, "custom.json", `{"_comment": "my overrides", "_note": "x", "Squat": "Back Squat"}`)

	m, err := Load(DefaultSources(dir, DefaultFiles()), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Mapping{
		"Squat":     "Back Squat",
		"Deadlift":  "Romanian Deadlift (Barbell)",
		"Plank":     "Plank",
		"Bird Dogs": "Bird Dog",
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("mapping mismatch (-want +got):\n%s", diff)
	}
}

// TestLoadIdempotent verifies loading the same tiers twice yields equal mappings.
func TestLoadIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "default.json", `{"A": "1", "B": "2"}`)
	writeFile(t, dir, "extra.json", `{"B": "3"}`)
	writeFile(t, dir, "custom.json", `{"A": "4"}`)

	sources := DefaultSources(dir, DefaultFiles())
	first, err := Load(sources, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Load(sources, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second load differs (-first +second):\n%s", diff)
	}
}

// TestLoadMissingFiles verifies missing tiers are never fatal: required tiers
// warn, the user tier stays silent.
func TestLoadMissingFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "extra.json", `{"Bird Dogs": "Bird Dog"}`)
	log, buf := captureLogger()

	m, err := Load(DefaultSources(dir, DefaultFiles()), log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m) != 1 {
		t.Errorf("mapping size = %d, want 1", len(m))
	}

	out := buf.String()
	if !strings.Contains(out, "tier=base") {
		t.Errorf("expected warning for base tier, log:\n%s", out)
	}
	if strings.Contains(out, "mappings file not found") && strings.Contains(out, "tier=user") {
		t.Errorf("user tier should be silent when missing, log:\n%s", out)
	}
}

// TestLoadMalformed verifies a broken JSON file is reported, not skipped.
func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "default.json", `{"Squat": `)
	if _, err := Load(DefaultSources(dir, DefaultFiles()), nil); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

// TestLoadInMemoryUserTier verifies in-memory entries work like a file and
// still have comments stripped.
func TestLoadInMemoryUserTier(t *testing.T) {
	sources := []Source{
		{Tier: TierBase, Entries: map[string]string{"Squat": "Squat (Barbell)"}},
		{Tier: TierUser, Entries: map[string]string{"Squat": "Front Squat", "_why": "preference"}},
	}
	m, err := Load(sources, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Mapping{"Squat": "Front Squat"}, m); diff != "" {
		t.Errorf("mapping mismatch (-want +got):\n%s", diff)
	}
}

// TestLoadFileMissingError verifies the missing-file error type and its
// fs.ErrNotExist compatibility.
func TestLoadFileMissingError(t *testing.T) {
	_, err := LoadFile(TierSupplementary, filepath.Join(t.TempDir(), "nope.json"))
	var missing *MissingFileError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want *MissingFileError", err)
	}
	if missing.Tier != TierSupplementary {
		t.Errorf("tier = %v, want supplementary", missing.Tier)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is(err, fs.ErrNotExist) = false")
	}
}

// TestMergeDoesNotMutate verifies Merge leaves its inputs alone.
func TestMergeDoesNotMutate(t *testing.T) {
	base := map[string]string{"A": "1"}
	user := map[string]string{"A": "2"}
	m := Merge(base, user)
	if m["A"] != "2" {
		t.Errorf("merged A = %q, want 2", m["A"])
	}
	if base["A"] != "1" {
		t.Errorf("base mutated: A = %q", base["A"])
	}
}

// TestResolveAndUnmapped verifies pass-through and coverage reporting.
func TestResolveAndUnmapped(t *testing.T) {
	m := Mapping{"Squat": "Back Squat"}
	if got := m.Resolve("Squat"); got != "Back Squat" {
		t.Errorf("Resolve(Squat) = %q", got)
	}
	if got := m.Resolve("Bench Press"); got != "Bench Press" {
		t.Errorf("Resolve(Bench Press) = %q, want pass-through", got)
	}
	if got := (Mapping{}).Resolve("Bench Press"); got != "Bench Press" {
		t.Errorf("empty mapping Resolve = %q, want pass-through", got)
	}

	got := m.Unmapped([]string{"Squat", "Curl", "", "Bench", "Curl"})
	if diff := cmp.Diff([]string{"Bench", "Curl"}, got); diff != "" {
		t.Errorf("unmapped mismatch (-want +got):\n%s", diff)
	}
}
