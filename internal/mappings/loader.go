// =============================================================================
// FitNotes2Hevy - Exercise Mapping Loader
// =============================================================================
//
// FitNotes and Hevy name the same exercise differently. This module builds the
// FitNotes -> Hevy lookup table from three priority-ordered tiers:
//
//   1. base          (default.json) - the stock FitNotes exercise list
//   2. supplementary (extra.json)   - common custom exercises
//   3. user          (custom.json)  - the user's own overrides
//
// MERGE RULES:
//   - Tiers merge in the order above; a later tier wins for the same key.
//   - A missing base or supplementary file is logged as a warning and treated
//     as empty. A missing user file is normal and is not reported.
//   - Keys in the user tier starting with "_" are comments and are dropped.
//   - The result carries no tier information.
//
// =============================================================================

package mappings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CommentPrefix marks a user-tier key as a human-readable comment.
const CommentPrefix = "_"

// Mapping is a merged FitNotes -> Hevy exercise name lookup.
type Mapping map[string]string

// Lookup returns the target name for exercise and whether it was mapped.
func (m Mapping) Lookup(exercise string) (string, bool) {
	target, ok := m[exercise]
	return target, ok
}

// Resolve returns the mapped name, or exercise itself when unmapped.
func (m Mapping) Resolve(exercise string) string {
	if target, ok := m[exercise]; ok {
		return target
	}
	return exercise
}

// =============================================================================
// TIERS AND SOURCES
// =============================================================================

// Tier is the priority level of a mapping source.
type Tier int

const (
	TierBase Tier = iota
	TierSupplementary
	TierUser
)

// String returns the tier name used in logs.
func (t Tier) String() string {
	switch t {
	case TierBase:
		return "base"
	case TierSupplementary:
		return "supplementary"
	case TierUser:
		return "user"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Source is one mapping table to merge. Entries, when non-nil, are used as-is
// and Path is only informational; otherwise the table is read from Path.
type Source struct {
	Tier    Tier
	Path    string
	Entries map[string]string
}

// Files names the JSON file for each tier inside a mappings directory.
type Files struct {
	Base          string
	Supplementary string
	User          string
}

// DefaultFiles returns the stock tier file names.
func DefaultFiles() Files {
	return Files{
		Base:          "default.json",
		Supplementary: "extra.json",
		User:          "custom.json",
	}
}

// DefaultSources returns the three standard sources under dir.
func DefaultSources(dir string, files Files) []Source {
	return []Source{
		{Tier: TierBase, Path: filepath.Join(dir, files.Base)},
		{Tier: TierSupplementary, Path: filepath.Join(dir, files.Supplementary)},
		{Tier: TierUser, Path: filepath.Join(dir, files.User)},
	}
}

// =============================================================================
// ERRORS
// =============================================================================

// MissingFileError reports a tier file that does not exist.
// Load recovers from it; LoadFile returns it so callers can decide.
type MissingFileError struct {
	Tier Tier
	Path string
}

// Error implements the error interface.
func (e *MissingFileError) Error() string {
	return fmt.Sprintf("%s mappings file not found: %s", e.Tier, e.Path)
}

// Is lets errors.Is(err, fs.ErrNotExist) match.
func (e *MissingFileError) Is(target error) bool {
	return target == fs.ErrNotExist
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads every source and merges them in slice order.
//
// PARAMETERS:
//   - sources: Sources in ascending priority (base first).
//   - log: Receives warnings for missing required tiers. May be nil.
//
// RETURNS:
//   - The merged mapping.
//   - An error only for an unreadable or malformed file. Missing files are
//     never an error.
func Load(sources []Source, log *slog.Logger) (Mapping, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	tables := make([]map[string]string, 0, len(sources))
	for _, src := range sources {
		entries := src.Entries
		if entries == nil {
			var err error
			entries, err = LoadFile(src.Tier, src.Path)
			var missing *MissingFileError
			if errors.As(err, &missing) {
				if src.Tier != TierUser {
					log.Warn("mappings file not found", "tier", src.Tier.String(), "path", src.Path)
				}
				continue
			}
			if err != nil {
				return nil, err
			}
		}

		if src.Tier == TierUser {
			entries = StripComments(entries)
		}
		log.Debug("loaded exercise mappings", "tier", src.Tier.String(), "path", src.Path, "count", len(entries))
		tables = append(tables, entries)
	}

	return Merge(tables...), nil
}

// LoadFile reads one JSON mapping file (a string -> string object).
func LoadFile(tier Tier, path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &MissingFileError{Tier: tier, Path: path}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s mappings: %w", tier, err)
	}

	entries := map[string]string{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse %s mappings %s: %w", tier, path, err)
	}
	return entries, nil
}

// Merge layers tables in order; later tables override earlier ones.
// Inputs are not modified.
func Merge(tables ...map[string]string) Mapping {
	merged := Mapping{}
	for _, table := range tables {
		for k, v := range table {
			merged[k] = v
		}
	}
	return merged
}

// StripComments returns entries without comment keys.
func StripComments(entries map[string]string) map[string]string {
	out := make(map[string]string, len(entries))
	for k, v := range entries {
		if strings.HasPrefix(k, CommentPrefix) {
			continue
		}
		out[k] = v
	}
	return out
}

// =============================================================================
// COVERAGE
// =============================================================================

// Unmapped returns the distinct names in exercises that m does not map,
// sorted.
func (m Mapping) Unmapped(exercises []string) []string {
	seen := make(map[string]bool)
	var missing []string
	for _, name := range exercises {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		if _, ok := m[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}
