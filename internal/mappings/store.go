package mappings

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/alanjonesit/FitNotes2Hevy/pkg/utils"
)

// AddUserMappings merges additions into the user tier file at path and
// writes it back. Comment keys already in the file are kept. The file and
// its directory are created when missing.
//
// Returns the number of keys whose value was added or changed.
func AddUserMappings(path string, additions map[string]string) (int, error) {
	existing, err := LoadFile(TierUser, path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return 0, err
	}
	if existing == nil {
		existing = map[string]string{}
	}

	changed := 0
	for k, v := range additions {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k == "" || v == "" {
			return 0, fmt.Errorf("mapping %q -> %q: both exercise names are required", k, v)
		}
		if strings.HasPrefix(k, CommentPrefix) {
			return 0, fmt.Errorf("mapping %q: names starting with %q are reserved for comments", k, CommentPrefix)
		}
		if existing[k] != v {
			existing[k] = v
			changed++
		}
	}

	if err := writeJSON(path, existing); err != nil {
		return 0, err
	}
	return changed, nil
}

// RemoveUserMappings deletes names from the user tier file at path. Names
// that are not mapped, and comment keys, are ignored. The file is only
// rewritten when something was removed.
//
// Returns the number of mappings removed.
func RemoveUserMappings(path string, names []string) (int, error) {
	existing, err := LoadFile(TierUser, path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, name := range names {
		name = strings.TrimSpace(name)
		if strings.HasPrefix(name, CommentPrefix) {
			continue
		}
		if _, ok := existing[name]; ok {
			delete(existing, name)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}

	if err := writeJSON(path, existing); err != nil {
		return 0, err
	}
	return removed, nil
}

// ImportUserMappings merges every mapping in the JSON file src into the user
// tier file at path. Comment keys in src are not copied.
//
// Returns the number of keys added or changed.
func ImportUserMappings(path, src string) (int, error) {
	entries, err := LoadFile(TierUser, src)
	if err != nil {
		return 0, fmt.Errorf("failed to import %s: %w", src, err)
	}
	return AddUserMappings(path, StripComments(entries))
}

// writeJSON writes entries as an indented object with sorted keys.
// The file is replaced atomically.
func writeJSON(path string, entries map[string]string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode mappings: %w", err)
	}
	return utils.WriteFileAtomic(path, append(data, '\n'))
}

// ReadExerciseList reads a plain-text exercise list, one name per line.
// Blank lines are skipped and duplicates removed; order is kept.
func ReadExerciseList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open exercise list: %w", err)
	}
	defer file.Close()

	seen := make(map[string]bool)
	var names []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read exercise list: %w", err)
	}
	return names, nil
}
