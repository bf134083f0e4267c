// =============================================================================
// FitNotes2Hevy - Configuration Module
// =============================================================================
//
// This module loads the application configuration. Values come from three
// layers, later layers winning:
//
//   1. Built-in defaults (Default)
//   2. The YAML config file (config.yaml), when present
//   3. FITNOTES2HEVY_* environment variables and explicitly set CLI flags
//      (ApplyOverrides)
//
// EXAMPLE config.yaml:
//
//   workout:
//     timezone_offset: 10
//     time: "07:00"
//     name: Workout
//     duration: 60m
//     notes: Imported from FitNotes
//   mappings:
//     dir: data/mappings
//   output:
//     dir: output
//     file_name_format: "hevy_import_{timestamp}.csv"
//   logging:
//     level: info
//     format: text
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alanjonesit/FitNotes2Hevy/internal/converter"
	"github.com/alanjonesit/FitNotes2Hevy/internal/csvparser"
	"github.com/alanjonesit/FitNotes2Hevy/internal/mappings"
)

// DefaultPath is the config file read when none is given.
const DefaultPath = "config.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the full application configuration.
type Config struct {
	Workout  WorkoutConfig  `yaml:"workout"`
	Rules    RulesConfig    `yaml:"rules"`
	Mappings MappingsConfig `yaml:"mappings"`
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WorkoutConfig holds the constants written to every converted set.
type WorkoutConfig struct {
	// TimezoneOffset is the local offset from UTC in hours.
	// Default: 10
	TimezoneOffset float64 `yaml:"timezone_offset"`

	// Time is the local start time of every workout, "HH:MM" or "HH:MM:SS".
	// Default: "07:00"
	Time string `yaml:"time"`

	// Name is the Hevy workout title.
	// Default: "Workout"
	Name string `yaml:"name"`

	// Duration is "<n>m", "<n>s" or seconds.
	// Default: "60m"
	Duration string `yaml:"duration"`

	// Notes are the Hevy workout notes.
	// Default: "Imported from FitNotes"
	Notes string `yaml:"notes"`
}

// RulesConfig overrides the unit-conversion exercise lists. An omitted list
// keeps its default.
type RulesConfig struct {
	TimeToReps     []string `yaml:"time_to_reps"`
	TimeToDistance []string `yaml:"time_to_distance"`
	RepsToTime     []string `yaml:"reps_to_time"`
}

// MappingsConfig locates the exercise mapping files.
type MappingsConfig struct {
	// Dir holds the tier files.
	// Default: "data/mappings"
	Dir string `yaml:"dir"`

	Base          string `yaml:"base"`
	Supplementary string `yaml:"supplementary"`
	User          string `yaml:"user"`
}

// InputConfig controls input decoding.
type InputConfig struct {
	// Encoding is the CSV character encoding.
	// Default: "utf-8"
	Encoding string `yaml:"encoding"`

	// Sheet is the XLSX sheet to read. Empty means the first sheet.
	Sheet string `yaml:"sheet"`
}

// OutputConfig controls where converted files go.
type OutputConfig struct {
	// Dir is used when no output path is given.
	// Default: "output"
	Dir string `yaml:"dir"`

	// FileNameFormat names generated files. Placeholders: {timestamp},
	// {date}, {uuid}, {input}.
	// Default: "hevy_import_{timestamp}.csv"
	FileNameFormat string `yaml:"file_name_format"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is debug, info, warn or error.
	// Default: "info"
	Level string `yaml:"level"`

	// Format is text or json.
	// Default: "text"
	Format string `yaml:"format"`
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{
		Workout: WorkoutConfig{TimezoneOffset: converter.DefaultSettings().TimezoneOffsetHours},
	}
	applyDefaults(cfg)
	return cfg
}

// Load reads the config file at path on top of the defaults.
//
// RETURNS:
//   - The loaded configuration, not yet validated.
//   - An error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

// LoadOptional is Load, except a missing file yields the defaults.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// applyDefaults fills in empty string settings. A zero timezone offset is
// a real value and is left alone.
func applyDefaults(cfg *Config) {
	ws := converter.DefaultSettings()
	if cfg.Workout.Time == "" {
		cfg.Workout.Time = ws.WorkoutTime
	}
	if cfg.Workout.Name == "" {
		cfg.Workout.Name = ws.WorkoutName
	}
	if cfg.Workout.Duration == "" {
		cfg.Workout.Duration = ws.Duration
	}
	if cfg.Workout.Notes == "" {
		cfg.Workout.Notes = ws.WorkoutNotes
	}

	files := mappings.DefaultFiles()
	if cfg.Mappings.Dir == "" {
		cfg.Mappings.Dir = "data/mappings"
	}
	if cfg.Mappings.Base == "" {
		cfg.Mappings.Base = files.Base
	}
	if cfg.Mappings.Supplementary == "" {
		cfg.Mappings.Supplementary = files.Supplementary
	}
	if cfg.Mappings.User == "" {
		cfg.Mappings.User = files.User
	}

	if cfg.Input.Encoding == "" {
		cfg.Input.Encoding = "utf-8"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "output"
	}
	if cfg.Output.FileNameFormat == "" {
		cfg.Output.FileNameFormat = "hevy_import_{timestamp}.csv"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks that the configuration can be used for a conversion.
func (c *Config) Validate() error {
	if err := c.Settings().Validate(); err != nil {
		return fmt.Errorf("config: workout: %w", err)
	}
	if err := csvparser.CheckEncoding(c.Input.Encoding); err != nil {
		return fmt.Errorf("config: input.encoding: %w", err)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("config: logging.level: unknown level %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: logging.format: unknown format %q", c.Logging.Format)
	}
	return nil
}

// =============================================================================
// CONVERSIONS
// =============================================================================

// Settings returns the converter settings.
func (c *Config) Settings() converter.Settings {
	return converter.Settings{
		TimezoneOffsetHours: c.Workout.TimezoneOffset,
		WorkoutTime:         c.Workout.Time,
		WorkoutName:         c.Workout.Name,
		Duration:            c.Workout.Duration,
		WorkoutNotes:        c.Workout.Notes,
	}
}

// RuleSets returns the converter rule sets, defaults for omitted lists.
func (c *Config) RuleSets() converter.RuleSets {
	rules := converter.DefaultRules()
	if c.Rules.TimeToReps != nil {
		rules.TimeToReps = converter.NewNameSet(c.Rules.TimeToReps...)
	}
	if c.Rules.TimeToDistance != nil {
		rules.TimeToDistance = converter.NewNameSet(c.Rules.TimeToDistance...)
	}
	if c.Rules.RepsToTime != nil {
		rules.RepsToTime = converter.NewNameSet(c.Rules.RepsToTime...)
	}
	return rules
}

// MappingSources returns the three tier sources.
func (c *Config) MappingSources() []mappings.Source {
	return mappings.DefaultSources(c.Mappings.Dir, c.MappingFiles())
}

// MappingFiles returns the tier file names.
func (c *Config) MappingFiles() mappings.Files {
	return mappings.Files{
		Base:          c.Mappings.Base,
		Supplementary: c.Mappings.Supplementary,
		User:          c.Mappings.User,
	}
}

// CSVSettings returns the input parser settings.
func (c *Config) CSVSettings() csvparser.Settings {
	s := csvparser.DefaultSettings()
	s.Encoding = c.Input.Encoding
	return s
}
