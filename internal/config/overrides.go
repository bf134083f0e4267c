package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g.
// FITNOTES2HEVY_WORKOUT_TIMEZONE_OFFSET=5.5.
const EnvPrefix = "FITNOTES2HEVY"

// Override keys. CLI flags are bound to these names.
const (
	KeyTimezone       = "workout.timezone_offset"
	KeyWorkoutTime    = "workout.time"
	KeyWorkoutName    = "workout.name"
	KeyDuration       = "workout.duration"
	KeyWorkoutNotes   = "workout.notes"
	KeyMappingsDir    = "mappings.dir"
	KeyInputEncoding  = "input.encoding"
	KeyInputSheet     = "input.sheet"
	KeyOutputDir      = "output.dir"
	KeyFileNameFormat = "output.file_name_format"
	KeyLogLevel       = "logging.level"
	KeyLogFormat      = "logging.format"
)

// NewViper returns a viper instance reading FITNOTES2HEVY_* variables.
// Nested keys map to underscores: workout.time -> FITNOTES2HEVY_WORKOUT_TIME.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ApplyOverrides copies every key set in v onto cfg. A key counts as set
// when its environment variable is non-empty or its bound flag was given
// on the command line; flags win over the environment.
func ApplyOverrides(cfg *Config, v *viper.Viper) error {
	if v.IsSet(KeyTimezone) {
		offset, err := cast.ToFloat64E(v.Get(KeyTimezone))
		if err != nil {
			return fmt.Errorf("config: %s: %w", KeyTimezone, err)
		}
		cfg.Workout.TimezoneOffset = offset
	}

	fields := map[string]*string{
		KeyWorkoutTime:    &cfg.Workout.Time,
		KeyWorkoutName:    &cfg.Workout.Name,
		KeyDuration:       &cfg.Workout.Duration,
		KeyWorkoutNotes:   &cfg.Workout.Notes,
		KeyMappingsDir:    &cfg.Mappings.Dir,
		KeyInputEncoding:  &cfg.Input.Encoding,
		KeyInputSheet:     &cfg.Input.Sheet,
		KeyOutputDir:      &cfg.Output.Dir,
		KeyFileNameFormat: &cfg.Output.FileNameFormat,
		KeyLogLevel:       &cfg.Logging.Level,
		KeyLogFormat:      &cfg.Logging.Format,
	}
	for key, field := range fields {
		if v.IsSet(key) {
			*field = v.GetString(key)
		}
	}

	applyDefaults(cfg)
	return nil
}
