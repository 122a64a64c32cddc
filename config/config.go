package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lixenwraith/vi-saber/core"
	"github.com/lixenwraith/vi-saber/parameter"
	"github.com/lixenwraith/vi-saber/physics"
)

// EnvPrefix namespaces environment overrides, e.g. VISABER_SWING_MINSPEED
const EnvPrefix = "VISABER"

type LogConfig struct {
	Level   string `mapstructure:"level"`
	File    string `mapstructure:"file"`
	Console bool   `mapstructure:"console"`
}

type TrackerConfig struct {
	Mode          string        `mapstructure:"mode"`
	Capacity      int           `mapstructure:"capacity"`
	CheckInterval time.Duration `mapstructure:"checkInterval"`
}

type SwingConfig struct {
	MinSpeed           float64 `mapstructure:"minSpeed"`
	DirectionTolerance float64 `mapstructure:"directionTolerance"`
}

type BlockConfig struct {
	MoveSpeed     float64       `mapstructure:"moveSpeed"`
	MissBoundaryZ float64       `mapstructure:"missBoundaryZ"`
	FeedbackDelay time.Duration `mapstructure:"feedbackDelay"`
	FailPolicy    string        `mapstructure:"failPolicy"`
	HalfExtent    float64       `mapstructure:"halfExtent"`
}

type SliceConfig struct {
	SeparationForce float64       `mapstructure:"separationForce"`
	LiftForce       float64       `mapstructure:"liftForce"`
	PiecesLifetime  time.Duration `mapstructure:"piecesLifetime"`
	Gravity         float64       `mapstructure:"gravity"`
}

type GridConfig struct {
	Columns       int     `mapstructure:"columns"`
	Rows          int     `mapstructure:"rows"`
	ColumnSpacing float64 `mapstructure:"columnSpacing"`
	RowSpacing    float64 `mapstructure:"rowSpacing"`
	CenterY       float64 `mapstructure:"centerY"`
	SpawnZ        float64 `mapstructure:"spawnZ"`
}

type AudioConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type SandboxConfig struct {
	Seed          int64         `mapstructure:"seed"`
	SpawnInterval time.Duration `mapstructure:"spawnInterval"`
	SaberRadius   float64       `mapstructure:"saberRadius"`
}

// Config is the full typed configuration
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Tracker TrackerConfig `mapstructure:"tracker"`
	Swing   SwingConfig   `mapstructure:"swing"`
	Block   BlockConfig   `mapstructure:"block"`
	Slice   SliceConfig   `mapstructure:"slice"`
	Grid    GridConfig    `mapstructure:"grid"`
	Audio   AudioConfig   `mapstructure:"audio"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Sandbox SandboxConfig `mapstructure:"sandbox"`
}

// flagKeys maps command-line flag names to config keys
var flagKeys = map[string]string{
	"log-level": "log.level",
	"log-file":  "log.file",
	"seed":      "sandbox.seed",
	"tracker":   "tracker.mode",
	"policy":    "block.failPolicy",
	"metrics":   "metrics.enabled",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.console", false)

	v.SetDefault("tracker.mode", physics.TrackerWindow.String())
	v.SetDefault("tracker.capacity", parameter.VelocityHistorySize)
	v.SetDefault("tracker.checkInterval", parameter.SwingCheckInterval)

	v.SetDefault("swing.minSpeed", parameter.MinSwingSpeed)
	v.SetDefault("swing.directionTolerance", parameter.DirectionTolerance)

	v.SetDefault("block.moveSpeed", parameter.BlockMoveSpeed)
	v.SetDefault("block.missBoundaryZ", parameter.MissBoundaryZ)
	v.SetDefault("block.feedbackDelay", parameter.FeedbackDelay)
	v.SetDefault("block.failPolicy", core.FailPolicyRetry.String())
	v.SetDefault("block.halfExtent", parameter.BlockHalfExtent)

	v.SetDefault("slice.separationForce", parameter.SeparationForce)
	v.SetDefault("slice.liftForce", parameter.LiftForce)
	v.SetDefault("slice.piecesLifetime", parameter.SlicedLifetime)
	v.SetDefault("slice.gravity", parameter.Gravity)

	v.SetDefault("grid.columns", parameter.GridColumns)
	v.SetDefault("grid.rows", parameter.GridRows)
	v.SetDefault("grid.columnSpacing", parameter.GridColumnSpacing)
	v.SetDefault("grid.rowSpacing", parameter.GridRowSpacing)
	v.SetDefault("grid.centerY", parameter.GridCenterY)
	v.SetDefault("grid.spawnZ", parameter.GridSpawnZ)

	v.SetDefault("audio.enabled", true)
	v.SetDefault("metrics.enabled", false)

	v.SetDefault("sandbox.seed", 1)
	v.SetDefault("sandbox.spawnInterval", parameter.SpawnInterval)
	v.SetDefault("sandbox.saberRadius", parameter.SaberContactRadius)
}

// Default returns the configuration with no file, environment or flags applied
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// defaults are well-formed
	_ = v.Unmarshal(&cfg)
	return cfg
}

// Load layers defaults, the optional file at path, VISABER_* environment and flags
// The file format follows its extension (toml, yaml, json); an empty path skips the file
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerations; errors wrap core.ErrConfiguration
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{core.ErrConfiguration}, args...)...))
		}
	}

	_, err := physics.ParseTrackerMode(c.Tracker.Mode)
	check(err == nil, "tracker.mode %q", c.Tracker.Mode)
	_, err = core.ParseFailPolicy(c.Block.FailPolicy)
	check(err == nil, "block.failPolicy %q", c.Block.FailPolicy)

	check(c.Tracker.Capacity >= 2, "tracker.capacity %d below 2", c.Tracker.Capacity)
	check(c.Tracker.CheckInterval > 0, "tracker.checkInterval must be positive")
	check(c.Swing.MinSpeed >= 0, "swing.minSpeed negative")
	check(c.Swing.DirectionTolerance >= -1 && c.Swing.DirectionTolerance < 1,
		"swing.directionTolerance %v outside [-1, 1)", c.Swing.DirectionTolerance)
	check(c.Block.MoveSpeed > 0, "block.moveSpeed must be positive")
	check(c.Block.FeedbackDelay >= 0, "block.feedbackDelay negative")
	check(c.Block.HalfExtent > 0, "block.halfExtent must be positive")
	check(c.Slice.PiecesLifetime >= 0, "slice.piecesLifetime negative")
	check(c.Grid.Columns > 0 && c.Grid.Rows > 0, "grid %dx%d empty", c.Grid.Columns, c.Grid.Rows)
	check(c.Block.MissBoundaryZ < c.Grid.SpawnZ, "block.missBoundaryZ not behind grid.spawnZ")

	return errors.Join(errs...)
}

// TrackerMode returns the parsed tracker strategy
func (c Config) TrackerMode() physics.TrackerMode {
	m, _ := physics.ParseTrackerMode(c.Tracker.Mode)
	return m
}

// FailPolicy returns the parsed failed-swing policy
func (c Config) FailPolicy() core.FailPolicy {
	p, _ := core.ParseFailPolicy(c.Block.FailPolicy)
	return p
}

// SwingRules returns the validator thresholds
func (c Config) SwingRules() physics.SwingRules {
	return physics.SwingRules{
		MinSpeed:           c.Swing.MinSpeed,
		DirectionTolerance: c.Swing.DirectionTolerance,
	}
}
