package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors the [generate] section of a slotforge.toml file.
// Zero values mean "not set"; flags override anything the file provides.
type fileConfig struct {
	Generate generateConfig `toml:"generate"`
	Store    storeConfig    `toml:"store"`
}

// generateConfig holds search defaults loadable from a config file.
type generateConfig struct {
	Turns              int     `toml:"turns"`
	Straights          int     `toml:"straights"`
	Start              string  `toml:"start"`
	TurnRadius         float64 `toml:"turn_radius"`
	StraightLength     float64 `toml:"straight_length"`
	LapTolerance       float64 `toml:"lap_tolerance"`
	OrientTolerance    float64 `toml:"orientation_tolerance"`
	MinSeparation      float64 `toml:"min_separation"`
	AllowIntersections bool    `toml:"allow_intersections"`
	MaxTracks          int     `toml:"max_tracks"`
	MaxTimeSec         int     `toml:"max_time_seconds"`
	Workers            int     `toml:"workers"`
}

// storeConfig holds result store settings loadable from a config file.
type storeConfig struct {
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
	Disabled bool   `toml:"disabled"`
}

// defaultConfigFile is consulted when --config is not given.
const defaultConfigFile = "slotforge.toml"

// loadConfig reads a TOML config file. When path is empty the default file is
// tried and a missing file is not an error; an explicit path must exist.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
