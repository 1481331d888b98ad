package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config drives the host binary. Every field has a default; a config file
// overrides what it sets.
type Config struct {
	Title            string             `toml:"title"`
	Width            int                `toml:"width"`
	Height           int                `toml:"height"`
	VSync            bool               `toml:"vsync"`
	Scene            string             `toml:"scene"`
	CrossfadeSeconds float64            `toml:"crossfade_seconds"`
	ArtworkURL       string             `toml:"artwork_url"`
	QualityScale     float64            `toml:"quality_scale"`
	Antialias        int                `toml:"antialias"`
	Bloom            float64            `toml:"bloom"`
	ReducedMotion    bool               `toml:"reduced_motion"`
	EpilepsySafe     bool               `toml:"epilepsy_safe"`
	Macros           map[string]float64 `toml:"macros"`
	Phrase           PhraseConfig       `toml:"phrase"`
}

// PhraseConfig drives the demo phrase ticker standing in for an external
// beat tracker.
type PhraseConfig struct {
	Tempo       float64 `toml:"tempo"`
	BeatsPerBar int     `toml:"beats_per_bar"`
}

func defaultConfig() Config {
	return Config{
		Title:            "dwdw visualizer",
		Width:            1280,
		Height:           720,
		VSync:            true,
		Scene:            "Particles",
		CrossfadeSeconds: 2,
		QualityScale:     1,
		Bloom:            0.8,
		Phrase:           PhraseConfig{Tempo: 120, BeatsPerBar: 4},
	}
}

// loadConfig returns defaults when path is empty, otherwise defaults overlaid
// with the TOML file.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("config: window size %dx%d invalid", c.Width, c.Height)
	}
	if c.CrossfadeSeconds < 0 {
		return fmt.Errorf("config: crossfade_seconds %v negative", c.CrossfadeSeconds)
	}
	if c.Antialias < 0 {
		return fmt.Errorf("config: antialias %d negative", c.Antialias)
	}
	if c.Phrase.Tempo <= 0 {
		return fmt.Errorf("config: phrase tempo %v must be positive", c.Phrase.Tempo)
	}
	if c.Phrase.BeatsPerBar < 1 {
		return fmt.Errorf("config: beats_per_bar %d must be at least 1", c.Phrase.BeatsPerBar)
	}
	return nil
}
