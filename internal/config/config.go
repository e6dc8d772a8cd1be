package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Chart  ChartConfig  `yaml:"chart"`
	Trend  TrendConfig  `yaml:"trend"`
}

type InputConfig struct {
	Path string `yaml:"path"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

type ChartConfig struct {
	LabelSize           float64    `yaml:"label_size"`
	TitleSize           float64    `yaml:"title_size"`
	TickSize            float64    `yaml:"tick_size"`
	LineWidth           float64    `yaml:"line_width"`
	PredictionLineWidth float64    `yaml:"prediction_line_width"`
	FontVariant         string     `yaml:"font_variant"`
	Portrait            SizeConfig `yaml:"portrait"`
	Wide                SizeConfig `yaml:"wide"`
	Square              SizeConfig `yaml:"square"`
}

// SizeConfig is a figure size in inches.
type SizeConfig struct {
	WidthIn  float64 `yaml:"width_in"`
	HeightIn float64 `yaml:"height_in"`
}

type TrendConfig struct {
	HorizonDays int `yaml:"horizon_days"`
}

// Default returns the configuration matching the original figures: portrait
// 9x16, wide 16x9, square 9x8, 365-day trend horizon.
func Default() *Config {
	return &Config{
		Input:  InputConfig{Path: "20200401_PullUps.csv"},
		Output: OutputConfig{Dir: "Output"},
		Chart: ChartConfig{
			LabelSize:           30,
			TitleSize:           40,
			TickSize:            30,
			LineWidth:           5,
			PredictionLineWidth: 3,
			FontVariant:         "Sans",
			Portrait:            SizeConfig{WidthIn: 9, HeightIn: 16},
			Wide:                SizeConfig{WidthIn: 16, HeightIn: 9},
			Square:              SizeConfig{WidthIn: 9, HeightIn: 8},
		},
		Trend: TrendConfig{HorizonDays: 365},
	}
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is not an error: defaults apply. Env vars use
// the prefix EXERCISESTATS_:
//
//	EXERCISESTATS_INPUT_PATH, EXERCISESTATS_OUTPUT_DIR,
//	EXERCISESTATS_TREND_HORIZON_DAYS
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// missing file: defaults apply
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("EXERCISESTATS_INPUT_PATH"); v != "" {
		cfg.Input.Path = v
	}
	if v := os.Getenv("EXERCISESTATS_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("EXERCISESTATS_TREND_HORIZON_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.Trend.HorizonDays = days
		}
	}
}

func (c *Config) validate() error {
	if c.Input.Path == "" {
		return fmt.Errorf("input.path is required")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	for _, s := range []struct {
		name string
		size SizeConfig
	}{
		{"chart.portrait", c.Chart.Portrait},
		{"chart.wide", c.Chart.Wide},
		{"chart.square", c.Chart.Square},
	} {
		if s.size.WidthIn <= 0 || s.size.HeightIn <= 0 {
			return fmt.Errorf("%s must have positive dimensions", s.name)
		}
	}
	if c.Trend.HorizonDays < 1 {
		return fmt.Errorf("trend.horizon_days must be at least 1")
	}
	return nil
}
