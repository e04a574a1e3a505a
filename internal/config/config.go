package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	Data struct {
		Path string `yaml:"path"`
	} `yaml:"data"`

	Split struct {
		Fraction float64 `yaml:"fraction"`
		Seed     int64   `yaml:"seed"`
	} `yaml:"split"`

	Balance struct {
		Seed int64 `yaml:"seed"`
	} `yaml:"balance"`

	Forest struct {
		Trees    int   `yaml:"trees"`
		Seed     int64 `yaml:"seed"`
		MaxDepth int   `yaml:"max_depth"`
		MinLeaf  int   `yaml:"min_leaf"`
	} `yaml:"forest"`

	Evaluate struct {
		Threshold float64 `yaml:"threshold"`
	} `yaml:"evaluate"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Output struct {
		ROCSVGPath string `yaml:"roc_svg_path"`
	} `yaml:"output"`

	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
}

// LoadConfig loads configuration from YAML file
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	// Set defaults
	if config.Data.Path == "" {
		config.Data.Path = "./data/depression_student_dataset.csv"
	}

	if config.Split.Fraction == 0 {
		config.Split.Fraction = 0.70
	}

	if config.Split.Seed == 0 {
		config.Split.Seed = 1234
	}

	if config.Balance.Seed == 0 {
		config.Balance.Seed = 42
	}

	if config.Forest.Trees == 0 {
		config.Forest.Trees = 500
	}

	if config.Forest.Seed == 0 {
		config.Forest.Seed = 7
	}

	if config.Evaluate.Threshold == 0 {
		config.Evaluate.Threshold = 0.5
	}

	if config.Database.Path == "" {
		config.Database.Path = "./data/runs.db"
	}

	if config.Output.ROCSVGPath == "" {
		config.Output.ROCSVGPath = "./data/roc.svg"
	}

	if config.Server.Port == "" {
		config.Server.Port = "8003"
	}

	return config, nil
}
