// Package config loads the CLI's YAML configuration with CL_-prefixed
// environment overrides.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Gemini struct {
		APIKey        string `yaml:"api_key"`
		Model         string `yaml:"model"`
		PreVisitModel string `yaml:"previsit_model"`
	} `yaml:"gemini"`
	Voice struct {
		OpenAIKey string `yaml:"openai_key"`
		Enabled   bool   `yaml:"enabled"`
		OutPath   string `yaml:"out_path"`
	} `yaml:"voice"`
	Donation struct {
		Wallet  string `yaml:"wallet"`
		Cluster string `yaml:"cluster"`
	} `yaml:"donation"`
	Store struct {
		Path string `yaml:"path"`
	} `yaml:"store"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func Default() Config {
	var cfg Config
	cfg.Donation.Cluster = "devnet"
	cfg.Store.Path = "claimlens.db"
	cfg.Voice.OutPath = "readout.mp3"
	cfg.Log.Level = "info"
	return cfg
}

// Load reads the file at path (missing files fall back to defaults)
// and then applies environment overrides on top.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, err
			}
		} else {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, err
			}
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CL_GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := os.Getenv("CL_GEMINI_MODEL"); v != "" {
		cfg.Gemini.Model = v
	}
	if v := os.Getenv("CL_GEMINI_MODEL_PREVISIT"); v != "" {
		cfg.Gemini.PreVisitModel = v
	}
	if v := os.Getenv("CL_OPENAI_API_KEY"); v != "" {
		cfg.Voice.OpenAIKey = v
		cfg.Voice.Enabled = true
	}
	if v := os.Getenv("CL_DONATION_WALLET"); v != "" {
		cfg.Donation.Wallet = v
	}
	if v := os.Getenv("CL_SOLANA_CLUSTER"); v != "" {
		cfg.Donation.Cluster = v
	}
	if v := os.Getenv("CL_DB_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("CL_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
