package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Donation.Cluster != "devnet" {
		t.Fatalf("cluster = %q", cfg.Donation.Cluster)
	}
	if cfg.Store.Path != "claimlens.db" || cfg.Log.Level != "info" {
		t.Fatalf("defaults wrong: %+v", cfg)
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Donation.Cluster != "devnet" {
		t.Fatalf("cluster = %q", cfg.Donation.Cluster)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`gemini:
  api_key: file-key
  model: file-model
donation:
  wallet: Wallet111
  cluster: mainnet-beta
log:
  level: debug
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Gemini.APIKey != "file-key" || cfg.Gemini.Model != "file-model" {
		t.Fatalf("gemini = %+v", cfg.Gemini)
	}
	if cfg.Donation.Cluster != "mainnet-beta" || cfg.Log.Level != "debug" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("gemini:\n  api_key: file-key\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CL_GEMINI_API_KEY", "env-key")
	t.Setenv("CL_GEMINI_MODEL_PREVISIT", "env-previsit")
	t.Setenv("CL_DB_PATH", "/tmp/other.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Gemini.APIKey != "env-key" {
		t.Fatalf("api key = %q, env must win over file", cfg.Gemini.APIKey)
	}
	if cfg.Gemini.PreVisitModel != "env-previsit" || cfg.Store.Path != "/tmp/other.db" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestVoiceEnabledByEnvKey(t *testing.T) {
	t.Setenv("CL_OPENAI_API_KEY", "sk-test")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Voice.Enabled || cfg.Voice.OpenAIKey != "sk-test" {
		t.Fatalf("voice = %+v", cfg.Voice)
	}
}
