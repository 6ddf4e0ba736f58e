package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ludokit/ludokit/core"
	"github.com/ludokit/ludokit/feature"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ludokit.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Model.Hidden1 != 128 || cfg.Model.Hidden2 != 64 || cfg.Model.EmbeddingDim != 32 {
		t.Errorf("default model sizes = %+v", cfg.Model)
	}
	if cfg.Model.Seed != 42 {
		t.Errorf("default seed = %d, want 42", cfg.Model.Seed)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("default backend = %q, want memory", cfg.Store.Backend)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
model:
  hidden1: 64
  hidden2: 32
  embedding_dim: 16
  seed: 7
store:
  backend: redis
  addr: localhost:6379
  db: 2
train:
  epochs: 100
  learning_rate: 0.05
rules:
  - 'game.price < 30.0'
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Model.Hidden1 != 64 || cfg.Model.EmbeddingDim != 16 || cfg.Model.Seed != 7 {
		t.Errorf("model = %+v", cfg.Model)
	}
	if cfg.Store.Backend != "redis" || cfg.Store.Addr != "localhost:6379" || cfg.Store.DB != 2 {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Train.Epochs != 100 || cfg.Train.LearningRate != 0.05 {
		t.Errorf("train = %+v", cfg.Train)
	}
	if len(cfg.Rules) != 1 {
		t.Errorf("rules = %v", cfg.Rules)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
train:
  epochs: 10
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	// 未设置的字段保持默认
	if cfg.Model.Hidden1 != 128 || cfg.Model.Seed != 42 {
		t.Errorf("model defaults lost: %+v", cfg.Model)
	}
	if cfg.Train.Epochs != 10 {
		t.Errorf("epochs = %d, want 10", cfg.Train.Epochs)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid default", func(c *Config) {}, false},
		{"redis without addr", func(c *Config) { c.Store.Backend = "redis" }, true},
		{"unknown backend", func(c *Config) { c.Store.Backend = "postgres" }, true},
		{"negative epochs", func(c *Config) { c.Train.Epochs = -1 }, true},
		{"smoothing out of range", func(c *Config) { c.Profile.Smoothing = 1.5 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/no/such/file.yaml"); err == nil {
		t.Error("Load() on missing file should fail")
	}
}

func TestBuildStore(t *testing.T) {
	cfg := Default()
	s, err := cfg.BuildStore()
	if err != nil {
		t.Fatalf("BuildStore() error: %v", err)
	}
	defer s.Close()
	if s.Name() != "memory" {
		t.Errorf("default backend = %q, want memory", s.Name())
	}

	cfg.Store.Backend = "postgres"
	if _, err := cfg.BuildStore(); err == nil {
		t.Error("BuildStore() with unknown backend should fail")
	}
}

func TestBuildPreferenceSource(t *testing.T) {
	vocab := feature.BuildVocabulary([]*core.Game{
		{ID: "g1", Genres: []string{"rpg"}, Tags: []string{"story-rich"}},
	})

	cfg := Default()
	src, err := cfg.BuildPreferenceSource(vocab)
	if err != nil || src != nil {
		t.Fatalf("disabled feast: src=%v err=%v, want nil, nil", src, err)
	}

	// gRPC 连接是惰性建立的，这里不需要真实服务
	cfg.Feast.Enabled = true
	cfg.Feast.Host = "localhost"
	cfg.Feast.Project = "ludokit"
	src, err = cfg.BuildPreferenceSource(vocab)
	if err != nil {
		t.Fatalf("BuildPreferenceSource() error: %v", err)
	}
	defer src.Client.Close()

	if src.GenreView != "user_genre_prefs" || src.TagView != "user_tag_prefs" {
		t.Errorf("views = %q/%q", src.GenreView, src.TagView)
	}
	if len(src.Genres) != 1 || src.Genres[0] != "rpg" {
		t.Errorf("Genres = %v, want [rpg] (from vocabulary)", src.Genres)
	}
	if len(src.Tags) != 1 || src.Tags[0] != "story-rich" {
		t.Errorf("Tags = %v, want [story-rich]", src.Tags)
	}
}
