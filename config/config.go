// Package config 提供引擎的 YAML 配置：模型结构、存储后端、训练默认值、过滤规则。
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ludokit/ludokit/core"
	"github.com/ludokit/ludokit/engine"
	"github.com/ludokit/ludokit/feast"
	"github.com/ludokit/ludokit/feature"
	"github.com/ludokit/ludokit/model"
	"github.com/ludokit/ludokit/store"
)

// Config 是引擎的顶层配置结构。
type Config struct {
	Model   ModelConfig   `yaml:"model"`
	Store   StoreConfig   `yaml:"store"`
	Train   TrainConfig   `yaml:"train"`
	Feast   FeastConfig   `yaml:"feast"`
	Rules   []string      `yaml:"rules"`
	Profile ProfileConfig `yaml:"profile"`
}

// ModelConfig 配置投影塔结构。
type ModelConfig struct {
	Hidden1      int   `yaml:"hidden1"`
	Hidden2      int   `yaml:"hidden2"`
	EmbeddingDim int   `yaml:"embedding_dim"`
	Seed         int64 `yaml:"seed"`
}

// StoreConfig 配置画像/目录的存储后端。
type StoreConfig struct {
	Backend string `yaml:"backend"` // memory / redis
	Addr    string `yaml:"addr"`    // redis 地址
	DB      int    `yaml:"db"`      // redis db
}

// TrainConfig 配置训练默认参数。
type TrainConfig struct {
	Epochs       int     `yaml:"epochs"`
	LearningRate float64 `yaml:"learning_rate"`
}

// FeastConfig 配置 Feast 在线特征服务（可选）。
type FeastConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	Project string `yaml:"project"`

	// GenreView / TagView 是偏好特征所在的 feature view 名称
	GenreView string `yaml:"genre_view"`
	TagView   string `yaml:"tag_view"`
}

// ProfileConfig 配置画像演进参数。
type ProfileConfig struct {
	Smoothing float64 `yaml:"smoothing"`
}

// Default 返回内置默认配置。
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			Hidden1:      model.DefaultHidden1,
			Hidden2:      model.DefaultHidden2,
			EmbeddingDim: model.DefaultEmbeddingDim,
			Seed:         model.DefaultSeed,
		},
		Store: StoreConfig{
			Backend: "memory",
		},
		Train: TrainConfig{
			Epochs:       50,
			LearningRate: 0.01,
		},
		Feast: FeastConfig{
			Port:      6566,
			GenreView: "user_genre_prefs",
			TagView:   "user_tag_prefs",
		},
	}
}

// Load 从 YAML 文件加载配置，未设置的字段保持默认值。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查配置的合法性。
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "", "memory":
	case "redis":
		if c.Store.Addr == "" {
			return fmt.Errorf("config: redis backend requires addr")
		}
	default:
		return fmt.Errorf("config: unknown store backend %q", c.Store.Backend)
	}
	if c.Model.Hidden1 < 0 || c.Model.Hidden2 < 0 || c.Model.EmbeddingDim < 0 {
		return fmt.Errorf("config: model sizes must be non-negative")
	}
	if c.Train.Epochs < 0 {
		return fmt.Errorf("config: train epochs must be non-negative")
	}
	if c.Train.LearningRate < 0 {
		return fmt.Errorf("config: learning rate must be non-negative")
	}
	if c.Profile.Smoothing < 0 || c.Profile.Smoothing > 1 {
		return fmt.Errorf("config: smoothing must be within [0,1]")
	}
	return nil
}

// TowerOptions 把模型配置转换为塔的构建选项。
func (c *Config) TowerOptions() []model.Option {
	var opts []model.Option
	if c.Model.Hidden1 > 0 && c.Model.Hidden2 > 0 {
		opts = append(opts, model.WithHiddenSizes(c.Model.Hidden1, c.Model.Hidden2))
	}
	if c.Model.EmbeddingDim > 0 {
		opts = append(opts, model.WithEmbeddingDim(c.Model.EmbeddingDim))
	}
	if c.Model.Seed != 0 {
		opts = append(opts, model.WithSeed(c.Model.Seed))
	}
	return opts
}

// EngineOptions 把配置转换为引擎构建选项（塔结构 + 过滤规则 + 画像平滑系数）。
func (c *Config) EngineOptions() []engine.Option {
	opts := []engine.Option{
		engine.WithTowerOptions(c.TowerOptions()...),
	}
	if len(c.Rules) > 0 {
		opts = append(opts, engine.WithRules(c.Rules...))
	}
	if c.Profile.Smoothing > 0 {
		opts = append(opts, engine.WithSmoothing(c.Profile.Smoothing))
	}
	return opts
}

// BuildStore 按配置创建存储后端。
// 调用方负责 Close；memory 后端用于开发/测试，redis 用于生产。
func (c *Config) BuildStore() (core.KeyValueStore, error) {
	switch c.Store.Backend {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "redis":
		return store.NewRedisStore(c.Store.Addr, c.Store.DB)
	default:
		return nil, fmt.Errorf("config: unknown store backend %q", c.Store.Backend)
	}
}

// BuildPreferenceSource 按配置创建 Feast 偏好源（冷启动画像回填）。
// Feast 未启用时返回 (nil, nil)；词表决定要拉取的特征项。
func (c *Config) BuildPreferenceSource(vocab *feature.Vocabulary) (*feast.PreferenceSource, error) {
	if !c.Feast.Enabled {
		return nil, nil
	}
	client, err := feast.NewGrpcClient(c.Feast.Host, c.Feast.Port, c.Feast.Project)
	if err != nil {
		return nil, err
	}
	return &feast.PreferenceSource{
		Client:    client,
		Project:   c.Feast.Project,
		GenreView: c.Feast.GenreView,
		TagView:   c.Feast.TagView,
		Genres:    vocab.Genres,
		Tags:      vocab.Tags,
	}, nil
}
