// Package engine 是推荐引擎门面：组装特征编码、投影塔、嵌入缓存与推荐 Pipeline。
//
// 典型用法：
//
//	eng, _ := engine.New(ctx, catalog.NewSampleCatalog(), store.NewProfileStore(ms))
//	recs, _ := eng.Recommend(ctx, "u1", 10)
package engine

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ludokit/ludokit/core"
	"github.com/ludokit/ludokit/feature"
	"github.com/ludokit/ludokit/filter"
	"github.com/ludokit/ludokit/model"
	"github.com/ludokit/ludokit/pipeline"
	"github.com/ludokit/ludokit/pkg/dsl"
	"github.com/ludokit/ludokit/rank"
	"github.com/ludokit/ludokit/recall"
	"github.com/ludokit/ludokit/rerank"
)

// embeddingConcurrency 限制嵌入重建的并发度。
const embeddingConcurrency = 8

// Engine 持有目录快照、共享投影塔与预计算的游戏嵌入。
//
// 并发模型：
//   - 目录快照、词表、编码器在构建后只读
//   - 嵌入缓存由 RWMutex 保护，刷新时整表替换（新 map 构建完再换引用），
//     读侧拿到的快照在整个请求期间自洽
//   - 塔权重只被 Train 修改；Train 与读请求并发时，读侧用的是旧嵌入快照
type Engine struct {
	catalog  core.Catalog
	profiles core.UserProfileStore

	games []*core.Game
	byID  map[string]*core.Game

	vocab   *feature.Vocabulary
	encoder *feature.Encoder
	tower   *model.Tower

	mu         sync.RWMutex
	embeddings map[string][]float64

	rules     []string
	smoothing float64
}

// Option 配置 Engine 的构建参数。
type Option func(*engineConfig)

type engineConfig struct {
	towerOpts []model.Option
	rules     []string
	smoothing float64
}

// WithTowerOptions 透传投影塔的构建选项（隐层宽度、嵌入维度、种子）。
func WithTowerOptions(opts ...model.Option) Option {
	return func(c *engineConfig) {
		c.towerOpts = append(c.towerOpts, opts...)
	}
}

// WithRules 追加 CEL 过滤规则，作用于所有推荐/相似请求。
// 规则描述保留条件，例如 `game.price < 30.0`；非法表达式在 New 时报错。
func WithRules(exprs ...string) Option {
	return func(c *engineConfig) {
		c.rules = append(c.rules, exprs...)
	}
}

// WithSmoothing 设置冷启动新建画像的偏好平滑系数。
// 0 表示使用 core.DefaultSmoothing；已持久化画像的系数不受影响。
func WithSmoothing(alpha float64) Option {
	return func(c *engineConfig) {
		c.smoothing = alpha
	}
}

// New 构建推荐引擎：加载目录快照、构建词表与塔、预计算全量游戏嵌入。
func New(ctx context.Context, cat core.Catalog, profiles core.UserProfileStore, opts ...Option) (*Engine, error) {
	if cat == nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
			"engine: catalog is required")
	}

	cfg := &engineConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	// 规则在构建期编译校验：坏规则直接报错，而不是请求期悄悄失效
	for _, expr := range cfg.rules {
		if err := dsl.Validate(expr); err != nil {
			return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
				fmt.Sprintf("engine: invalid rule %q: %v", expr, err))
		}
	}

	games, err := cat.ListAllGames(ctx)
	if err != nil {
		return nil, err
	}

	vocab := feature.BuildVocabulary(games)
	tower, err := model.NewTower(vocab.FeatureSize(), cfg.towerOpts...)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		catalog:   cat,
		profiles:  profiles,
		games:     games,
		byID:      make(map[string]*core.Game, len(games)),
		vocab:     vocab,
		encoder:   feature.NewEncoder(vocab),
		tower:     tower,
		rules:     cfg.rules,
		smoothing: cfg.smoothing,
	}
	for _, g := range games {
		if g != nil {
			e.byID[g.ID] = g
		}
	}

	if err := e.RefreshEmbeddings(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// Vocabulary 返回引擎使用的特征词表。
func (e *Engine) Vocabulary() *feature.Vocabulary { return e.vocab }

// Tower 返回共享投影塔。
func (e *Engine) Tower() *model.Tower { return e.tower }

// RefreshEmbeddings 重建全量游戏嵌入并原子替换缓存。
// 构建发生在新 map 上，完成后一次引用替换；读侧永远不会看到半新半旧的缓存。
func (e *Engine) RefreshEmbeddings(ctx context.Context) error {
	embs := make([][]float64, len(e.games))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(embeddingConcurrency)
	for i, game := range e.games {
		i, game := i, game
		g.Go(func() error {
			emb, err := e.tower.Project(e.encoder.EncodeGame(game))
			if err != nil {
				return err
			}
			embs[i] = emb
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	next := make(map[string][]float64, len(e.games))
	for i, game := range e.games {
		if game != nil {
			next[game.ID] = embs[i]
		}
	}

	e.mu.Lock()
	e.embeddings = next
	e.mu.Unlock()
	return nil
}

// embeddingSnapshot 是嵌入缓存的一次性只读视图。
type embeddingSnapshot map[string][]float64

func (s embeddingSnapshot) Embedding(gameID string) ([]float64, bool) {
	emb, ok := s[gameID]
	return emb, ok
}

var _ rank.EmbeddingIndex = (embeddingSnapshot)(nil)

func (e *Engine) snapshot() embeddingSnapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.embeddings
}

// GameEmbedding 返回一个游戏的预计算嵌入（副本），未知 ID 返回 NOT_FOUND。
func (e *Engine) GameEmbedding(gameID string) ([]float64, error) {
	emb, ok := e.snapshot()[gameID]
	if !ok {
		return nil, core.ErrGameNotFound
	}
	out := make([]float64, len(emb))
	copy(out, emb)
	return out, nil
}

// Recommend 为用户生成 Top-N 推荐。
//
// 用户编码采用 history-blended 特征；已玩过的游戏被过滤；
// 结果按相似度降序，同分保持目录顺序；候选不足 topN 时返回全部；
// 用户玩遍目录时返回空列表（不是错误）。
//
// 未知 userID 返回 profile 模块的 NOT_FOUND。
func (e *Engine) Recommend(ctx context.Context, userID string, topN int) ([]*core.ScoredGame, error) {
	if e.profiles == nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
			"engine: profile store is required for user recommendations")
	}
	profile, err := e.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return e.RecommendForProfile(ctx, profile, topN)
}

// RecommendForProfile 以给定画像生成推荐（画像可以是临时构造的，无需入库）。
// 关键词合成画像、A/B 实验画像都走这个入口。
func (e *Engine) RecommendForProfile(ctx context.Context, profile *core.UserProfile, topN int) ([]*core.ScoredGame, error) {
	if profile == nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
			"engine: profile is required")
	}

	query, err := e.tower.Project(e.encoder.EncodeUserFromHistory(profile, e.games))
	if err != nil {
		return nil, err
	}

	rctx := &core.RecommendContext{
		UserID: profile.UserID,
		Scene:  "recommend",
		User:   profile,
	}
	filters := []filter.Filter{&filter.PlayedFilter{}}
	return e.run(ctx, rctx, query, filters, topN)
}

// FindSimilar 返回与指定游戏最相似的 Top-N 游戏（排除自身）。
// 未知 gameID 返回 catalog 模块的 NOT_FOUND。
func (e *Engine) FindSimilar(ctx context.Context, gameID string, topN int) ([]*core.ScoredGame, error) {
	query, err := e.GameEmbedding(gameID)
	if err != nil {
		return nil, err
	}

	rctx := &core.RecommendContext{
		Scene:  "find_similar",
		Params: map[string]any{"query_game_id": gameID},
	}
	filters := []filter.Filter{&filter.BlacklistFilter{GameIDs: []string{gameID}}}
	return e.run(ctx, rctx, query, filters, topN)
}

// RecordFeedback 记录一次用户评分并同步更新画像。
//
// 画像不存在时自动创建（冷启动）；未知 gameID 返回 NOT_FOUND；
// 同一游戏重复评分覆盖历史，偏好平滑再次执行（幂等的历史、收敛的偏好）。
func (e *Engine) RecordFeedback(ctx context.Context, userID, gameID string, rating float64) error {
	if e.profiles == nil {
		return core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
			"engine: profile store is required for feedback")
	}
	game, ok := e.byID[gameID]
	if !ok {
		return core.ErrGameNotFound
	}

	profile, err := e.profiles.GetProfile(ctx, userID)
	if err != nil {
		if !core.IsNotFound(err) {
			return err
		}
		profile = core.NewUserProfile(userID, userID)
		profile.Smoothing = e.smoothing
	}

	profile.LearnFromGame(game, rating)
	return e.profiles.SaveProfile(ctx, profile)
}

// run 组装并执行推荐 Pipeline：召回目录全量 → 过滤 → 相似度排序 → Top-N 截断。
func (e *Engine) run(
	ctx context.Context,
	rctx *core.RecommendContext,
	query []float64,
	filters []filter.Filter,
	topN int,
) ([]*core.ScoredGame, error) {
	for _, expr := range e.rules {
		filters = append(filters, &filter.RuleFilter{Expr: expr})
	}

	p := &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&recall.CatalogSource{Games: e.games},
			&filter.FilterNode{Filters: filters},
			&rank.SimilarityNode{Index: e.snapshot(), Query: query},
			&rerank.TopNNode{N: topN},
		},
	}

	items, err := p.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}

	out := make([]*core.ScoredGame, 0, len(items))
	for _, it := range items {
		if it == nil || it.Game == nil {
			continue
		}
		out = append(out, &core.ScoredGame{Game: it.Game, Score: it.Score})
	}
	return out, nil
}
