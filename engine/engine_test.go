package engine

import (
	"context"
	"testing"

	"github.com/ludokit/ludokit/catalog"
	"github.com/ludokit/ludokit/core"
	"github.com/ludokit/ludokit/model"
	"github.com/ludokit/ludokit/store"
)

func newTestEngine(t *testing.T) (*Engine, *store.ProfileStore, func()) {
	t.Helper()
	ms := store.NewMemoryStore()
	ps := store.NewProfileStore(ms)
	eng, err := New(context.Background(), catalog.NewSampleCatalog(), ps,
		WithTowerOptions(model.WithHiddenSizes(32, 16), model.WithEmbeddingDim(8)))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return eng, ps, func() { ms.Close() }
}

func TestNewPrecomputesEmbeddings(t *testing.T) {
	eng, _, done := newTestEngine(t)
	defer done()

	for _, g := range catalog.SampleGames() {
		emb, err := eng.GameEmbedding(g.ID)
		if err != nil {
			t.Fatalf("GameEmbedding(%s) error: %v", g.ID, err)
		}
		if len(emb) != 8 {
			t.Fatalf("len(emb) = %d, want 8", len(emb))
		}
	}

	if _, err := eng.GameEmbedding("missing"); !core.IsNotFound(err) {
		t.Errorf("GameEmbedding(missing) error = %v, want NOT_FOUND", err)
	}
}

func TestRecommendBasics(t *testing.T) {
	eng, ps, done := newTestEngine(t)
	defer done()
	ctx := context.Background()

	p := core.NewUserProfile("u1", "alice")
	p.SetGenrePreference("rpg", 0.95)
	p.SetGenrePreference("fantasy", 0.9)
	p.AddPlayedGame("g002", 9.0)
	if err := ps.SaveProfile(ctx, p); err != nil {
		t.Fatalf("SaveProfile() error: %v", err)
	}

	recs, err := eng.Recommend(ctx, "u1", 5)
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	if len(recs) == 0 || len(recs) > 5 {
		t.Fatalf("len(recs) = %d, want 1..5", len(recs))
	}

	// 已玩过的游戏绝不出现
	for _, r := range recs {
		if r.Game.ID == "g002" {
			t.Error("played game appeared in recommendations")
		}
	}

	// 分数非递增
	for i := 1; i < len(recs); i++ {
		if recs[i].Score > recs[i-1].Score {
			t.Errorf("scores not non-increasing at %d: %v > %v", i, recs[i].Score, recs[i-1].Score)
		}
	}
}

func TestRecommendUnknownUser(t *testing.T) {
	eng, _, done := newTestEngine(t)
	defer done()

	if _, err := eng.Recommend(context.Background(), "nobody", 5); !core.IsNotFound(err) {
		t.Errorf("Recommend(nobody) error = %v, want NOT_FOUND", err)
	}
}

func TestRecommendAllPlayed(t *testing.T) {
	eng, ps, done := newTestEngine(t)
	defer done()
	ctx := context.Background()

	p := core.NewUserProfile("u2", "bob")
	for _, g := range catalog.SampleGames() {
		p.AddPlayedGame(g.ID, 8.0)
	}
	if err := ps.SaveProfile(ctx, p); err != nil {
		t.Fatalf("SaveProfile() error: %v", err)
	}

	recs, err := eng.Recommend(ctx, "u2", 10)
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("len(recs) = %d, want 0 (all games played, not an error)", len(recs))
	}
}

func TestRecommendTopNLargerThanCatalog(t *testing.T) {
	eng, ps, done := newTestEngine(t)
	defer done()
	ctx := context.Background()

	p := core.NewUserProfile("u3", "carol")
	if err := ps.SaveProfile(ctx, p); err != nil {
		t.Fatalf("SaveProfile() error: %v", err)
	}

	recs, err := eng.Recommend(ctx, "u3", 100)
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	if len(recs) != 15 {
		t.Errorf("len(recs) = %d, want 15 (whole catalog)", len(recs))
	}
}

func TestRecommendDeterministic(t *testing.T) {
	ms := store.NewMemoryStore()
	defer ms.Close()
	ps := store.NewProfileStore(ms)
	ctx := context.Background()

	p := core.NewUserProfile("u1", "alice")
	p.SetGenrePreference("strategy", 0.9)
	p.AddPlayedGame("g007", 9.5)
	if err := ps.SaveProfile(ctx, p); err != nil {
		t.Fatalf("SaveProfile() error: %v", err)
	}

	build := func() []*core.ScoredGame {
		eng, err := New(ctx, catalog.NewSampleCatalog(), ps)
		if err != nil {
			t.Fatalf("New() error: %v", err)
		}
		recs, err := eng.Recommend(ctx, "u1", 10)
		if err != nil {
			t.Fatalf("Recommend() error: %v", err)
		}
		return recs
	}

	r1 := build()
	r2 := build()
	if len(r1) != len(r2) {
		t.Fatalf("lengths differ: %d vs %d", len(r1), len(r2))
	}
	for i := range r1 {
		if r1[i].Game.ID != r2[i].Game.ID || r1[i].Score != r2[i].Score {
			t.Errorf("rank %d differs: %s(%v) vs %s(%v)",
				i, r1[i].Game.ID, r1[i].Score, r2[i].Game.ID, r2[i].Score)
		}
	}
}

func TestRecommendPrefersMatchingGenre(t *testing.T) {
	// 两款游戏、一个明确偏好 rpg 的新用户：
	// 未经训练，种子初始化下 rpg 游戏必须排在 shooter 前面。
	games := []*core.Game{
		{ID: "a", Title: "Rune Quest", Genres: []string{"rpg"}, Rating: 9.0},
		{ID: "b", Title: "Iron Sight", Genres: []string{"shooter"}, Rating: 7.0},
	}

	ctx := context.Background()
	eng, err := New(ctx, catalog.NewMemoryCatalog(games), nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	p := core.NewUserProfile("u1", "alice")
	p.SetGenrePreference("rpg", 0.95)

	recs, err := eng.RecommendForProfile(ctx, p, 2)
	if err != nil {
		t.Fatalf("RecommendForProfile() error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len(recs) = %d, want 2", len(recs))
	}
	if recs[0].Game.ID != "a" {
		t.Errorf("top = %s (%v), want a (rpg preference)", recs[0].Game.ID, recs[0].Score)
	}
	if recs[0].Score <= recs[1].Score {
		t.Errorf("scores %v <= %v, want strict preference for rpg game",
			recs[0].Score, recs[1].Score)
	}
}

func TestFindSimilar(t *testing.T) {
	// 构造含特征完全相同的两个游戏的目录：
	// 查询其一，另一个的嵌入逐位相同，余弦恰为 1，必然排第一。
	clone := func(id, title string) *core.Game {
		return &core.Game{
			ID: id, Title: title,
			Genres: []string{"RPG", "Fantasy"},
			Tags:   []string{"story-rich", "magic"},
			Rating: 9.0, ReleaseYear: 2023, Platform: "PC",
			PlaytimeHours: 80, Price: 49.99, Difficulty: "hard",
		}
	}
	games := []*core.Game{
		clone("twin-a", "Twin A"),
		clone("twin-b", "Twin B"),
		{
			ID: "other", Title: "Casual Other",
			Genres: []string{"Casual", "Puzzle"},
			Tags:   []string{"relaxing"},
			Rating: 6.0, ReleaseYear: 2015, Platform: "Mobile",
			PlaytimeHours: 5, Price: 1.99, Multiplayer: true, Difficulty: "easy",
		},
	}

	ctx := context.Background()
	eng, err := New(ctx, catalog.NewMemoryCatalog(games), nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	sims, err := eng.FindSimilar(ctx, "twin-a", 10)
	if err != nil {
		t.Fatalf("FindSimilar() error: %v", err)
	}
	if len(sims) != 2 {
		t.Fatalf("len(sims) = %d, want 2", len(sims))
	}
	// 查询游戏自身被排除
	for _, s := range sims {
		if s.Game.ID == "twin-a" {
			t.Error("query game appeared in its own similar list")
		}
	}
	if sims[0].Game.ID != "twin-b" {
		t.Errorf("top similar = %s, want twin-b (identical features)", sims[0].Game.ID)
	}
	if sims[0].Score < 0.999999 {
		t.Errorf("identical-feature similarity = %v, want ~1.0", sims[0].Score)
	}
}

func TestFindSimilarUnknownGame(t *testing.T) {
	eng, _, done := newTestEngine(t)
	defer done()

	if _, err := eng.FindSimilar(context.Background(), "missing", 5); !core.IsNotFound(err) {
		t.Errorf("FindSimilar(missing) error = %v, want NOT_FOUND", err)
	}
}

func TestRecordFeedback(t *testing.T) {
	eng, ps, done := newTestEngine(t)
	defer done()
	ctx := context.Background()

	// 冷启动：画像不存在时自动创建
	if err := eng.RecordFeedback(ctx, "newbie", "g001", 9.0); err != nil {
		t.Fatalf("RecordFeedback() error: %v", err)
	}

	p, err := ps.GetProfile(ctx, "newbie")
	if err != nil {
		t.Fatalf("GetProfile() error: %v", err)
	}
	if !p.HasPlayed("g001") {
		t.Error("feedback did not record play history")
	}
	// g001 的类别 action：0.5 + 0.3·(0.9 − 0.5) = 0.62
	if got := p.GenrePreference("action"); got < 0.619 || got > 0.621 {
		t.Errorf("action preference = %v, want 0.62", got)
	}
}

func TestRecordFeedbackIdempotentHistory(t *testing.T) {
	eng, ps, done := newTestEngine(t)
	defer done()
	ctx := context.Background()

	if err := eng.RecordFeedback(ctx, "u1", "g001", 6.0); err != nil {
		t.Fatalf("RecordFeedback() error: %v", err)
	}
	if err := eng.RecordFeedback(ctx, "u1", "g001", 9.0); err != nil {
		t.Fatalf("RecordFeedback() error: %v", err)
	}

	p, err := ps.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetProfile() error: %v", err)
	}
	if len(p.PlayedGames) != 1 {
		t.Errorf("len(PlayedGames) = %d, want 1 (rating overwritten)", len(p.PlayedGames))
	}
	if p.PlayedGames["g001"] != 9.0 {
		t.Errorf("stored rating = %v, want 9.0", p.PlayedGames["g001"])
	}
}

func TestRecordFeedbackSmoothingOption(t *testing.T) {
	ms := store.NewMemoryStore()
	defer ms.Close()
	ps := store.NewProfileStore(ms)
	ctx := context.Background()

	eng, err := New(ctx, catalog.NewSampleCatalog(), ps, WithSmoothing(0.5))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if err := eng.RecordFeedback(ctx, "fresh", "g001", 9.0); err != nil {
		t.Fatalf("RecordFeedback() error: %v", err)
	}

	p, err := ps.GetProfile(ctx, "fresh")
	if err != nil {
		t.Fatalf("GetProfile() error: %v", err)
	}
	if p.Smoothing != 0.5 {
		t.Errorf("Smoothing = %v, want 0.5 (cold-start profile inherits option)", p.Smoothing)
	}
	// 0.5 + 0.5·(0.9 − 0.5) = 0.7
	if got := p.GenrePreference("action"); got < 0.699 || got > 0.701 {
		t.Errorf("action preference = %v, want 0.7", got)
	}
}

func TestNewRejectsInvalidRule(t *testing.T) {
	_, err := New(context.Background(), catalog.NewSampleCatalog(), nil,
		WithRules(`game.price +`))
	if !core.IsInvalidInput(err) {
		t.Errorf("New(bad rule) error = %v, want INVALID_INPUT", err)
	}
}

func TestRecordFeedbackUnknownGame(t *testing.T) {
	eng, _, done := newTestEngine(t)
	defer done()

	if err := eng.RecordFeedback(context.Background(), "u1", "missing", 8.0); !core.IsNotFound(err) {
		t.Errorf("RecordFeedback(missing game) error = %v, want NOT_FOUND", err)
	}
}

func TestEngineWithRules(t *testing.T) {
	ms := store.NewMemoryStore()
	defer ms.Close()
	ps := store.NewProfileStore(ms)
	ctx := context.Background()

	p := core.NewUserProfile("u1", "alice")
	if err := ps.SaveProfile(ctx, p); err != nil {
		t.Fatalf("SaveProfile() error: %v", err)
	}

	eng, err := New(ctx, catalog.NewSampleCatalog(), ps,
		WithRules(`game.price < 30.0`))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	recs, err := eng.Recommend(ctx, "u1", 20)
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("rule filter removed everything")
	}
	for _, r := range recs {
		if r.Game.Price >= 30.0 {
			t.Errorf("%s price %v violates rule", r.Game.ID, r.Game.Price)
		}
	}
}

func TestEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	eng, err := New(ctx, catalog.NewMemoryCatalog(nil), nil)
	if err != nil {
		t.Fatalf("New() on empty catalog error: %v", err)
	}

	recs, err := eng.RecommendForProfile(ctx, core.NewUserProfile("u1", "alice"), 5)
	if err != nil {
		t.Fatalf("RecommendForProfile() error: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("len(recs) = %d, want 0", len(recs))
	}
}
