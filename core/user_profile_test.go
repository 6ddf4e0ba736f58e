package core

import (
	"math"
	"testing"
)

func TestNewUserProfile(t *testing.T) {
	p := NewUserProfile("u1", "alice")
	if p.UserID != "u1" || p.Username != "alice" {
		t.Errorf("profile = %+v", p)
	}
	if p.GenrePreference("rpg") != 0.5 {
		t.Errorf("unset genre preference = %v, want 0.5", p.GenrePreference("rpg"))
	}
	if p.HasPlayed("g1") {
		t.Error("fresh profile should have no history")
	}
}

func TestSetPreferenceClampsAndLowercases(t *testing.T) {
	p := NewUserProfile("u1", "alice")

	p.SetGenrePreference("RPG", 1.7)
	if got := p.GenrePreference("rpg"); got != 1.0 {
		t.Errorf("clamped high = %v, want 1.0", got)
	}
	p.SetTagPreference("Story-Rich", -0.3)
	if got := p.TagPreference("story-rich"); got != 0.0 {
		t.Errorf("clamped low = %v, want 0.0", got)
	}
	// 大小写不敏感读取
	if p.GenrePreference("RpG") != 1.0 {
		t.Error("preference lookup must be case-insensitive")
	}
}

func TestLearnFromGame(t *testing.T) {
	game := &Game{
		ID:     "g1",
		Genres: []string{"RPG", "Fantasy"},
		Tags:   []string{"story-rich"},
	}

	p := NewUserProfile("u1", "alice")
	p.LearnFromGame(game, 9.0)

	if !p.HasPlayed("g1") {
		t.Error("history not recorded")
	}
	// 0.5 + 0.3·(0.9 − 0.5) = 0.62
	for _, genre := range []string{"rpg", "fantasy"} {
		if got := p.GenrePreference(genre); math.Abs(got-0.62) > 1e-12 {
			t.Errorf("%s = %v, want 0.62", genre, got)
		}
	}
	if got := p.TagPreference("story-rich"); math.Abs(got-0.62) > 1e-12 {
		t.Errorf("story-rich = %v, want 0.62", got)
	}

	// 第二次反馈：0.62 + 0.3·(0.9 − 0.62) = 0.704
	p.LearnFromGame(game, 9.0)
	if got := p.GenrePreference("rpg"); math.Abs(got-0.704) > 1e-12 {
		t.Errorf("rpg after second feedback = %v, want 0.704", got)
	}
	if len(p.PlayedGames) != 1 {
		t.Errorf("len(PlayedGames) = %d, want 1 (overwrite)", len(p.PlayedGames))
	}
}

func TestLearnFromGameLowRatingPullsDown(t *testing.T) {
	game := &Game{ID: "g1", Genres: []string{"shooter"}}

	p := NewUserProfile("u1", "alice")
	p.SetGenrePreference("shooter", 0.8)
	p.LearnFromGame(game, 2.0)

	// 0.8 + 0.3·(0.2 − 0.8) = 0.62
	if got := p.GenrePreference("shooter"); math.Abs(got-0.62) > 1e-12 {
		t.Errorf("shooter = %v, want 0.62", got)
	}
}

func TestLearnFromGameCustomSmoothing(t *testing.T) {
	game := &Game{ID: "g1", Genres: []string{"rpg"}}

	p := NewUserProfile("u1", "alice")
	p.Smoothing = 0.5
	p.LearnFromGame(game, 10.0)

	// 0.5 + 0.5·(1.0 − 0.5) = 0.75
	if got := p.GenrePreference("rpg"); math.Abs(got-0.75) > 1e-12 {
		t.Errorf("rpg = %v, want 0.75", got)
	}
}

func TestLearnFromGameNil(t *testing.T) {
	p := NewUserProfile("u1", "alice")
	p.LearnFromGame(nil, 9.0)
	if len(p.PlayedGames) != 0 {
		t.Error("nil game must be ignored")
	}
}

func TestDomainErrorChecks(t *testing.T) {
	if !IsNotFound(ErrGameNotFound) {
		t.Error("ErrGameNotFound should satisfy IsNotFound")
	}
	if !IsNotFound(ErrProfileNotFound) {
		t.Error("ErrProfileNotFound should satisfy IsNotFound")
	}
	if !IsNotSupported(ErrStoreNotSupported) {
		t.Error("ErrStoreNotSupported should satisfy IsNotSupported")
	}
	if IsNotFound(nil) {
		t.Error("IsNotFound(nil) must be false")
	}
	if !IsStoreNotFound(ErrStoreNotFound) {
		t.Error("ErrStoreNotFound should satisfy IsStoreNotFound")
	}
	// 其它模块的 NOT_FOUND 不是 store NOT_FOUND
	if IsStoreNotFound(ErrGameNotFound) {
		t.Error("catalog NOT_FOUND must not satisfy IsStoreNotFound")
	}
}
