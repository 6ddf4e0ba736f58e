package feature

import (
	"github.com/ludokit/ludokit/core"
)

// 数值特征归一化基准。
const (
	ratingScale    = 10.0 // 评分 0-10
	yearBase       = 1990 // 发行年份从 1990 起算
	yearSpan       = 35.0
	playtimeScale  = 100.0 // 游玩时长 100h 封顶
	priceScale     = 70.0  // 价格 70 封顶
	neutralWeight  = 0.5
	defaultRating  = 0.7 // 用户向量：评分段的先验（偏好高分游戏）
	defaultRecency = 0.8 // 用户向量：年份段的先验（偏好较新游戏）
)

// Encoder 把游戏/用户画像编码为同一特征空间下的定长向量。
// Encoder 无内部状态，线程安全，可在多个 goroutine 间共享。
type Encoder struct {
	vocab *Vocabulary
}

// NewEncoder 创建特征编码器，词表不可为 nil。
func NewEncoder(vocab *Vocabulary) *Encoder {
	return &Encoder{vocab: vocab}
}

// Vocabulary 返回编码器绑定的词表。
func (e *Encoder) Vocabulary() *Vocabulary {
	return e.vocab
}

// FeatureSize 返回编码结果的维度。
func (e *Encoder) FeatureSize() int {
	return e.vocab.FeatureSize()
}

// EncodeGame 将游戏编码为特征向量。
//
// one-hot 段：命中词表的类别/标签/难度/平台置 1；词表外的值静默忽略。
// 数值段（均 clamp 到 [0,1]）：
//
//	rating/10, (year-1990)/35, min(1, playtime/100), min(1, price/70), multiplayer∈{0,1}
func (e *Encoder) EncodeGame(game *core.Game) []float64 {
	vec := make([]float64, e.vocab.FeatureSize())
	if game == nil {
		return vec
	}

	offset := 0
	for _, genre := range game.Genres {
		if slot := e.vocab.GenreSlot(genre); slot >= 0 {
			vec[offset+slot] = 1.0
		}
	}
	offset += len(e.vocab.Genres)

	for _, tag := range game.Tags {
		if slot := e.vocab.TagSlot(tag); slot >= 0 {
			vec[offset+slot] = 1.0
		}
	}
	offset += len(e.vocab.Tags)

	if slot := e.vocab.DifficultySlot(game.Difficulty); slot >= 0 {
		vec[offset+slot] = 1.0
	}
	offset += len(e.vocab.Difficulties)

	if slot := e.vocab.PlatformSlot(game.Platform); slot >= 0 {
		vec[offset+slot] = 1.0
	}
	offset += len(e.vocab.Platforms)

	vec[offset] = clamp01(game.Rating / ratingScale)
	vec[offset+1] = clamp01(float64(game.ReleaseYear-yearBase) / yearSpan)
	vec[offset+2] = clamp01(game.PlaytimeHours / playtimeScale)
	vec[offset+3] = clamp01(game.Price / priceScale)
	if game.Multiplayer {
		vec[offset+4] = 1.0
	}
	return vec
}

// EncodeUser 将用户画像编码为特征向量（显式偏好版本）。
//
// one-hot 段填入偏好权重（未设置的槽位取中性值 0.5）；
// 难度/平台段全部置 0.5（画像不建模这两个维度）；
// 数值段使用固定先验：0.7, 0.8, 0.5, 0.5, 0.5。
func (e *Encoder) EncodeUser(profile *core.UserProfile) []float64 {
	vec := make([]float64, e.vocab.FeatureSize())

	offset := 0
	for i, genre := range e.vocab.Genres {
		vec[offset+i] = neutralWeight
		if profile != nil {
			vec[offset+i] = profile.GenrePreference(genre)
		}
	}
	offset += len(e.vocab.Genres)

	for i, tag := range e.vocab.Tags {
		vec[offset+i] = neutralWeight
		if profile != nil {
			vec[offset+i] = profile.TagPreference(tag)
		}
	}
	offset += len(e.vocab.Tags)

	for i := 0; i < len(e.vocab.Difficulties)+len(e.vocab.Platforms); i++ {
		vec[offset+i] = neutralWeight
	}
	offset += len(e.vocab.Difficulties) + len(e.vocab.Platforms)

	vec[offset] = defaultRating
	vec[offset+1] = defaultRecency
	vec[offset+2] = neutralWeight
	vec[offset+3] = neutralWeight
	vec[offset+4] = neutralWeight
	return vec
}

// EncodeUserFromHistory 将用户编码为“显式偏好 + 游玩历史”的混合向量。
//
// 历史向量 = 已评分游戏特征向量的加权平均（权重 = rating/10），
// 不在目录中的历史 gameID 跳过；总权重为 0 时跳过归一化（历史向量保持零向量）。
// 最终向量 = 0.5 * 显式偏好 + 0.5 * 历史向量；无任何评分记录时退化为纯显式偏好。
func (e *Encoder) EncodeUserFromHistory(profile *core.UserProfile, games []*core.Game) []float64 {
	explicit := e.EncodeUser(profile)
	if profile == nil || len(profile.PlayedGames) == 0 {
		return explicit
	}

	byID := make(map[string]*core.Game, len(games))
	for _, g := range games {
		if g != nil {
			byID[g.ID] = g
		}
	}

	history := make([]float64, len(explicit))
	totalWeight := 0.0
	for gameID, rating := range profile.PlayedGames {
		game, ok := byID[gameID]
		if !ok {
			continue
		}
		w := clamp01(rating / ratingScale)
		gv := e.EncodeGame(game)
		for i := range history {
			history[i] += w * gv[i]
		}
		totalWeight += w
	}
	if totalWeight > 0 {
		for i := range history {
			history[i] /= totalWeight
		}
	}

	blended := make([]float64, len(explicit))
	for i := range blended {
		blended[i] = 0.5*explicit[i] + 0.5*history[i]
	}
	return blended
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
