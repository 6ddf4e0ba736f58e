package core

import (
	"strings"
	"time"
)

// DefaultSmoothing 是偏好权重指数平滑的默认系数。
const DefaultSmoothing = 0.3

// neutralWeight 是未出现过的类别/标签的初始偏好。
const neutralWeight = 0.5

// UserProfile 是用户偏好画像的核心抽象。
//
// 一句话定义：用户画像 = 推荐 Pipeline 的"全局上下文 + 特征源 + 决策信号"
//
// 设计要点：
//  维度          作用
//  类别偏好      召回/排序核心（编码为特征向量的类别段）
//  标签偏好      同上（标签段）
//  游玩历史      history-blended 编码 + 已玩过滤
//  可更新        Online Learning（LearnFromGame）
//
// 不变量：所有偏好权重落在 [0,1]，写入时 clamp；
// 画像只通过 LearnFromGame 与显式 Set* 方法演进，不会被隐式删除。
type UserProfile struct {
	UserID   string
	Username string

	// GenrePreferences / TagPreferences 的 key 统一为小写，value 为权重 (0-1)。
	GenrePreferences map[string]float64
	TagPreferences   map[string]float64

	// PlayedGames 记录 gameID -> 用户评分 (0-10)，同一游戏重复评分覆盖。
	PlayedGames map[string]float64

	// Smoothing 是偏好更新的平滑系数，0 表示使用 DefaultSmoothing。
	Smoothing float64

	// UpdateTime 最后更新时间
	UpdateTime time.Time
}

// NewUserProfile 创建一个新的用户画像。
func NewUserProfile(userID, username string) *UserProfile {
	return &UserProfile{
		UserID:           userID,
		Username:         username,
		GenrePreferences: make(map[string]float64),
		TagPreferences:   make(map[string]float64),
		PlayedGames:      make(map[string]float64),
		UpdateTime:       time.Now(),
	}
}

// SetGenrePreference 设置类别偏好，权重 clamp 到 [0,1]。
func (p *UserProfile) SetGenrePreference(genre string, weight float64) {
	if p.GenrePreferences == nil {
		p.GenrePreferences = make(map[string]float64)
	}
	p.GenrePreferences[strings.ToLower(genre)] = clamp01(weight)
	p.UpdateTime = time.Now()
}

// SetTagPreference 设置标签偏好，权重 clamp 到 [0,1]。
func (p *UserProfile) SetTagPreference(tag string, weight float64) {
	if p.TagPreferences == nil {
		p.TagPreferences = make(map[string]float64)
	}
	p.TagPreferences[strings.ToLower(tag)] = clamp01(weight)
	p.UpdateTime = time.Now()
}

// AddPlayedGame 记录一次游玩评分，重复评分覆盖旧值。
func (p *UserProfile) AddPlayedGame(gameID string, rating float64) {
	if p.PlayedGames == nil {
		p.PlayedGames = make(map[string]float64)
	}
	p.PlayedGames[gameID] = rating
	p.UpdateTime = time.Now()
}

// HasPlayed 检查用户是否玩过某个游戏。
func (p *UserProfile) HasPlayed(gameID string) bool {
	if p.PlayedGames == nil {
		return false
	}
	_, ok := p.PlayedGames[gameID]
	return ok
}

// GenrePreference 获取类别偏好权重，未设置时返回中性值 0.5。
func (p *UserProfile) GenrePreference(genre string) float64 {
	if w, ok := p.GenrePreferences[strings.ToLower(genre)]; ok {
		return w
	}
	return neutralWeight
}

// TagPreference 获取标签偏好权重，未设置时返回中性值 0.5。
func (p *UserProfile) TagPreference(tag string) float64 {
	if w, ok := p.TagPreferences[strings.ToLower(tag)]; ok {
		return w
	}
	return neutralWeight
}

// LearnFromGame 根据一次评分反馈更新画像（Online Learning）。
//
// 行为：
//  1. 记录 (gameID -> rating)，重复评分覆盖（幂等）
//  2. 对游戏的每个类别/标签做指数平滑：new = old + α·(rating/10 − old)
//     old 未出现过时取 0.5
//
// 同步执行，无失败路径；这是偏好权重演进的唯一入口。
func (p *UserProfile) LearnFromGame(game *Game, rating float64) {
	if game == nil {
		return
	}
	p.AddPlayedGame(game.ID, rating)

	alpha := p.Smoothing
	if alpha <= 0 {
		alpha = DefaultSmoothing
	}
	target := clamp01(rating / 10.0)

	for _, genre := range game.Genres {
		g := strings.ToLower(genre)
		old := p.GenrePreference(g)
		p.SetGenrePreference(g, old+alpha*(target-old))
	}
	for _, tag := range game.Tags {
		t := strings.ToLower(tag)
		old := p.TagPreference(t)
		p.SetTagPreference(t, old+alpha*(target-old))
	}
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
