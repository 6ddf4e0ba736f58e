package core

import "strings"

// Game 是目录中的一个游戏条目：类别标签、数值属性、平台信息。
// 加载后视为不可变；管理侧的编辑由目录协作方负责，核心只读。
type Game struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Genres        []string `json:"genres"`
	Tags          []string `json:"tags"`
	Rating        float64  `json:"rating"` // 0-10
	ReleaseYear   int      `json:"release_year"`
	Platform      string   `json:"platform"`
	PlaytimeHours float64  `json:"playtime_hours"`
	Price         float64  `json:"price"`
	Multiplayer   bool     `json:"multiplayer"`
	Difficulty    string   `json:"difficulty"` // easy / medium / hard / very_hard，可为空
}

// HasGenre 检查游戏是否包含某个类别（大小写不敏感）。
func (g *Game) HasGenre(genre string) bool {
	return containsFold(g.Genres, genre)
}

// HasTag 检查游戏是否包含某个标签（大小写不敏感）。
func (g *Game) HasTag(tag string) bool {
	return containsFold(g.Tags, tag)
}

func containsFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

// ScoredGame 是排序结果的最小承载结构：游戏 + 相似度分数。
type ScoredGame struct {
	Game  *Game
	Score float64
}
