package core

import "github.com/ludokit/ludokit/pkg/utils"

// Item 是推荐链路中的统一承载结构：候选游戏、分数、标签。
// Labels 用于解释与策略驱动；Score 用于排序决策。
type Item struct {
	ID     string
	Score  float64
	Game   *Game
	Labels map[string]utils.Label
}

// NewItem 以一个目录游戏为候选创建 Item。
func NewItem(game *Game) *Item {
	it := &Item{
		Game:   game,
		Labels: make(map[string]utils.Label),
	}
	if game != nil {
		it.ID = game.ID
	}
	return it
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
