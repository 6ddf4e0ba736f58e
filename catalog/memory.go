// Package catalog 提供 core.Catalog 的具体实现：内存目录与存储目录。
package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/ludokit/ludokit/core"
)

// MemoryCatalog 是内存实现的游戏目录，加载后只读。
// ListAllGames 返回的顺序稳定（按加入顺序），排序的稳定并列依赖这一点。
type MemoryCatalog struct {
	mu    sync.RWMutex
	games []*core.Game
	index map[string]*core.Game
}

var _ core.Catalog = (*MemoryCatalog)(nil)

// NewMemoryCatalog 以一组游戏创建目录，nil 条目与重复 ID（后者覆盖前者）被规整。
func NewMemoryCatalog(games []*core.Game) *MemoryCatalog {
	c := &MemoryCatalog{
		index: make(map[string]*core.Game, len(games)),
	}
	for _, g := range games {
		if g == nil || g.ID == "" {
			continue
		}
		if _, exists := c.index[g.ID]; !exists {
			c.games = append(c.games, g)
		} else {
			for i, old := range c.games {
				if old.ID == g.ID {
					c.games[i] = g
					break
				}
			}
		}
		c.index[g.ID] = g
	}
	return c
}

func (c *MemoryCatalog) Name() string { return "catalog.memory" }

// ListAllGames 返回目录快照（副本 slice，元素共享）。
func (c *MemoryCatalog) ListAllGames(_ context.Context) ([]*core.Game, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*core.Game, len(c.games))
	copy(out, c.games)
	return out, nil
}

// GetGame 按 ID 查找游戏，不存在时返回 catalog 模块的 NOT_FOUND。
func (c *MemoryCatalog) GetGame(_ context.Context, id string) (*core.Game, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	g, ok := c.index[id]
	if !ok {
		return nil, core.ErrGameNotFound
	}
	return g, nil
}

// AddGame 追加或覆盖一个游戏（测试/种子数据用）。
func (c *MemoryCatalog) AddGame(g *core.Game) {
	if g == nil || g.ID == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.index[g.ID]; exists {
		for i, old := range c.games {
			if old.ID == g.ID {
				c.games[i] = g
				break
			}
		}
	} else {
		c.games = append(c.games, g)
	}
	c.index[g.ID] = g
}

// SortedIDs 返回目录内全部游戏 ID（升序），调试/校验用。
func (c *MemoryCatalog) SortedIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.games))
	for _, g := range c.games {
		ids = append(ids, g.ID)
	}
	sort.Strings(ids)
	return ids
}
