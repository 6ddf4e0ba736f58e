package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/ludokit/ludokit/core"
)

// catalogHashKey 是目录在 KV 存储中的 Hash key（field = gameID, value = JSON）。
const catalogHashKey = "catalog:games"

// StoreCatalog 是存储后端实现的游戏目录（Redis/内存均可）。
// 整个目录放在一个 Hash 里，一次 HGetAll 取回全量；
// ListAllGames 按 ID 升序返回，保证不同副本看到一致的目录顺序。
type StoreCatalog struct {
	store core.KeyValueStore
}

var _ core.Catalog = (*StoreCatalog)(nil)

// NewStoreCatalog 创建存储目录，store 不可为 nil。
func NewStoreCatalog(s core.KeyValueStore) *StoreCatalog {
	return &StoreCatalog{store: s}
}

func (c *StoreCatalog) Name() string {
	return "catalog." + c.store.Name()
}

func (c *StoreCatalog) ListAllGames(ctx context.Context) ([]*core.Game, error) {
	raw, err := c.store.HGetAll(ctx, catalogHashKey)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	games := make([]*core.Game, 0, len(ids))
	for _, id := range ids {
		var g core.Game
		if err := json.Unmarshal(raw[id], &g); err != nil {
			return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInternalError,
				fmt.Sprintf("catalog: decode game %q: %v", id, err))
		}
		games = append(games, &g)
	}
	return games, nil
}

func (c *StoreCatalog) GetGame(ctx context.Context, id string) (*core.Game, error) {
	raw, err := c.store.HGet(ctx, catalogHashKey, id)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, core.ErrGameNotFound
		}
		return nil, err
	}

	var g core.Game
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInternalError,
			fmt.Sprintf("catalog: decode game %q: %v", id, err))
	}
	return &g, nil
}

// SaveGame 写入或覆盖一个游戏（种子数据/管理侧使用）。
func (c *StoreCatalog) SaveGame(ctx context.Context, g *core.Game) error {
	if g == nil || g.ID == "" {
		return core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput,
			"catalog: missing game id")
	}
	raw, err := json.Marshal(g)
	if err != nil {
		return core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInternalError,
			fmt.Sprintf("catalog: encode game %q: %v", g.ID, err))
	}
	return c.store.HSet(ctx, catalogHashKey, g.ID, raw)
}

// Seed 批量写入游戏（演示/测试用）。
func (c *StoreCatalog) Seed(ctx context.Context, games []*core.Game) error {
	for _, g := range games {
		if g == nil {
			continue
		}
		if err := c.SaveGame(ctx, g); err != nil {
			return err
		}
	}
	return nil
}
