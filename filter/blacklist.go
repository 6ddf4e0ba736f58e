package filter

import (
	"context"

	"github.com/ludokit/ludokit/core"
)

// BlacklistFilter 是黑名单过滤器，过滤掉名单中的游戏。
// FindSimilar 用它排除查询游戏自身；业务侧也可用它做下架/屏蔽。
type BlacklistFilter struct {
	// GameIDs 是内存中的黑名单游戏 ID 列表
	GameIDs []string
}

var _ Filter = (*BlacklistFilter)(nil)

func (f *BlacklistFilter) Name() string {
	return "filter.blacklist"
}

func (f *BlacklistFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	for _, id := range f.GameIDs {
		if item.ID == id {
			return true, nil
		}
	}
	return false, nil
}
