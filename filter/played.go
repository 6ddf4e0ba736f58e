package filter

import (
	"context"

	"github.com/ludokit/ludokit/core"
)

// PlayedFilter 过滤掉用户已经玩过（评过分）的游戏。
// 推荐结果只包含未玩过的游戏；无用户画像时不过滤。
type PlayedFilter struct{}

var _ Filter = (*PlayedFilter)(nil)

func (f *PlayedFilter) Name() string {
	return "filter.played"
}

func (f *PlayedFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if rctx == nil || rctx.User == nil {
		return false, nil
	}
	return rctx.User.HasPlayed(item.ID), nil
}
