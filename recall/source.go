package recall

import (
	"context"

	"github.com/ludokit/ludokit/core"
)

// Source 表示一个可复用的候选源（目录全量/人气/存储侧召回/...）。
// 你可以把它理解为“生成候选集的策略单元”。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}
