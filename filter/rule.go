package filter

import (
	"context"

	"github.com/ludokit/ludokit/core"
	"github.com/ludokit/ludokit/pkg/dsl"
)

// RuleFilter 是规则过滤器，使用 CEL 表达式决定候选去留。
//
// Expr 描述“保留条件”：表达式为 true 的候选保留，false 的被过滤。
// 例如 Expr = `game.price < 30.0` 表示只推荐 30 以下的游戏。
type RuleFilter struct {
	Expr string
}

var _ Filter = (*RuleFilter)(nil)

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.Expr == "" {
		return false, nil
	}
	keep, err := dsl.NewEval(item, rctx).Evaluate(f.Expr)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
