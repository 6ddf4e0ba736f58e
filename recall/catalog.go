package recall

import (
	"context"

	"github.com/ludokit/ludokit/core"
	"github.com/ludokit/ludokit/pipeline"
	"github.com/ludokit/ludokit/pkg/utils"
)

// CatalogSource 以目录快照全量作为候选集。
//
// 目录规模在千级以内时，全量候选 + 嵌入排序是最简单可靠的召回方式；
// 更大规模时可在它前面加 ANN/倒排等真正的召回层。
type CatalogSource struct {
	// Games 是目录快照（构建后只读），候选顺序与快照一致。
	Games []*core.Game
}

var _ Source = (*CatalogSource)(nil)
var _ pipeline.Node = (*CatalogSource)(nil)

func (s *CatalogSource) Name() string        { return "recall.catalog" }
func (s *CatalogSource) Kind() pipeline.Kind { return pipeline.KindRecall }

// Recall 把目录中每个游戏包装为候选 Item。
func (s *CatalogSource) Recall(_ context.Context, _ *core.RecommendContext) ([]*core.Item, error) {
	items := make([]*core.Item, 0, len(s.Games))
	for _, g := range s.Games {
		if g == nil {
			continue
		}
		it := core.NewItem(g)
		it.PutLabel("recall_source", utils.Label{Value: s.Name(), Source: "recall"})
		items = append(items, it)
	}
	return items, nil
}

// Process 使 CatalogSource 可以直接作为 Pipeline 的首个 Node。
// 上游传入的 items 会被忽略（召回阶段从零生成候选）。
func (s *CatalogSource) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return s.Recall(ctx, rctx)
}
