// Package rank 实现嵌入相似度排序：查询向量 × 候选嵌入 → 点积打分。
package rank

import (
	"context"
	"fmt"
	"sort"

	"github.com/ludokit/ludokit/core"
	"github.com/ludokit/ludokit/model"
	"github.com/ludokit/ludokit/pipeline"
	"github.com/ludokit/ludokit/pkg/utils"
)

// EmbeddingIndex 按游戏 ID 提供预计算嵌入。
// 实现方保证返回的向量在读取期间不被修改（快照语义）。
type EmbeddingIndex interface {
	Embedding(gameID string) ([]float64, bool)
}

// SimilarityNode 是嵌入相似度排序 Node。
//
// 对每个候选取预计算嵌入，与查询向量做点积作为 Score，降序稳定排序；
// 两侧均为单位向量，点积即余弦相似度，分数落在 [-1,1]。
// 缺失嵌入的候选直接丢弃（目录快照与嵌入快照不一致的瞬时窗口）。
type SimilarityNode struct {
	// Index 提供候选侧嵌入
	Index EmbeddingIndex

	// Query 是查询侧（用户或游戏）的单位嵌入
	Query []float64
}

var _ pipeline.Node = (*SimilarityNode)(nil)

func (n *SimilarityNode) Name() string        { return "rank.similarity" }
func (n *SimilarityNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *SimilarityNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Index == nil || len(n.Query) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		emb, ok := n.Index.Embedding(it.ID)
		if !ok {
			continue
		}
		it.Score = model.Dot(n.Query, emb)
		it.PutLabel("rank_type", utils.Label{Value: "embedding_similarity", Source: "rank"})
		it.PutLabel("rank_score", utils.Label{Value: fmt.Sprintf("%.4f", it.Score), Source: "rank"})
		out = append(out, it)
	}

	// 稳定排序：分数相同的候选保持目录顺序
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out, nil
}
