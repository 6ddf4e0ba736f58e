// Package ludokit 是一个游戏推荐引擎工具包（Ludo Kit）。
//
// 设计要点：
// - Embedding-first: 游戏与用户共享同一个投影塔，映射到同一嵌入空间，按相似度召回排序
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → Rank → ReRank）
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测 / 策略驱动
package ludokit

import "github.com/ludokit/ludokit/pipeline"

// 轻量 facade：便于用户直接 import "ludokit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
