package core

import "context"

// Catalog 是游戏目录的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（catalog）实现
//   - 核心只读：目录的写入/管理完全在外部，推荐引擎从不回写
//   - ListAllGames 的返回顺序必须稳定：相同目录两次遍历顺序一致，
//     词表构建与排序 tie-break 都依赖这一顺序
//
// 实现：
//   - catalog.MemoryCatalog 实现此接口（内存目录，测试/演示）
//   - catalog.StoreCatalog 实现此接口（基于 core.KeyValueStore，可对接 Redis）
type Catalog interface {
	// Name 返回目录后端名称（用于日志/监控）
	Name() string

	// ListAllGames 返回目录中的全部游戏（顺序稳定）
	ListAllGames(ctx context.Context) ([]*Game, error)

	// GetGame 按 ID 查找游戏，不存在时返回 NOT_FOUND 的 DomainError
	GetGame(ctx context.Context, id string) (*Game, error)
}

// ErrGameNotFound 表示目录中不存在该游戏。
var ErrGameNotFound = NewDomainError(ModuleCatalog, ErrorCodeNotFound, "catalog: game not found")
