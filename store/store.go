// Package store 提供 core.Store / core.KeyValueStore 的具体实现，
// 以及构建在其上的画像持久化层。
package store

import "github.com/ludokit/ludokit/core"

// 错误别名，方便包内使用
var (
	ErrNotFound     = core.ErrStoreNotFound
	ErrNotSupported = core.ErrStoreNotSupported
)
