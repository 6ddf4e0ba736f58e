package core

import "context"

// UserProfileStore 是用户画像存储的领域接口。
//
// 核心只要求按 ID 取到一个内存实例；持久性由实现方保证（内存实现
// 用于测试/原型，Redis 实现用于生产）。
type UserProfileStore interface {
	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// GetProfile 按用户 ID 加载画像，不存在时返回 NOT_FOUND 的 DomainError
	GetProfile(ctx context.Context, userID string) (*UserProfile, error)

	// SaveProfile 保存（覆盖）画像
	SaveProfile(ctx context.Context, profile *UserProfile) error
}

// ErrProfileNotFound 表示该用户尚无画像。
var ErrProfileNotFound = NewDomainError(ModuleProfile, ErrorCodeNotFound, "profile: user profile not found")
