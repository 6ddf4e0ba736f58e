package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ludokit/ludokit/core"
)

// profileKeyPrefix 是画像在 KV 存储中的 key 前缀。
const profileKeyPrefix = "profile:"

// profileRecord 是画像的持久化形态（JSON）。
// 与 core.UserProfile 分离，避免领域类型被序列化细节绑架。
type profileRecord struct {
	UserID           string             `json:"user_id"`
	Username         string             `json:"username"`
	GenrePreferences map[string]float64 `json:"genre_preferences,omitempty"`
	TagPreferences   map[string]float64 `json:"tag_preferences,omitempty"`
	PlayedGames      map[string]float64 `json:"played_games,omitempty"`
	Smoothing        float64            `json:"smoothing,omitempty"`
	UpdateTime       time.Time          `json:"update_time"`
}

// ProfileStore 把任意 core.Store 后端适配为 core.UserProfileStore。
// 内存后端用于开发/测试，Redis 后端用于生产，画像层代码完全一致。
type ProfileStore struct {
	store core.Store
}

var _ core.UserProfileStore = (*ProfileStore)(nil)

// NewProfileStore 创建画像存储，store 不可为 nil。
func NewProfileStore(s core.Store) *ProfileStore {
	return &ProfileStore{store: s}
}

func (ps *ProfileStore) Name() string {
	return "profile." + ps.store.Name()
}

// GetProfile 读取画像；不存在时返回 profile 模块的 NOT_FOUND。
func (ps *ProfileStore) GetProfile(ctx context.Context, userID string) (*core.UserProfile, error) {
	raw, err := ps.store.Get(ctx, profileKeyPrefix+userID)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, core.ErrProfileNotFound
		}
		return nil, err
	}

	var rec profileRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, core.NewDomainError(core.ModuleProfile, core.ErrorCodeInternalError,
			fmt.Sprintf("profile: decode %q: %v", userID, err))
	}

	p := &core.UserProfile{
		UserID:           rec.UserID,
		Username:         rec.Username,
		GenrePreferences: rec.GenrePreferences,
		TagPreferences:   rec.TagPreferences,
		PlayedGames:      rec.PlayedGames,
		Smoothing:        rec.Smoothing,
		UpdateTime:       rec.UpdateTime,
	}
	if p.GenrePreferences == nil {
		p.GenrePreferences = make(map[string]float64)
	}
	if p.TagPreferences == nil {
		p.TagPreferences = make(map[string]float64)
	}
	if p.PlayedGames == nil {
		p.PlayedGames = make(map[string]float64)
	}
	return p, nil
}

// SaveProfile 覆盖写入画像。
func (ps *ProfileStore) SaveProfile(ctx context.Context, profile *core.UserProfile) error {
	if profile == nil || profile.UserID == "" {
		return core.NewDomainError(core.ModuleProfile, core.ErrorCodeInvalidInput,
			"profile: missing user id")
	}

	rec := profileRecord{
		UserID:           profile.UserID,
		Username:         profile.Username,
		GenrePreferences: profile.GenrePreferences,
		TagPreferences:   profile.TagPreferences,
		PlayedGames:      profile.PlayedGames,
		Smoothing:        profile.Smoothing,
		UpdateTime:       profile.UpdateTime,
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return core.NewDomainError(core.ModuleProfile, core.ErrorCodeInternalError,
			fmt.Sprintf("profile: encode %q: %v", profile.UserID, err))
	}
	return ps.store.Set(ctx, profileKeyPrefix+profile.UserID, raw)
}
