package feast

import (
	"context"

	"github.com/ludokit/ludokit/core"
	"github.com/ludokit/ludokit/pkg/conv"
)

// PreferenceSource 从 Feast 在线特征拉取用户的类别/标签偏好，合成 core.UserProfile。
//
// 特征命名约定：<View>:<term>，例如 "user_genre_prefs:rpg"；
// 值为 [0,1] 的偏好权重。缺失或非数值的特征静默跳过（保持中性 0.5）。
//
// 典型场景：画像主存储为空时的冷启动，或离线算出的偏好批量回流。
type PreferenceSource struct {
	Client  Client
	Project string

	// EntityKey 是实体列名，默认 "user_id"
	EntityKey string

	// GenreView / TagView 是两类偏好的 feature view 名称
	GenreView string
	TagView   string

	// Genres / Tags 是要拉取的词表项（通常来自 feature.Vocabulary）
	Genres []string
	Tags   []string
}

// LoadProfile 拉取一个用户的偏好特征并合成画像。
// Feast 中完全没有该用户的特征时，返回的画像为全中性（不报错）。
func (s *PreferenceSource) LoadProfile(ctx context.Context, userID string) (*core.UserProfile, error) {
	entityKey := s.EntityKey
	if entityKey == "" {
		entityKey = "user_id"
	}

	features := make([]string, 0, len(s.Genres)+len(s.Tags))
	for _, g := range s.Genres {
		features = append(features, s.GenreView+":"+g)
	}
	for _, t := range s.Tags {
		features = append(features, s.TagView+":"+t)
	}

	profile := core.NewUserProfile(userID, userID)
	if len(features) == 0 {
		return profile, nil
	}

	resp, err := s.Client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   features,
		EntityRows: []map[string]interface{}{{entityKey: userID}},
		Project:    s.Project,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.FeatureVectors) == 0 {
		return profile, nil
	}

	values := resp.FeatureVectors[0].Values
	for _, g := range s.Genres {
		if w, ok := conv.ToFloat64(values[s.GenreView+":"+g]); ok {
			profile.SetGenrePreference(g, w)
		}
	}
	for _, t := range s.Tags {
		if w, ok := conv.ToFloat64(values[s.TagView+":"+t]); ok {
			profile.SetTagPreference(t, w)
		}
	}
	return profile, nil
}
