// Package keywords 把自由文本（"想玩点轻松的农场游戏"）映射为规范化的类别/标签集合，
// 再合成偏好权重喂给推荐引擎。它是排序核心之外的纯函数边界：
// NLP 质量的好坏不影响核心的可测性。
package keywords

import (
	"sort"
	"strings"

	"github.com/ludokit/ludokit/core"
)

// genreSynonyms 把口语化描述映射到规范类别。
var genreSynonyms = map[string][]string{
	"rpg":        {"rpg", "role-playing", "role playing", "leveling"},
	"action":     {"action", "combat", "fighting", "fast-paced", "fast paced"},
	"horror":     {"horror", "scary", "creepy", "terrifying", "spooky"},
	"strategy":   {"strategy", "tactics", "tactical", "planning", "4x"},
	"casual":     {"casual", "relaxing", "chill", "cozy", "peaceful"},
	"shooter":    {"shooter", "fps", "shooting", "gun", "military"},
	"puzzle":     {"puzzle", "brain", "thinking", "logic"},
	"simulation": {"simulation", "sim", "management", "building"},
	"adventure":  {"adventure", "exploration", "explore", "journey"},
	"fantasy":    {"fantasy", "magic", "dragon", "medieval", "wizard"},
}

// tagSynonyms 把口语化描述映射到规范标签。
var tagSynonyms = map[string][]string{
	"story-rich":  {"story", "narrative", "plot", "story-rich"},
	"open-world":  {"open-world", "open world", "sandbox", "free roam"},
	"multiplayer": {"multiplayer", "online", "friends", "coop", "co-op"},
	"competitive": {"competitive", "pvp", "esports", "ranked"},
	"relaxing":    {"relaxing", "peaceful", "calm", "chill", "cozy"},
	"challenging": {"challenging", "difficult", "hard", "hardcore"},
	"crafting":    {"crafting", "craft", "building", "create"},
	"survival":    {"survival", "survive", "resource"},
	"space":       {"space", "sci-fi", "scifi", "alien", "galaxy"},
	"atmospheric": {"atmospheric", "immersive", "mood", "ambient"},
}

// Extraction 是一次关键词抽取的结果。
type Extraction struct {
	Genres []string
	Tags   []string
}

// Extract 从自由文本中抽取规范化的类别与标签（大小写不敏感，子串匹配）。
// 结果顺序与各自词表的遍历无关：按字典序稳定输出。
func Extract(input string) Extraction {
	text := strings.ToLower(input)

	var ex Extraction
	ex.Genres = matchTerms(text, genreSynonyms)
	ex.Tags = matchTerms(text, tagSynonyms)
	return ex
}

// SyntheticProfile 把抽取结果合成为临时画像：命中的类别/标签权重 0.9。
// 该画像不入库，只用于一次 RecommendForProfile 调用。
func SyntheticProfile(userID string, ex Extraction) *core.UserProfile {
	p := core.NewUserProfile(userID, userID)
	for _, g := range ex.Genres {
		p.SetGenrePreference(g, 0.9)
	}
	for _, t := range ex.Tags {
		p.SetTagPreference(t, 0.9)
	}
	return p
}

// ProfileFromText 是 Extract + SyntheticProfile 的组合入口。
func ProfileFromText(userID, input string) *core.UserProfile {
	return SyntheticProfile(userID, Extract(input))
}

func matchTerms(text string, synonyms map[string][]string) []string {
	var out []string
	for term, words := range synonyms {
		for _, w := range words {
			if strings.Contains(text, w) {
				out = append(out, term)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}
