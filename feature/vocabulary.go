// Package feature 负责把游戏/用户画像编码为定长特征向量。
//
// 特征布局（固定顺序）：
//
//	[类别 one-hot | 标签 one-hot | 难度 one-hot | 平台 one-hot | 5 个数值特征]
//
// 词表（Vocabulary）决定 one-hot 段的维度与槽位；同一份词表下，
// 游戏向量与用户向量天然对齐，可直接送入同一个投影塔。
package feature

import (
	"sort"
	"strings"

	"github.com/ludokit/ludokit/core"
)

// NumericFeatureCount 是数值特征段的宽度：
// rating, release_year, playtime, price, multiplayer。
const NumericFeatureCount = 5

// Vocabulary 是从目录全量构建的特征词表。
// 四个维度各自排序去重（小写），保证同一目录两次构建得到逐位相同的词表。
type Vocabulary struct {
	Genres       []string
	Tags         []string
	Difficulties []string
	Platforms    []string

	genreIndex      map[string]int
	tagIndex        map[string]int
	difficultyIndex map[string]int
	platformIndex   map[string]int
}

// BuildVocabulary 扫描目录构建词表。
// 空目录是合法输入：词表为空，特征维度退化为 NumericFeatureCount。
func BuildVocabulary(games []*core.Game) *Vocabulary {
	genres := make(map[string]struct{})
	tags := make(map[string]struct{})
	difficulties := make(map[string]struct{})
	platforms := make(map[string]struct{})

	for _, g := range games {
		if g == nil {
			continue
		}
		for _, genre := range g.Genres {
			if genre = normalizeTerm(genre); genre != "" {
				genres[genre] = struct{}{}
			}
		}
		for _, tag := range g.Tags {
			if tag = normalizeTerm(tag); tag != "" {
				tags[tag] = struct{}{}
			}
		}
		if d := normalizeTerm(g.Difficulty); d != "" {
			difficulties[d] = struct{}{}
		}
		if p := normalizeTerm(g.Platform); p != "" {
			platforms[p] = struct{}{}
		}
	}

	v := &Vocabulary{
		Genres:       sortedKeys(genres),
		Tags:         sortedKeys(tags),
		Difficulties: sortedKeys(difficulties),
		Platforms:    sortedKeys(platforms),
	}
	v.genreIndex = indexOf(v.Genres)
	v.tagIndex = indexOf(v.Tags)
	v.difficultyIndex = indexOf(v.Difficulties)
	v.platformIndex = indexOf(v.Platforms)
	return v
}

// FeatureSize 返回该词表下的特征向量总维度。
func (v *Vocabulary) FeatureSize() int {
	return len(v.Genres) + len(v.Tags) + len(v.Difficulties) + len(v.Platforms) + NumericFeatureCount
}

// GenreSlot 返回类别在向量中的槽位（词表内偏移），不在词表时返回 -1。
func (v *Vocabulary) GenreSlot(genre string) int {
	if i, ok := v.genreIndex[normalizeTerm(genre)]; ok {
		return i
	}
	return -1
}

// TagSlot 返回标签槽位，不在词表时返回 -1。
func (v *Vocabulary) TagSlot(tag string) int {
	if i, ok := v.tagIndex[normalizeTerm(tag)]; ok {
		return i
	}
	return -1
}

// DifficultySlot 返回难度槽位，不在词表时返回 -1。
func (v *Vocabulary) DifficultySlot(difficulty string) int {
	if i, ok := v.difficultyIndex[normalizeTerm(difficulty)]; ok {
		return i
	}
	return -1
}

// PlatformSlot 返回平台槽位，不在词表时返回 -1。
func (v *Vocabulary) PlatformSlot(platform string) int {
	if i, ok := v.platformIndex[normalizeTerm(platform)]; ok {
		return i
	}
	return -1
}

func normalizeTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func indexOf(terms []string) map[string]int {
	idx := make(map[string]int, len(terms))
	for i, t := range terms {
		idx[t] = i
	}
	return idx
}
