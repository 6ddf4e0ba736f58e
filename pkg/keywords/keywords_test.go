package keywords

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantGenres []string
		wantTags   []string
	}{
		{
			name:       "rpg with story",
			input:      "I want a role-playing game with a great story",
			wantGenres: []string{"rpg"},
			wantTags:   []string{"story-rich"},
		},
		{
			name:       "relaxing farm",
			input:      "something cozy and relaxing, maybe building a farm",
			wantGenres: []string{"casual", "simulation"},
			wantTags:   []string{"crafting", "relaxing"},
		},
		{
			name:       "competitive shooter",
			input:      "competitive FPS with ranked PvP",
			wantGenres: []string{"shooter"},
			wantTags:   []string{"competitive"},
		},
		{
			name:       "space exploration",
			input:      "explore the galaxy in a sci-fi world",
			wantGenres: []string{"adventure"},
			wantTags:   []string{"space"},
		},
		{
			name:       "no match",
			input:      "zzz qqq",
			wantGenres: nil,
			wantTags:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := Extract(tt.input)
			if !reflect.DeepEqual(ex.Genres, tt.wantGenres) {
				t.Errorf("Genres = %v, want %v", ex.Genres, tt.wantGenres)
			}
			if !reflect.DeepEqual(ex.Tags, tt.wantTags) {
				t.Errorf("Tags = %v, want %v", ex.Tags, tt.wantTags)
			}
		})
	}
}

func TestExtractCaseInsensitive(t *testing.T) {
	ex := Extract("SCARY Horror Game")
	if !reflect.DeepEqual(ex.Genres, []string{"horror"}) {
		t.Errorf("Genres = %v, want [horror]", ex.Genres)
	}
}

func TestProfileFromText(t *testing.T) {
	p := ProfileFromText("u1", "fantasy rpg with dragons and magic")

	if p.UserID != "u1" {
		t.Errorf("UserID = %q", p.UserID)
	}
	if p.GenrePreference("rpg") != 0.9 {
		t.Errorf("rpg = %v, want 0.9", p.GenrePreference("rpg"))
	}
	if p.GenrePreference("fantasy") != 0.9 {
		t.Errorf("fantasy = %v, want 0.9", p.GenrePreference("fantasy"))
	}
	// 未命中的类别保持中性
	if p.GenrePreference("shooter") != 0.5 {
		t.Errorf("shooter = %v, want 0.5", p.GenrePreference("shooter"))
	}
	if len(p.PlayedGames) != 0 {
		t.Error("synthetic profile must not carry play history")
	}
}
