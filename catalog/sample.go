package catalog

import "github.com/ludokit/ludokit/core"

// NewSampleCatalog 返回内置的演示目录（15 款游戏，覆盖主要类别/平台/难度）。
// examples 与测试共用这份数据。
func NewSampleCatalog() *MemoryCatalog {
	return NewMemoryCatalog(SampleGames())
}

// SampleGames 返回内置演示游戏列表。
func SampleGames() []*core.Game {
	return []*core.Game{
		{
			ID: "g001", Title: "Stellar Odyssey",
			Genres: []string{"Action", "Adventure", "Sci-Fi"},
			Tags:   []string{"open-world", "space", "exploration", "combat", "story-rich"},
			Rating: 9.2, ReleaseYear: 2024, Platform: "PC",
			PlaytimeHours: 60, Price: 59.99, Multiplayer: false, Difficulty: "medium",
		},
		{
			ID: "g002", Title: "Dragon's Legacy",
			Genres: []string{"RPG", "Fantasy", "Action"},
			Tags:   []string{"dragons", "magic", "open-world", "character-customization", "quests"},
			Rating: 8.8, ReleaseYear: 2023, Platform: "PC",
			PlaytimeHours: 100, Price: 49.99, Multiplayer: false, Difficulty: "hard",
		},
		{
			ID: "g003", Title: "Neon Streets",
			Genres: []string{"Action", "Cyberpunk", "Shooter"},
			Tags:   []string{"cyberpunk", "fps", "story-rich", "atmospheric", "noir"},
			Rating: 8.5, ReleaseYear: 2024, Platform: "PC",
			PlaytimeHours: 35, Price: 59.99, Multiplayer: true, Difficulty: "medium",
		},
		{
			ID: "g004", Title: "Kingdoms Reborn",
			Genres: []string{"RPG", "Strategy", "Fantasy"},
			Tags:   []string{"turn-based", "tactics", "story-rich", "choices-matter", "medieval"},
			Rating: 9.0, ReleaseYear: 2023, Platform: "PC",
			PlaytimeHours: 80, Price: 44.99, Multiplayer: false, Difficulty: "hard",
		},
		{
			ID: "g005", Title: "Pixel Heroes",
			Genres: []string{"RPG", "Indie", "Retro"},
			Tags:   []string{"pixel-art", "roguelike", "dungeon-crawler", "procedural", "challenging"},
			Rating: 8.2, ReleaseYear: 2022, Platform: "PC",
			PlaytimeHours: 40, Price: 19.99, Multiplayer: false, Difficulty: "very_hard",
		},
		{
			ID: "g006", Title: "Tales of Avalon",
			Genres: []string{"RPG", "JRPG", "Fantasy"},
			Tags:   []string{"anime", "turn-based", "story-rich", "party-based", "emotional"},
			Rating: 8.9, ReleaseYear: 2024, Platform: "Console",
			PlaytimeHours: 70, Price: 59.99, Multiplayer: false, Difficulty: "medium",
		},
		{
			ID: "g007", Title: "Empire Builder",
			Genres: []string{"Strategy", "Simulation", "Historical"},
			Tags:   []string{"city-builder", "management", "economy", "sandbox", "historical"},
			Rating: 8.7, ReleaseYear: 2023, Platform: "PC",
			PlaytimeHours: 200, Price: 39.99, Multiplayer: true, Difficulty: "medium",
		},
		{
			ID: "g008", Title: "Galactic Command",
			Genres: []string{"Strategy", "Sci-Fi", "4X"},
			Tags:   []string{"space", "grand-strategy", "exploration", "diplomacy", "warfare"},
			Rating: 8.4, ReleaseYear: 2022, Platform: "PC",
			PlaytimeHours: 150, Price: 49.99, Multiplayer: true, Difficulty: "hard",
		},
		{
			ID: "g009", Title: "Whispers in the Dark",
			Genres: []string{"Horror", "Adventure", "Psychological"},
			Tags:   []string{"scary", "atmospheric", "puzzle", "story-rich", "psychological"},
			Rating: 8.6, ReleaseYear: 2024, Platform: "PC",
			PlaytimeHours: 15, Price: 29.99, Multiplayer: false, Difficulty: "medium",
		},
		{
			ID: "g010", Title: "Cozy Farm",
			Genres: []string{"Simulation", "Casual", "Farming"},
			Tags:   []string{"farming", "relaxing", "life-sim", "crafting", "wholesome"},
			Rating: 9.1, ReleaseYear: 2024, Platform: "PC",
			PlaytimeHours: 100, Price: 24.99, Multiplayer: true, Difficulty: "easy",
		},
		{
			ID: "g011", Title: "Mind Bender",
			Genres: []string{"Puzzle", "Indie", "Casual"},
			Tags:   []string{"puzzle", "relaxing", "brain-teaser", "minimalist", "atmospheric"},
			Rating: 8.0, ReleaseYear: 2024, Platform: "Mobile",
			PlaytimeHours: 20, Price: 4.99, Multiplayer: false, Difficulty: "medium",
		},
		{
			ID: "g012", Title: "Warzone Elite",
			Genres: []string{"Shooter", "Action", "Multiplayer"},
			Tags:   []string{"fps", "military", "pvp", "tactical", "competitive"},
			Rating: 7.9, ReleaseYear: 2024, Platform: "PC",
			PlaytimeHours: 200, Price: 0.00, Multiplayer: true, Difficulty: "hard",
		},
		{
			ID: "g013", Title: "Alien Hunters",
			Genres: []string{"Shooter", "Co-op", "Sci-Fi"},
			Tags:   []string{"co-op", "aliens", "survival", "fps", "team-based"},
			Rating: 8.4, ReleaseYear: 2023, Platform: "PC",
			PlaytimeHours: 45, Price: 39.99, Multiplayer: true, Difficulty: "medium",
		},
		{
			ID: "g014", Title: "Craft World",
			Genres: []string{"Sandbox", "Survival", "Multiplayer"},
			Tags:   []string{"crafting", "building", "sandbox", "exploration", "creative"},
			Rating: 9.3, ReleaseYear: 2020, Platform: "PC",
			PlaytimeHours: 500, Price: 29.99, Multiplayer: true, Difficulty: "easy",
		},
		{
			ID: "g015", Title: "Champion Fighters X",
			Genres: []string{"Fighting", "Arcade", "Competitive"},
			Tags:   []string{"fighting", "combo", "esports", "competitive", "2d"},
			Rating: 8.7, ReleaseYear: 2024, Platform: "Console",
			PlaytimeHours: 100, Price: 59.99, Multiplayer: true, Difficulty: "very_hard",
		},
	}
}
