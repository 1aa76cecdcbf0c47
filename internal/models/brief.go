package models

// GameBrief holds the user's game-design preferences as captured by the form.
// Nothing here is required: every field has a default and empty selections are
// legal. The credential is deliberately not part of the brief.
type GameBrief struct {
	BackgroundVibe    string   `json:"background_vibe" form:"background_vibe"`
	GameType          string   `json:"game_type" form:"game_type"`
	TargetAudience    string   `json:"target_audience" form:"target_audience"`
	Perspective       string   `json:"perspective" form:"perspective"`
	MultiplayerMode   string   `json:"multiplayer_mode" form:"multiplayer_mode"`
	Goal              string   `json:"goal" form:"goal"`
	ArtStyle          string   `json:"art_style" form:"art_style"`
	Platforms         []string `json:"platforms" form:"platforms"`
	DevelopmentMonths int      `json:"development_months" form:"development_months"`
	BudgetUSD         int64    `json:"budget_usd" form:"budget_usd"`
	CoreMechanics     []string `json:"core_mechanics" form:"core_mechanics"`
	Mood              []string `json:"mood" form:"mood"`
	Inspiration       string   `json:"inspiration" form:"inspiration"`
	UniqueFeatures    string   `json:"unique_features" form:"unique_features"`
	DetailLevel       string   `json:"detail_level" form:"detail_level"`
}

// Development time slider bounds (months)
const (
	MinDevelopmentMonths     = 1
	MaxDevelopmentMonths     = 36
	DefaultDevelopmentMonths = 12
	DefaultBudgetUSD         = 10000
	BudgetStepUSD            = 5000
)

// Option catalogs, in the order they are offered to the user
var (
	GameTypes = []string{
		"RPG", "Action", "Adventure", "Puzzle", "Strategy", "Simulation", "Platform", "Horror",
	}
	TargetAudiences = []string{
		"Kids (7-12)", "Teens (13-17)", "Young Adults (18-25)", "Adults (26+)", "All Ages",
	}
	Perspectives = []string{
		"First Person", "Third Person", "Top Down", "Side View", "Isometric",
	}
	MultiplayerModes = []string{
		"Single Player Only", "Local Co-op", "Online Multiplayer", "Both Local and Online",
	}
	ArtStyles = []string{
		"Realistic", "Cartoon", "Pixel Art", "Stylized", "Low Poly", "Anime", "Hand-drawn",
	}
	Platforms = []string{
		"PC", "Mobile", "PlayStation", "Xbox", "Nintendo Switch", "Web Browser",
	}
	CoreMechanics = []string{
		"Combat", "Exploration", "Puzzle Solving", "Resource Management",
		"Base Building", "Stealth", "Racing", "Crafting",
	}
	Moods = []string{
		"Epic", "Mysterious", "Peaceful", "Tense", "Humorous", "Dark", "Whimsical", "Scary",
	}
	DetailLevels = []string{"Low", "Medium", "High"}
)

// DefaultBrief returns the brief a fresh session starts with
func DefaultBrief() GameBrief {
	return GameBrief{
		BackgroundVibe:    "Epic fantasy with dragons",
		GameType:          GameTypes[0],
		TargetAudience:    TargetAudiences[0],
		Perspective:       Perspectives[0],
		MultiplayerMode:   MultiplayerModes[0],
		Goal:              "Save the kingdom from eternal winter",
		ArtStyle:          ArtStyles[0],
		Platforms:         []string{},
		DevelopmentMonths: DefaultDevelopmentMonths,
		BudgetUSD:         DefaultBudgetUSD,
		CoreMechanics:     []string{},
		Mood:              []string{},
		DetailLevel:       DetailLevels[0],
	}
}

// Normalize clamps the numeric fields into the ranges the form widgets allow
// and replaces nil selections with empty ones. It never rejects a brief.
func (b *GameBrief) Normalize() {
	for _, selected := range []*[]string{&b.Platforms, &b.CoreMechanics, &b.Mood} {
		if *selected == nil {
			*selected = []string{}
		}
	}

	switch {
	case b.DevelopmentMonths < MinDevelopmentMonths:
		b.DevelopmentMonths = MinDevelopmentMonths
	case b.DevelopmentMonths > MaxDevelopmentMonths:
		b.DevelopmentMonths = MaxDevelopmentMonths
	}
	if b.BudgetUSD < 0 {
		b.BudgetUSD = 0
	}
}

// Has reports whether a multi-select value is present in selected
func Has(selected []string, value string) bool {
	for _, s := range selected {
		if s == value {
			return true
		}
	}
	return false
}
