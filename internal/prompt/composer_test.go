package prompt

import (
	"strings"
	"testing"

	"github.com/Conceptual-Machines/game-design-team/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeEndToEndBrief(t *testing.T) {
	brief := models.DefaultBrief()
	brief.GameType = "RPG"
	brief.Platforms = []string{"PC", "Mobile"}
	brief.DevelopmentMonths = 12
	brief.BudgetUSD = 10000

	task := Compose(brief)

	assert.Contains(t, task, "Game Type: RPG")
	assert.Contains(t, task, "Target Platforms: PC, Mobile")
	assert.Contains(t, task, "Development Time: 12 months")
	assert.Contains(t, task, "Budget: $10,000")
}

func TestComposeEmptySelections(t *testing.T) {
	brief := models.GameBrief{}

	var task string
	require.NotPanics(t, func() { task = Compose(brief) })

	assert.Contains(t, task, "- Target Platforms: \n")
	assert.Contains(t, task, "- Core Mechanics: \n")
	assert.Contains(t, task, "- Mood/Atmosphere: \n")
	assert.Contains(t, task, "- Budget: $0\n")
}

func TestComposeIsDeterministic(t *testing.T) {
	brief := models.DefaultBrief()
	brief.CoreMechanics = []string{"Combat", "Crafting"}
	brief.Mood = []string{"Dark", "Epic"}
	brief.Inspiration = "Skyrim, Zelda"

	first := Compose(brief)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Compose(brief))
	}
}

func TestComposeLineLayout(t *testing.T) {
	task := Compose(models.DefaultBrief())
	lines := strings.Split(task, "\n")

	require.Len(t, lines, 18)
	assert.Equal(t, "Create a game concept with the following details:", lines[0])

	labels := []string{
		"Background Vibe", "Game Type", "Game Goal", "Target Audience", "Player Perspective",
		"Multiplayer Support", "Art Style", "Target Platforms", "Development Time", "Budget",
		"Core Mechanics", "Mood/Atmosphere", "Inspiration", "Unique Features", "Detail Level",
	}
	for i, label := range labels {
		assert.True(t, strings.HasPrefix(lines[i+1], "- "+label+": "), "line %d: %q", i+1, lines[i+1])
	}

	assert.Equal(t, "", lines[16])
	assert.Contains(t, lines[17], "Start with the Story Agent, then Gameplay, then Visuals, then Tech.")
}

func TestFormatBudget(t *testing.T) {
	tests := []struct {
		usd  int64
		want string
	}{
		{0, "$0"},
		{999, "$999"},
		{5000, "$5,000"},
		{1250000, "$1,250,000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBudget(tt.usd))
		})
	}
}
