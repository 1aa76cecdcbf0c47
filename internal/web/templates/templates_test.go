package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/Conceptual-Machines/game-design-team/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderHome(t *testing.T, data HomeData) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, Home(data).Render(context.Background(), &sb))
	return sb.String()
}

func TestHomeRendersDefaults(t *testing.T) {
	html := renderHome(t, NewHomeData(models.DefaultBrief(), "gpt-4o-mini", nil, nil))

	assert.Contains(t, html, "🎮 AI Game Design Agent Team")
	assert.Contains(t, html, `value="Epic fantasy with dragons"`)
	assert.Contains(t, html, `<option value="RPG" selected>RPG</option>`)
	assert.Contains(t, html, `<option value="Action">Action</option>`)
	assert.Contains(t, html, `name="platforms" value="PC">`)
	assert.Contains(t, html, `name="api_key"`)
	assert.Contains(t, html, "$10,000")
	assert.Contains(t, html, "Generate Game Concept")
	for _, agent := range Agents {
		assert.Contains(t, html, agent.Name)
	}

	assert.NotContains(t, html, "<details")
	assert.NotContains(t, html, `class="banner`)
}

func TestHomeRendersSelections(t *testing.T) {
	brief := models.DefaultBrief()
	brief.Platforms = []string{"Mobile"}
	brief.Mood = []string{"Dark", "Scary"}
	brief.Inspiration = "Zelda <3"

	html := renderHome(t, NewHomeData(brief, "gpt-4o-mini", nil, nil))
	assert.Contains(t, html, `name="platforms" value="Mobile" checked>`)
	assert.Contains(t, html, `name="mood" value="Scary" checked>`)
	assert.Contains(t, html, `name="mood" value="Epic">`)
	assert.Contains(t, html, "Zelda &lt;3")
}

func TestHomeRendersPanels(t *testing.T) {
	bundle := models.NewOutputBundle()
	bundle.Story = "## Story Design\nA **frozen** kingdom."

	html := renderHome(t, NewHomeData(models.DefaultBrief(), "gpt-4o-mini", &bundle, SuccessBanner()))

	assert.Equal(t, 4, strings.Count(html, "<details"))
	assert.Contains(t, html, "Game concept generated successfully!")
	assert.Contains(t, html, `class="banner success"`)
	assert.Contains(t, html, "<strong>frozen</strong>")
	assert.Contains(t, html, "<summary>Technical Recommendations</summary>")
	assert.Equal(t, 3, strings.Count(html, ` missing"`))
	assert.Contains(t, html, "<p>Not generated.</p>")
}

func TestHomeRendersErrorBanner(t *testing.T) {
	html := renderHome(t, NewHomeData(models.DefaultBrief(), "", nil, ErrorBanner("Please enter your OpenAI API key.")))
	assert.Contains(t, html, `class="banner error"`)
	assert.Contains(t, html, "Please enter your OpenAI API key.")
}

func TestNewHomeDataPanelOrder(t *testing.T) {
	bundle := models.NewOutputBundle()
	data := NewHomeData(models.DefaultBrief(), "", &bundle, nil)

	require.Len(t, data.Panels, 4)
	for i, slot := range models.Slots {
		assert.Equal(t, slot, data.Panels[i].Slot)
		assert.False(t, data.Panels[i].Generated)
	}
}

func TestNotFound(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, NotFound("/nope").Render(context.Background(), &sb))
	assert.Contains(t, sb.String(), "<code>/nope</code>")
}
