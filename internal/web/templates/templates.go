// Package templates renders the game design page as templ components.
package templates

import (
	"html/template"

	"github.com/Conceptual-Machines/game-design-team/internal/models"
	"github.com/Conceptual-Machines/game-design-team/internal/prompt"
	"github.com/Conceptual-Machines/game-design-team/internal/web/render"
	"github.com/Conceptual-Machines/game-design-team/pkg/embedded"
	"github.com/a-h/templ"
)

var pages = template.Must(
	template.New("pages").Funcs(template.FuncMap{
		"budget": prompt.FormatBudget,
	}).ParseFS(embedded.Templates, "data/templates/*.html"),
)

// Banner is the status line shown above the panels
type Banner struct {
	Kind    string // "success" or "error"
	Message string
}

// SuccessBanner reports a completed run
func SuccessBanner() *Banner {
	return &Banner{Kind: "success", Message: "✨ Game concept generated successfully!"}
}

// ErrorBanner reports a run that did not happen or failed
func ErrorBanner(message string) *Banner {
	return &Banner{Kind: "error", Message: message}
}

// Option is one choice of a select or checkbox group
type Option struct {
	Value    string
	Selected bool
}

// CheckboxGroup is a multi-select rendered as checkboxes sharing one form name
type CheckboxGroup struct {
	Name    string
	Options []Option
}

// Panel is one collapsible concept section
type Panel struct {
	Slot      string
	Title     string
	Body      template.HTML
	Generated bool
}

// Agent describes a team member on the info card
type Agent struct {
	Icon        string
	Name        string
	Description string
}

// Agents introduces the design team, in speaking order
var Agents = []Agent{
	{Icon: "🎭", Name: "Story Agent", Description: "Crafts compelling narratives and rich worlds"},
	{Icon: "🎮", Name: "Gameplay Agent", Description: "Creates engaging mechanics and systems"},
	{Icon: "🎨", Name: "Visuals Agent", Description: "Shapes the artistic vision and style"},
	{Icon: "⚙️", Name: "Tech Agent", Description: "Provides technical direction and solutions"},
}

var panelTitles = map[string]string{
	models.SlotStory:    "Story Design",
	models.SlotGameplay: "Gameplay Mechanics",
	models.SlotVisuals:  "Visual and Audio Design",
	models.SlotTech:     "Technical Recommendations",
}

// HomeData is everything the page template reads
type HomeData struct {
	Brief  models.GameBrief
	Model  string
	Banner *Banner
	Agents []Agent
	Panels []Panel // Empty until a run completed in this session

	GameTypes        []Option
	TargetAudiences  []Option
	Perspectives     []Option
	MultiplayerModes []Option
	ArtStyles        []Option
	Platforms        CheckboxGroup
	CoreMechanics    CheckboxGroup
	Moods            CheckboxGroup
	DetailLevels     []Option

	MinMonths  int
	MaxMonths  int
	BudgetStep int64
}

// NewHomeData builds the page model. bundle is nil when no run has completed yet.
func NewHomeData(brief models.GameBrief, model string, bundle *models.OutputBundle, banner *Banner) HomeData {
	data := HomeData{
		Brief:  brief,
		Model:  model,
		Banner: banner,
		Agents: Agents,

		GameTypes:        single(models.GameTypes, brief.GameType),
		TargetAudiences:  single(models.TargetAudiences, brief.TargetAudience),
		Perspectives:     single(models.Perspectives, brief.Perspective),
		MultiplayerModes: single(models.MultiplayerModes, brief.MultiplayerMode),
		ArtStyles:        single(models.ArtStyles, brief.ArtStyle),
		Platforms:        multi("platforms", models.Platforms, brief.Platforms),
		CoreMechanics:    multi("core_mechanics", models.CoreMechanics, brief.CoreMechanics),
		Moods:            multi("mood", models.Moods, brief.Mood),
		DetailLevels:     single(models.DetailLevels, brief.DetailLevel),

		MinMonths:  models.MinDevelopmentMonths,
		MaxMonths:  models.MaxDevelopmentMonths,
		BudgetStep: models.BudgetStepUSD,
	}

	if bundle != nil {
		for _, slot := range models.Slots {
			data.Panels = append(data.Panels, Panel{
				Slot:      slot,
				Title:     panelTitles[slot],
				Body:      render.Markdown(bundle.Get(slot)),
				Generated: bundle.Generated(slot),
			})
		}
	}

	return data
}

func single(values []string, selected string) []Option {
	options := make([]Option, len(values))
	for i, v := range values {
		options[i] = Option{Value: v, Selected: v == selected}
	}
	return options
}

func multi(name string, values, selected []string) CheckboxGroup {
	group := CheckboxGroup{Name: name, Options: make([]Option, len(values))}
	for i, v := range values {
		group.Options[i] = Option{Value: v, Selected: models.Has(selected, v)}
	}
	return group
}

// Home renders the full page
func Home(data HomeData) templ.Component {
	return templ.FromGoHTML(pages.Lookup("home.html"), data)
}

// NotFound renders the 404 page
func NotFound(path string) templ.Component {
	return templ.FromGoHTML(pages.Lookup("not_found.html"), map[string]string{"Path": path})
}
