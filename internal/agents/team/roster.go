package team

import (
	"fmt"

	"github.com/Conceptual-Machines/game-design-team/internal/models"
	"github.com/Conceptual-Machines/game-design-team/internal/prompt"
)

// Role identifies a participant of the design team
type Role int

const (
	RoleOrchestrator Role = iota // Relays the task and ends the exchange
	RoleStory
	RoleGameplay
	RoleVisuals
	RoleTech
)

// Participant names as they appear in the transcript
const (
	OrchestratorName = "User_Proxy"
	StoryName        = "Story_Agent"
	GameplayName     = "Gameplay_Agent"
	VisualsName      = "Visuals_Agent"
	TechName         = "Tech_Agent"
)

// Section headers each generative participant must start its answer with
const (
	StoryMarker    = "## Story Design"
	GameplayMarker = "## Gameplay Mechanics"
	VisualsMarker  = "## Visual and Audio Design"
	TechMarker     = "## Technical Recommendations"
)

func (r Role) String() string {
	switch r {
	case RoleOrchestrator:
		return "orchestrator"
	case RoleStory:
		return "story"
	case RoleGameplay:
		return "gameplay"
	case RoleVisuals:
		return "visuals"
	case RoleTech:
		return "tech"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Participant is one member of the group chat
type Participant struct {
	Role         Role
	Name         string
	Instructions string // Persona system directive, empty for the orchestrator
	Marker       string // Required section header, empty for the orchestrator
	Slot         string // OutputBundle slot the reply is extracted into

	// IsTermination is checked against the latest message when it is this
	// participant's turn; nil never terminates
	IsTermination func(last models.TranscriptMessage) bool
}

// AlwaysTerminate ends the conversation on the first check regardless of content
func AlwaysTerminate(models.TranscriptMessage) bool {
	return true
}

// Generative reports whether the participant produces text through the LLM backend
func (p Participant) Generative() bool {
	return p.Role != RoleOrchestrator
}

// Section binds a speaker to the marker and slot the extractor looks for
type Section struct {
	Speaker string
	Marker  string
	Slot    string
}

// Sections are the fixed (speaker, marker) pairs, in presentation order
var Sections = []Section{
	{Speaker: StoryName, Marker: StoryMarker, Slot: models.SlotStory},
	{Speaker: GameplayName, Marker: GameplayMarker, Slot: models.SlotGameplay},
	{Speaker: VisualsName, Marker: VisualsMarker, Slot: models.SlotVisuals},
	{Speaker: TechName, Marker: TechMarker, Slot: models.SlotTech},
}

// Roster is the ordered participant list; order is the speaking order
type Roster []Participant

// NewRoster builds the five participants in speaking order:
// orchestrator, story, gameplay, visuals, tech.
func NewRoster(loader *prompt.Loader) (Roster, error) {
	personas := []struct {
		role Role
		load func() (string, error)
	}{
		{RoleStory, loader.GetStoryInstructions},
		{RoleGameplay, loader.GetGameplayInstructions},
		{RoleVisuals, loader.GetVisualsInstructions},
		{RoleTech, loader.GetTechInstructions},
	}

	roster := Roster{{Role: RoleOrchestrator, Name: OrchestratorName, IsTermination: AlwaysTerminate}}
	for i, persona := range personas {
		instructions, err := persona.load()
		if err != nil {
			return nil, fmt.Errorf("load %s persona: %w", persona.role, err)
		}
		section := Sections[i]
		roster = append(roster, Participant{
			Role:         persona.role,
			Name:         section.Speaker,
			Instructions: instructions,
			Marker:       section.Marker,
			Slot:         section.Slot,
		})
	}

	return roster, nil
}

// Orchestrator returns the orchestrating participant and its position, or -1
// when the roster has none
func (r Roster) Orchestrator() (Participant, int) {
	for i, p := range r {
		if p.Role == RoleOrchestrator {
			return p, i
		}
	}
	return Participant{}, -1
}

// Generative returns the LLM-backed participants in speaking order
func (r Roster) Generative() []Participant {
	var out []Participant
	for _, p := range r {
		if p.Generative() {
			out = append(out, p)
		}
	}
	return out
}
