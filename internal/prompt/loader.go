package prompt

import (
	"strings"

	"github.com/Conceptual-Machines/game-design-team/pkg/embedded"
)

type Loader struct{}

func NewPromptLoader() *Loader {
	return &Loader{}
}

// GetStoryInstructions loads the story designer persona
func (l *Loader) GetStoryInstructions() (string, error) {
	return strings.TrimSpace(string(embedded.StoryPersonaTxt)), nil
}

// GetGameplayInstructions loads the gameplay designer persona
func (l *Loader) GetGameplayInstructions() (string, error) {
	return strings.TrimSpace(string(embedded.GameplayPersonaTxt)), nil
}

// GetVisualsInstructions loads the art director persona
func (l *Loader) GetVisualsInstructions() (string, error) {
	return strings.TrimSpace(string(embedded.VisualsPersonaTxt)), nil
}

// GetTechInstructions loads the technical director persona
func (l *Loader) GetTechInstructions() (string, error) {
	return strings.TrimSpace(string(embedded.TechPersonaTxt)), nil
}
