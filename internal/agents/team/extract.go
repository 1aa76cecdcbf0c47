package team

import (
	"strings"

	"github.com/Conceptual-Machines/game-design-team/internal/models"
)

// Extract assigns transcript messages to output slots. For each section the
// first message from its speaker containing its marker wins; later matches are
// ignored. Slots without a match keep the NotGenerated sentinel.
func Extract(transcript []models.TranscriptMessage) models.OutputBundle {
	bundle := models.NewOutputBundle()

	for _, section := range Sections {
		for _, msg := range transcript {
			if msg.Name == section.Speaker && strings.Contains(msg.Content, section.Marker) {
				bundle.Set(section.Slot, msg.Content)
				break
			}
		}
	}

	return bundle
}
