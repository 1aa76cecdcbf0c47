package prompt

import (
	"strings"

	"github.com/Conceptual-Machines/game-design-team/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	taskHeader  = "Create a game concept with the following details:"
	taskClosing = "Start with the Story Agent, then Gameplay, then Visuals, then Tech. " +
		"Each agent should provide a detailed section."
	listSeparator = ", "
)

var numberPrinter = message.NewPrinter(language.English)

// Compose renders a brief into the task message that opens the group chat.
// It is deterministic and never fails: empty selections render as empty values.
func Compose(brief models.GameBrief) string {
	lines := []string{
		taskHeader,
		field("Background Vibe", brief.BackgroundVibe),
		field("Game Type", brief.GameType),
		field("Game Goal", brief.Goal),
		field("Target Audience", brief.TargetAudience),
		field("Player Perspective", brief.Perspective),
		field("Multiplayer Support", brief.MultiplayerMode),
		field("Art Style", brief.ArtStyle),
		field("Target Platforms", strings.Join(brief.Platforms, listSeparator)),
		field("Development Time", numberPrinter.Sprintf("%d months", brief.DevelopmentMonths)),
		field("Budget", FormatBudget(brief.BudgetUSD)),
		field("Core Mechanics", strings.Join(brief.CoreMechanics, listSeparator)),
		field("Mood/Atmosphere", strings.Join(brief.Mood, listSeparator)),
		field("Inspiration", brief.Inspiration),
		field("Unique Features", brief.UniqueFeatures),
		field("Detail Level", brief.DetailLevel),
		"",
		taskClosing,
	}
	return strings.Join(lines, "\n")
}

// FormatBudget renders a USD amount with thousands separators, e.g. $10,000
func FormatBudget(usd int64) string {
	return numberPrinter.Sprintf("$%d", usd)
}

func field(label, value string) string {
	return "- " + label + ": " + value
}
