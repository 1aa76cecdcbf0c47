package models

// NotGenerated is the placeholder for an output slot no agent filled
const NotGenerated = "Not generated."

// Output slot names
const (
	SlotStory    = "story"
	SlotGameplay = "gameplay"
	SlotVisuals  = "visuals"
	SlotTech     = "tech"
)

// Slots lists the output slots in presentation order
var Slots = []string{SlotStory, SlotGameplay, SlotVisuals, SlotTech}

// TranscriptMessage is one turn of the group chat. Messages are appended in
// conversation order and never modified afterwards.
type TranscriptMessage struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// OutputBundle holds the four extracted sections of a game concept
type OutputBundle struct {
	Story    string `json:"story"`
	Gameplay string `json:"gameplay"`
	Visuals  string `json:"visuals"`
	Tech     string `json:"tech"`
}

// NewOutputBundle returns a bundle with every slot set to NotGenerated
func NewOutputBundle() OutputBundle {
	return OutputBundle{
		Story:    NotGenerated,
		Gameplay: NotGenerated,
		Visuals:  NotGenerated,
		Tech:     NotGenerated,
	}
}

// Get returns the content of a slot by name
func (o OutputBundle) Get(slot string) string {
	switch slot {
	case SlotStory:
		return o.Story
	case SlotGameplay:
		return o.Gameplay
	case SlotVisuals:
		return o.Visuals
	case SlotTech:
		return o.Tech
	default:
		return ""
	}
}

// Set assigns content to a slot by name. Unknown slots are ignored.
func (o *OutputBundle) Set(slot, content string) {
	switch slot {
	case SlotStory:
		o.Story = content
	case SlotGameplay:
		o.Gameplay = content
	case SlotVisuals:
		o.Visuals = content
	case SlotTech:
		o.Tech = content
	}
}

// Generated reports whether a slot holds extracted content
func (o OutputBundle) Generated(slot string) bool {
	content := o.Get(slot)
	return content != "" && content != NotGenerated
}

// Missing returns the slots still at the sentinel, in presentation order
func (o OutputBundle) Missing() []string {
	var missing []string
	for _, slot := range Slots {
		if !o.Generated(slot) {
			missing = append(missing, slot)
		}
	}
	return missing
}
