package embedded

import "embed"

// Persona instructions for the generative participants
//
//go:embed data/personas/story.txt
var StoryPersonaTxt []byte

//go:embed data/personas/gameplay.txt
var GameplayPersonaTxt []byte

//go:embed data/personas/visuals.txt
var VisualsPersonaTxt []byte

//go:embed data/personas/tech.txt
var TechPersonaTxt []byte

// Templates holds the HTML page templates
//
//go:embed data/templates/*.html
var Templates embed.FS
