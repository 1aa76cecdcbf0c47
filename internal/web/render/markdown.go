// Package render turns agent output into safe HTML for the concept panels.
package render

import (
	"html/template"
	"strings"
	"sync"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

const markdownExtensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock

var (
	panelPolicyOnce sync.Once
	panelPolicy     *bluemonday.Policy
)

// Markdown renders LLM markdown as sanitized HTML. Raw HTML the model emits is
// stripped; links open in a new tab.
func Markdown(source string) template.HTML {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return ""
	}

	// Parsers keep state, one per document
	p := parser.NewWithExtensions(markdownExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank | html.SkipHTML,
	})

	raw := markdown.ToHTML([]byte(trimmed), p, renderer)
	cleaned := panelSanitizer().SanitizeBytes(raw)

	// #nosec G203 -- sanitized by bluemonday above
	return template.HTML(strings.TrimSpace(string(cleaned)))
}

func panelSanitizer() *bluemonday.Policy {
	panelPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		policy.RequireNoReferrerOnLinks(true)
		panelPolicy = policy
	})
	return panelPolicy
}
