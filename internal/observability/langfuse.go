package observability

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Conceptual-Machines/game-design-team/internal/config"
	"github.com/Conceptual-Machines/game-design-team/internal/llm"
	langfuse "github.com/henomis/langfuse-go"
	"github.com/henomis/langfuse-go/model"
)

// LangfuseClient wraps the Langfuse client with our configuration
type LangfuseClient struct {
	client  *langfuse.Langfuse
	enabled bool
	ctx     context.Context
}

// LevelError marks a generation that ended in a failure
const LevelError = "ERROR"

// InitializeLangfuse creates the Langfuse client, disabled when not configured
func InitializeLangfuse(ctx context.Context, cfg *config.Config) *LangfuseClient {
	if !cfg.LangfuseEnabled || cfg.LangfuseSecretKey == "" {
		log.Println("⚠️  Langfuse not configured (LANGFUSE_ENABLED=false or LANGFUSE_SECRET_KEY not set)")
		return &LangfuseClient{enabled: false, ctx: ctx}
	}

	// The SDK reads its credentials from the environment
	setEnvDefault("LANGFUSE_HOST", cfg.LangfuseHost)
	setEnvDefault("LANGFUSE_PUBLIC_KEY", cfg.LangfusePublicKey)
	setEnvDefault("LANGFUSE_SECRET_KEY", cfg.LangfuseSecretKey)

	client := &LangfuseClient{
		client:  langfuse.New(ctx),
		enabled: true,
		ctx:     ctx,
	}

	log.Printf("✅ Langfuse initialized (host: %s)", cfg.LangfuseHost)
	return client
}

func setEnvDefault(key, value string) {
	if os.Getenv(key) == "" && value != "" {
		_ = os.Setenv(key, value)
	}
}

// IsEnabled returns whether Langfuse is enabled
func (c *LangfuseClient) IsEnabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// StartTrace starts a new trace in Langfuse
func (c *LangfuseClient) StartTrace(ctx context.Context, name string, metadata map[string]interface{}) *Trace {
	if !c.IsEnabled() {
		return &Trace{enabled: false, ctx: ctx}
	}

	trace, err := c.client.Trace(&model.Trace{
		Name:     name,
		Metadata: metadata,
	})
	if err != nil {
		log.Printf("⚠️  Failed to create Langfuse trace: %v", err)
		return &Trace{enabled: false, ctx: ctx}
	}

	return &Trace{
		trace:   trace,
		enabled: true,
		ctx:     ctx,
		client:  c.client,
	}
}

// Trace represents a Langfuse trace. A disabled trace accepts every call and does nothing.
type Trace struct {
	trace   *model.Trace
	enabled bool
	ctx     context.Context
	client  *langfuse.Langfuse
}

// Generation creates a new generation span within the trace, starting now
func (t *Trace) Generation(name string, metadata map[string]interface{}) *Generation {
	return t.GenerationSince(name, time.Now(), metadata)
}

// GenerationSince creates a generation span that started at start
func (t *Trace) GenerationSince(name string, start time.Time, metadata map[string]interface{}) *Generation {
	if !t.enabled {
		return &Generation{enabled: false, ctx: t.ctx}
	}

	gen, err := t.client.Generation(&model.Generation{
		TraceID:   t.trace.ID,
		Name:      name,
		StartTime: &start,
		Metadata:  metadata,
	}, nil)
	if err != nil {
		log.Printf("⚠️  Failed to create Langfuse generation: %v", err)
		return &Generation{enabled: false, ctx: t.ctx}
	}

	return &Generation{
		generation: gen,
		enabled:    true,
		ctx:        t.ctx,
		client:     t.client,
	}
}

// Finish completes the trace and flushes data to Langfuse
func (t *Trace) Finish() {
	if t.enabled && t.client != nil {
		t.client.Flush(t.ctx)
	}
}

// Generation represents a Langfuse generation span
type Generation struct {
	generation *model.Generation
	enabled    bool
	ctx        context.Context
	client     *langfuse.Langfuse
}

// Input sets the input for the generation
func (g *Generation) Input(input interface{}) {
	if g.enabled && g.generation != nil {
		g.generation.Input = input
	}
}

// Output sets the output for the generation
func (g *Generation) Output(output interface{}) {
	if g.enabled && g.generation != nil {
		g.generation.Output = output
	}
}

// Metadata adds metadata to the generation
func (g *Generation) Metadata(metadata map[string]interface{}) {
	if g.enabled && g.generation != nil {
		if g.generation.Metadata == nil {
			g.generation.Metadata = make(map[string]interface{})
		}
		if md, ok := g.generation.Metadata.(map[string]interface{}); ok {
			for k, v := range metadata {
				md[k] = v
			}
		} else {
			g.generation.Metadata = metadata
		}
	}
}

// SetLevel sets the level of the generation
func (g *Generation) SetLevel(level string) {
	if g.enabled && g.generation != nil {
		g.generation.Level = model.ObservationLevel(level)
	}
}

// LogCompletion records model, output, token usage and estimated cost of one reply
func (g *Generation) LogCompletion(modelName, output string, usage llm.TokenUsage) {
	if !g.enabled || g.generation == nil {
		return
	}

	cost := CalculateCost(modelName, usage)
	g.generation.Model = modelName
	g.generation.Usage = convertUsage(usage, cost)
	if output != "" {
		g.Output(output)
	}
	g.Metadata(map[string]interface{}{
		"model":    modelName,
		"cost_usd": cost,
	})
}

// Finish completes the generation and sends it to Langfuse
func (g *Generation) Finish() {
	if g.enabled && g.generation != nil && g.client != nil {
		now := time.Now()
		g.generation.EndTime = &now
		if _, err := g.client.GenerationEnd(g.generation); err != nil {
			log.Printf("⚠️  Failed to end Langfuse generation: %v", err)
		}
	}
}

func convertUsage(usage llm.TokenUsage, cost float64) model.Usage {
	return model.Usage{
		Input:     usage.InputTokens,
		Output:    usage.OutputTokens,
		Total:     usage.TotalTokens,
		Unit:      model.ModelUsageUnitTokens,
		TotalCost: cost,
	}
}
