package coordination

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Conceptual-Machines/game-design-team/internal/agents/team"
	"github.com/Conceptual-Machines/game-design-team/internal/llm"
	"github.com/Conceptual-Machines/game-design-team/internal/models"
)

// DefaultMaxRound is the round ceiling used when none is configured
const DefaultMaxRound = 10

// StopReason explains why a group chat ended
type StopReason string

const (
	StopTerminated StopReason = "terminated" // A participant's termination check fired
	StopMaxRounds  StopReason = "max_rounds" // The transcript reached MaxRound messages
)

// Turn is passed to the observer after each message is appended
type Turn struct {
	Index       int // Position of the message in the transcript
	Participant team.Participant
	Message     models.TranscriptMessage
	Usage       llm.TokenUsage
	Duration    time.Duration
}

// TurnObserver is notified of every appended message
type TurnObserver func(ctx context.Context, turn Turn)

// GroupChat runs a round-robin conversation among a fixed roster
type GroupChat struct {
	Participants  team.Roster
	MaxRound      int
	Provider      llm.Provider
	Model         string
	ReasoningMode string
	OnTurn        TurnObserver
}

// ChatResult is the outcome of a completed group chat
type ChatResult struct {
	Transcript []models.TranscriptMessage `json:"transcript"`
	StopReason StopReason                 `json:"stop_reason"`
	Rounds     int                        `json:"rounds"`
	Usage      llm.TokenUsage             `json:"usage"`
}

// NewGroupChat creates a group chat over the roster, sharing one backend
func NewGroupChat(roster team.Roster, provider llm.Provider, model string, maxRound int) *GroupChat {
	if maxRound <= 0 {
		maxRound = DefaultMaxRound
	}
	return &GroupChat{
		Participants: roster,
		MaxRound:     maxRound,
		Provider:     provider,
		Model:        model,
	}
}

// Run posts task as the orchestrator's message and lets the others speak in
// roster order after it, wrapping around. Before a participant speaks its termination
// check is applied to the latest message; the chat also ends once the
// transcript holds MaxRound messages. Any backend error aborts the run and no
// partial result is returned.
func (g *GroupChat) Run(ctx context.Context, task string) (*ChatResult, error) {
	if len(g.Participants) == 0 {
		return nil, errors.New("group chat has no participants")
	}
	if g.Provider == nil {
		return nil, errors.New("group chat has no provider")
	}
	initiator, start := g.Participants.Orchestrator()
	if start < 0 {
		return nil, errors.New("group chat has no orchestrator")
	}

	maxRound := g.MaxRound
	if maxRound <= 0 {
		maxRound = DefaultMaxRound
	}

	backend := team.Backend{Provider: g.Provider, Model: g.Model, ReasoningMode: g.ReasoningMode}

	result := &ChatResult{
		Transcript: []models.TranscriptMessage{{Name: initiator.Name, Content: task}},
		StopReason: StopMaxRounds,
	}
	g.notify(ctx, Turn{Index: 0, Participant: initiator, Message: result.Transcript[0]})

	for next := 1; len(result.Transcript) < maxRound; next++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		speaker := g.Participants[(start+next)%len(g.Participants)]
		last := result.Transcript[len(result.Transcript)-1]
		if speaker.IsTermination != nil && speaker.IsTermination(last) {
			result.StopReason = StopTerminated
			break
		}

		reply, err := speaker.Respond(ctx, backend, result.Transcript)
		if err != nil {
			return nil, fmt.Errorf("turn %d: %w", len(result.Transcript), err)
		}

		result.Transcript = append(result.Transcript, reply.Message)
		result.Usage.Add(reply.Usage)
		g.notify(ctx, Turn{
			Index:       len(result.Transcript) - 1,
			Participant: speaker,
			Message:     reply.Message,
			Usage:       reply.Usage,
			Duration:    reply.Duration,
		})
	}

	result.Rounds = len(result.Transcript)
	return result, nil
}

func (g *GroupChat) notify(ctx context.Context, turn Turn) {
	if g.OnTurn != nil {
		g.OnTurn(ctx, turn)
	}
}
