package metrics

import (
	"context"
	"log"
	"time"

	"github.com/Conceptual-Machines/game-design-team/internal/llm"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const (
	namespace                = "GameDesignTeam/API"
	httpStatusServerError    = 500
	cloudwatchTimeoutSeconds = 5
)

// metricPutter is the subset of the CloudWatch client used here
type metricPutter interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Client wraps CloudWatch client for custom metrics
type Client struct {
	client      metricPutter
	enabled     bool
	environment string
	async       bool
}

// NewClient creates a new CloudWatch metrics client
func NewClient(ctx context.Context, environment string) (*Client, error) {
	// Only enable in production
	if environment != "production" {
		log.Printf("📊 CloudWatch Metrics: DISABLED (environment: %s)", environment)
		return &Client{
			enabled:     false,
			environment: environment,
		}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to load AWS config for CloudWatch: %v", err)
		return &Client{enabled: false}, nil
	}

	log.Printf("📊 CloudWatch Metrics: ✅ ENABLED (namespace: %s)", namespace)

	return &Client{
		client:      cloudwatch.NewFromConfig(cfg),
		enabled:     true,
		environment: environment,
		async:       true,
	}, nil
}

// RecordAPIRequest records an API request metric
func (m *Client) RecordAPIRequest(endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	m.dispatch(func(ctx context.Context) {
		metricName := "APIRequests"
		if statusCode >= httpStatusServerError {
			metricName = "APIErrors"
		}
		dimensions := m.dimensions("Endpoint", endpoint)

		m.put(ctx, metricName, 1, types.StandardUnitCount, dimensions)
		m.put(ctx, "APILatency", float64(duration.Milliseconds()), types.StandardUnitMilliseconds, dimensions)
	})
}

// RecordGenerationRun records the duration and length of a group chat
func (m *Client) RecordGenerationRun(_ context.Context, model string, duration time.Duration, rounds int, success bool) {
	if !m.enabled {
		return
	}

	m.dispatch(func(ctx context.Context) {
		dimensions := m.dimensions("Model", model, "Success", boolToString(success))

		m.put(ctx, "GenerationDuration", float64(duration.Milliseconds()), types.StandardUnitMilliseconds, dimensions)
		m.put(ctx, "GenerationRounds", float64(rounds), types.StandardUnitCount, dimensions)
	})
}

// RecordAgentTurn records token usage and latency of one participant reply
func (m *Client) RecordAgentTurn(_ context.Context, agent, model string, duration time.Duration, usage llm.TokenUsage) {
	if !m.enabled {
		return
	}

	m.dispatch(func(ctx context.Context) {
		dimensions := m.dimensions("Agent", agent, "Model", model)

		m.put(ctx, "AgentLatency", float64(duration.Milliseconds()), types.StandardUnitMilliseconds, dimensions)
		m.put(ctx, "Tokens/Input", float64(usage.InputTokens), types.StandardUnitCount, dimensions)
		m.put(ctx, "Tokens/Output", float64(usage.OutputTokens), types.StandardUnitCount, dimensions)
		m.put(ctx, "Tokens/Total", float64(usage.TotalTokens), types.StandardUnitCount, dimensions)
	})
}

// RecordExtractionMisses counts sections a run failed to produce
func (m *Client) RecordExtractionMisses(_ context.Context, misses []string) {
	if !m.enabled {
		return
	}

	m.dispatch(func(ctx context.Context) {
		m.put(ctx, "ExtractionMisses", float64(len(misses)), types.StandardUnitCount, m.dimensions())
		for _, slot := range misses {
			m.put(ctx, "ExtractionMiss", 1, types.StandardUnitCount, m.dimensions("Section", slot))
		}
	})
}

func (m *Client) dispatch(fn func(ctx context.Context)) {
	if m.async {
		go fn(context.Background())
		return
	}
	fn(context.Background())
}

// dimensions builds name/value pairs plus the environment dimension
func (m *Client) dimensions(pairs ...string) []types.Dimension {
	dims := make([]types.Dimension, 0, len(pairs)/2+1)
	for i := 0; i+1 < len(pairs); i += 2 {
		dims = append(dims, types.Dimension{
			Name:  aws.String(pairs[i]),
			Value: aws.String(pairs[i+1]),
		})
	}
	return append(dims, types.Dimension{
		Name:  aws.String("Environment"),
		Value: aws.String(m.environment),
	})
}

func (m *Client) put(ctx context.Context, metricName string, value float64, unit types.StandardUnit, dimensions []types.Dimension) {
	if err := m.putMetric(ctx, metricName, value, unit, dimensions); err != nil {
		log.Printf("Failed to record %s metric: %v", metricName, err)
	}
}

// putMetric sends a metric to CloudWatch
func (m *Client) putMetric(
	_ context.Context,
	metricName string,
	value float64,
	unit types.StandardUnit,
	dimensions []types.Dimension,
) error {
	if !m.enabled || m.client == nil {
		return nil
	}

	timeout := time.Duration(cloudwatchTimeoutSeconds) * time.Second
	cwCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	_, err := m.client.PutMetricData(cwCtx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Value:      aws.Float64(value),
				Unit:       unit,
				Timestamp:  aws.Time(time.Now()),
				Dimensions: dimensions,
			},
		},
	})

	return err
}

func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
