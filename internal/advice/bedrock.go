package advice

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// DefaultModelID is the text model invoked when none is configured
const DefaultModelID = "anthropic.claude-instant-v1"

// BedrockConfig configures the Bedrock-backed generator.
type BedrockConfig struct {
	Region    string
	ModelID   string
	MaxTokens int
}

// Bedrock generates advice through an AWS Bedrock text model.
type Bedrock struct {
	client    *bedrockruntime.Client
	modelID   string
	maxTokens int
}

// NewBedrock creates a Bedrock generator using the default AWS credential
// chain (environment, shared config, instance role).
func NewBedrock(ctx context.Context, cfg BedrockConfig) (*Bedrock, error) {
	if cfg.ModelID == "" {
		cfg.ModelID = DefaultModelID
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 400
	}

	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &Bedrock{
		client:    bedrockruntime.NewFromConfig(awsCfg),
		modelID:   cfg.ModelID,
		maxTokens: cfg.MaxTokens,
	}, nil
}

type claudeRequest struct {
	Prompt            string   `json:"prompt"`
	MaxTokensToSample int      `json:"max_tokens_to_sample"`
	Temperature       float64  `json:"temperature"`
	TopK              int      `json:"top_k"`
	TopP              float64  `json:"top_p"`
	StopSequences     []string `json:"stop_sequences"`
}

type claudeResponse struct {
	Completion string `json:"completion"`
}

// Generate invokes the model with the stage prompt and returns its text.
func (b *Bedrock) Generate(ctx context.Context, spot Context) (string, error) {
	payload := claudeRequest{
		Prompt:            fmt.Sprintf("\n\nHuman: %s\n\nAssistant:", Prompt(spot)),
		MaxTokensToSample: b.maxTokens,
		Temperature:       0.7,
		TopK:              250,
		TopP:              0.999,
		StopSequences:     []string{"\n\nHuman:"},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	out, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.modelID),
		Body:        body,
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("invoke %s: %w", b.modelID, err)
	}

	var resp claudeResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return strings.TrimSpace(resp.Completion), nil
}
