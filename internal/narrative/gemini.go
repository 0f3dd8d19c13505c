package narrative

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"finhealth/internal/logger"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.5-flash"

// TextModel is the slice of an LLM client the generators need.
type TextModel interface {
	GenerateText(ctx context.Context, prompt, systemPrompt string, jsonMode bool) (string, error)
}

// GeminiModel implements TextModel on the Gemini API.
type GeminiModel struct {
	client *genai.Client
	model  string
}

// NewGeminiModel creates a Gemini-backed TextModel.
func NewGeminiModel(ctx context.Context, apiKey, model string) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiModel{client: client, model: model}, nil
}

// GenerateText sends one generateContent request.
func (g *GeminiModel) GenerateText(ctx context.Context, prompt, systemPrompt string, jsonMode bool) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.1)),
	}
	if jsonMode {
		config.ResponseMIMEType = "application/json"
	}
	if systemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		}
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", errors.New("gemini returned an empty response")
	}
	return text, nil
}

const analystSystemPrompt = "You are a financial analyst writing for owners of small and medium businesses. " +
	"Use only the figures you are given and never invent numbers."

// LLMGenerator asks a TextModel for a JSON report.
type LLMGenerator struct {
	model TextModel
}

// NewLLMGenerator creates a Generator on top of model.
func NewLLMGenerator(model TextModel) *LLMGenerator {
	return &LLMGenerator{model: model}
}

func (g *LLMGenerator) Name() string { return "llm" }

// Generate implements Generator.
func (g *LLMGenerator) Generate(ctx context.Context, in Input) (Report, error) {
	logger.Get().Infow("Running AI analysis")

	raw, err := g.model.GenerateText(ctx, analysisPrompt(in), analystSystemPrompt, true)
	if err != nil {
		return Report{}, err
	}
	return ParseReport(raw)
}

func analysisPrompt(in Input) string {
	return "Analyze the following SME financial data.\n" +
		"Return ONLY a JSON object with the string fields \"health_summary\", " +
		"\"risk_explanation\" and \"improvement_recommendations\".\n\n" +
		"METRICS:\n" + MetricsContext(in.Metrics) + "\n\n" +
		"RISKS:\n" + RiskContext(in.Risk) + "\n"
}
