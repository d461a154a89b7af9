package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/de-tools/malaria-atlas/pkg/models/domain"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

var (
	ErrDisabled      = errors.New("advisor is disabled: no API key configured")
	ErrEmptyQuestion = errors.New("question must not be empty")
	ErrNoAnswer      = errors.New("model returned no answer")
)

const systemPrompt = `You are the 'Malaria Surveillance AI Advisor', an expert consultant trained on WHO 2025 protocols.

CURRENT DATA CONTEXT:
%s

INSTRUCTIONS:
1. Use the provided context to answer questions.
2. If cases are high, suggest interventions like 'Indoor Residual Spraying' or 'Distributing Insecticide-Treated Nets'.
3. Refer to the '2nd Edition of WHO Malaria Surveillance Manual (2025)' when giving advice.
4. Keep answers professional, concise, and action-oriented.`

// ContentGenerator is the part of the genai client the advisor needs. *genai.Models satisfies it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Advisor interface {
	Ask(ctx context.Context, question string, dashboard domain.DashboardContext) (string, error)
}

type Settings struct {
	APIKey string
	Model  string
}

type geminiAdvisor struct {
	models ContentGenerator
	model  string
}

type disabledAdvisor struct{}

// New builds a Gemini backed advisor. Without an API key it returns an advisor that
// always answers ErrDisabled.
func New(ctx context.Context, settings Settings) (Advisor, error) {
	if settings.APIKey == "" {
		return disabledAdvisor{}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  settings.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return NewWithGenerator(client.Models, settings.Model), nil
}

func NewWithGenerator(models ContentGenerator, model string) Advisor {
	if model == "" {
		model = DefaultModel
	}
	return &geminiAdvisor{models: models, model: model}
}

func (a *geminiAdvisor) Ask(ctx context.Context, question string, dashboard domain.DashboardContext) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: SystemInstruction(dashboard),
			}},
		},
	}
	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{{
			Text: question,
		}},
	}}

	resp, err := a.models.GenerateContent(ctx, a.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate advice: %w", err)
	}
	return answerText(resp)
}

func (disabledAdvisor) Ask(context.Context, string, domain.DashboardContext) (string, error) {
	return "", ErrDisabled
}

// ContextLine renders the dashboard state the way the advisor sees it.
func ContextLine(dashboard domain.DashboardContext) string {
	region := dashboard.Region
	if region == "" {
		region = domain.AllRegions
	}
	return fmt.Sprintf("Region: %s, Total Cases: %d, Risk Level: %s", region, dashboard.TotalCases, dashboard.Risk)
}

func SystemInstruction(dashboard domain.DashboardContext) string {
	return fmt.Sprintf(systemPrompt, ContextLine(dashboard))
}

// answerText joins the non-thought text parts of the first candidate.
func answerText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrNoAnswer
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		sb.WriteString(part.Text)
	}
	if sb.Len() == 0 {
		return "", ErrNoAnswer
	}
	return sb.String(), nil
}
