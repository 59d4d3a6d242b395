package problem

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/littlemath/internal/llm"
)

// Purpose labels LLM events recorded for problem generation.
const Purpose = "problem-gen"

// LLMProvider generates problems with an llm.Provider.
type LLMProvider struct {
	llm    llm.Provider
	config Config
	logger *zap.Logger
}

// NewLLMProvider creates a Provider backed by p.
func NewLLMProvider(p llm.Provider, cfg Config, logger *zap.Logger) *LLMProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMProvider{llm: p, config: cfg, logger: logger.Named("problem")}
}

// Fetch asks the model for one problem in category and validates it.
func (g *LLMProvider) Fetch(ctx context.Context, category string) (*MathProblem, error) {
	ctx = llm.WithPurpose(ctx, Purpose)

	resp, err := g.llm.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(category)},
		},
		Schema:      Schema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate problem: %w", err)
	}

	var p MathProblem
	if err := json.Unmarshal(resp.Content, &p); err != nil {
		return nil, fmt.Errorf("parse problem: %w", err)
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(&p); verr != nil {
			g.logger.Warn("problem rejected",
				zap.String("category", category),
				zap.String("validator", verr.Validator),
				zap.String("reason", verr.Message))
			return nil, verr
		}
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return &p, nil
}
