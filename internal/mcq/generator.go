package mcq

import (
	"context"
	"fmt"

	"github.com/edubot/edubot/internal/llm"
	"github.com/edubot/edubot/internal/locale"
	"github.com/edubot/edubot/internal/logger"
)

// Generator produces one validated question in the requested language.
type Generator interface {
	// Generate makes a single model round-trip. It never retries; see
	// GenerateValid for the bounded retry policy.
	Generate(ctx context.Context, lang locale.Language) (*Record, error)
}

// FailureKind classifies why a generation attempt failed. Callers show the
// same notice for every kind; the kind only drives logging and retry.
type FailureKind string

const (
	FailureGateway    FailureKind = "gateway"
	FailureExtraction FailureKind = "extraction"
	FailureParse      FailureKind = "parse"
	FailureValidation FailureKind = "validation"
)

// GenerationError wraps the cause of a failed attempt together with the
// raw model output, when there was one.
type GenerationError struct {
	Kind     FailureKind
	Language locale.Language
	Raw      string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("mcq generation failed (%s, %s): %v", e.Kind, e.Language, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every parsed record; the first failure
	// stops the pipeline.
	Validators []Validator

	// MaxTokens is the token budget for the model response. The bundle
	// carries three languages, so this is larger than a chat reply.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&SchemaValidator{},
		},
		MaxTokens:   1000,
		Temperature: 0.7,
	}
}

// LLMGenerator implements Generator using an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	log      *logger.Logger
}

// New creates a new LLMGenerator. A nil log discards diagnostics.
func New(provider llm.Provider, cfg Config, log *logger.Logger) *LLMGenerator {
	if log == nil {
		log = logger.Nop()
	}
	return &LLMGenerator{provider: provider, config: cfg, log: log}
}

// Generate produces a single question for lang.
func (g *LLMGenerator) Generate(ctx context.Context, lang locale.Language) (*Record, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeMCQ)

	system, user := BuildPrompt()
	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: user}},
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, g.fail(FailureGateway, lang, "", err)
	}

	block, err := ExtractBlock(resp.Content, lang)
	if err != nil {
		return nil, g.fail(FailureExtraction, lang, resp.Content, err)
	}

	rec, err := ParseBlock(block)
	if err != nil {
		return nil, g.fail(FailureParse, lang, resp.Content, err)
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(rec, lang); verr != nil {
			return nil, g.fail(FailureValidation, lang, resp.Content, verr)
		}
	}

	return rec, nil
}

func (g *LLMGenerator) fail(kind FailureKind, lang locale.Language, raw string, err error) error {
	g.log.Warn("mcq generation failed",
		"kind", string(kind),
		"language", lang.String(),
		"error", err.Error(),
		"raw", raw,
	)
	return &GenerationError{Kind: kind, Language: lang, Raw: raw, Err: err}
}
