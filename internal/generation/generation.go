package generation

import (
	"context"
	"errors"
	"fmt"

	"github.com/emrgen/prd/internal/config"
	"github.com/emrgen/prd/internal/prompt"
)

var ErrGenerationFailed = errors.New("generation failed")

// Failure is returned by every generator when no document text was produced.
// StatusCode is the upstream http status, or zero when the request never got
// a response.
type Failure struct {
	StatusCode int
	Err        error
}

func (f *Failure) Error() string {
	if f.StatusCode != 0 {
		return fmt.Sprintf("generation failed with status %d: %v", f.StatusCode, f.Err)
	}
	return fmt.Sprintf("generation failed: %v", f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func (f *Failure) Is(target error) bool {
	return target == ErrGenerationFailed
}

func failure(status int, err error) *Failure {
	return &Failure{StatusCode: status, Err: err}
}

var errEmptyCompletion = errors.New("empty completion")

// Request is one PRD generation. Prompt and System are sent to model providers;
// the remote generator forwards Input instead and lets the other side build
// the prompt.
type Request struct {
	Input  prompt.Input
	Prompt string
	System string
}

func NewRequest(input prompt.Input) *Request {
	return &Request{
		Input:  input,
		Prompt: prompt.BuildPRDPrompt(input),
		System: prompt.SystemPrompt,
	}
}

// Generator produces the markdown of a PRD. It makes a single attempt and
// waits as long as ctx allows.
type Generator interface {
	Generate(ctx context.Context, req *Request) (string, error)
}

// Func adapts a function to a Generator.
type Func func(ctx context.Context, req *Request) (string, error)

func (f Func) Generate(ctx context.Context, req *Request) (string, error) {
	return f(ctx, req)
}

// New builds the generator selected by GENERATION_PROVIDER.
func New(cfg *config.Config) (Generator, error) {
	gc := cfg.Generation
	switch gc.Provider {
	case "anthropic":
		if gc.AnthropicAPIKey == "" {
			return nil, errors.New("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
		return NewAnthropic(gc.AnthropicAPIKey, gc.Model, gc.MaxTokens), nil
	case "openai":
		if gc.OpenAIAPIKey == "" {
			return nil, errors.New("OPENAI_API_KEY is required for the openai provider")
		}
		return NewOpenAI(gc.OpenAIAPIKey, gc.Model, gc.MaxTokens), nil
	case "remote":
		if gc.Endpoint == "" {
			return nil, errors.New("GENERATION_ENDPOINT is required for the remote provider")
		}
		return NewRemote(gc.Endpoint, nil), nil
	default:
		return nil, fmt.Errorf("unknown generation provider %q", gc.Provider)
	}
}
