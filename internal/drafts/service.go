package drafts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"promptvault/internal/settings"
)

// System defines the public contract for draft operations.
type System interface {
	Handler() *Handler

	Feedback(ctx context.Context, cmd FeedbackCommand) (*DraftResult, error)
	FromKeywords(ctx context.Context, cmd KeywordsCommand) (*DraftResult, error)
	FromText(ctx context.Context, cmd TextCommand) (*DraftResult, error)
	FromImage(ctx context.Context, provider string, data []byte, mime string) (*DraftResult, error)
	Compare(ctx context.Context, cmd CompareCommand) ([]ProviderResult, error)
}

type service struct {
	providers       map[string]Provider
	order           []string
	defaultProvider string
	timeout         time.Duration
	settings        settings.System
	logger          *slog.Logger
	maxUploadSize   int64
}

// New creates the draft service over the given providers. The provider
// slice order is preserved for comparison output.
func New(
	providers []Provider,
	defaultProvider string,
	timeout time.Duration,
	maxUploadSize int64,
	settingsSys settings.System,
	logger *slog.Logger,
) System {
	byName := make(map[string]Provider, len(providers))
	order := make([]string, 0, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
		order = append(order, p.Name())
	}

	return &service{
		providers:       byName,
		order:           order,
		defaultProvider: defaultProvider,
		timeout:         timeout,
		settings:        settingsSys,
		logger:          logger.With("system", "drafts"),
		maxUploadSize:   maxUploadSize,
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger, s.maxUploadSize)
}

func (s *service) Feedback(ctx context.Context, cmd FeedbackCommand) (*DraftResult, error) {
	if strings.TrimSpace(cmd.Feedback) == "" {
		return nil, fmt.Errorf("%w: feedback text required", ErrValidation)
	}

	current, err := json.Marshal(struct {
		Attributes  any    `json:"attributes"`
		FinalPrompt string `json:"final_prompt"`
	}{cmd.Prompt, cmd.Final})
	if err != nil {
		return nil, fmt.Errorf("encode current prompt: %w", err)
	}

	text := fmt.Sprintf(
		"Current prompt:\n%s\n\nUser feedback:\n%s\n\nRevise the prompt according to the feedback. "+
			"Explain the changes in the answer field.",
		current, cmd.Feedback,
	)

	return s.generate(ctx, cmd.Provider, text, nil, "", true)
}

func (s *service) FromKeywords(ctx context.Context, cmd KeywordsCommand) (*DraftResult, error) {
	if strings.TrimSpace(cmd.Keywords) == "" {
		return nil, fmt.Errorf("%w: keywords required", ErrValidation)
	}

	text := "Draft a complete image-generation prompt from these keywords:\n" + cmd.Keywords
	return s.generate(ctx, cmd.Provider, text, nil, "", false)
}

// FromText drafts structured attributes from free text. Without
// optimize the caller's text is authoritative: it is pinned as the
// final prompt and only the attribute breakdown comes from the model.
func (s *service) FromText(ctx context.Context, cmd TextCommand) (*DraftResult, error) {
	if strings.TrimSpace(cmd.Text) == "" {
		return nil, fmt.Errorf("%w: text required", ErrValidation)
	}

	var text string
	if cmd.Optimize {
		text = "Improve this image-generation prompt and break it into structured attributes:\n" + cmd.Text
	} else {
		text = "Break this image-generation prompt into structured attributes without changing its meaning:\n" + cmd.Text
	}

	result, err := s.generate(ctx, cmd.Provider, text, nil, "", false)
	if err != nil {
		return nil, err
	}

	if !cmd.Optimize {
		result.FinalPrompt = cmd.Text
	}
	return result, nil
}

func (s *service) FromImage(ctx context.Context, provider string, data []byte, mime string) (*DraftResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: image data required", ErrValidation)
	}

	instruction, err := s.settings.Get(ctx, settings.KeyImageAnalysisInstruction)
	if err != nil {
		return nil, err
	}

	text := "Describe this image as a structured image-generation prompt."
	return s.generateWith(ctx, provider, Request{
		SystemInstruction: instruction.Value,
		Text:              text,
		ImageData:         data,
		ImageMIME:         mime,
	})
}

// Compare runs the same request against every registered provider
// concurrently. Individual provider failures are reported per entry
// rather than failing the comparison.
func (s *service) Compare(ctx context.Context, cmd CompareCommand) ([]ProviderResult, error) {
	if strings.TrimSpace(cmd.Text) == "" {
		return nil, fmt.Errorf("%w: text required", ErrValidation)
	}

	results := make([]ProviderResult, len(s.order))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(s.order))

	for i, name := range s.order {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = ProviderResult{Provider: name, Error: err.Error()}
				return nil
			}

			result, err := s.FromText(gctx, TextCommand{
				Provider: name,
				Text:     cmd.Text,
				Optimize: true,
			})
			if err != nil {
				results[i] = ProviderResult{Provider: name, Error: err.Error()}
				return nil
			}

			results[i] = ProviderResult{Provider: name, Result: result}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (s *service) generate(
	ctx context.Context,
	provider, text string,
	imageData []byte,
	imageMIME string,
	includeAnswer bool,
) (*DraftResult, error) {
	instruction, err := s.settings.Get(ctx, settings.KeySystemInstruction)
	if err != nil {
		return nil, err
	}

	return s.generateWith(ctx, provider, Request{
		SystemInstruction: instruction.Value,
		Text:              text,
		ImageData:         imageData,
		ImageMIME:         imageMIME,
		IncludeAnswer:     includeAnswer,
	})
}

func (s *service) generateWith(ctx context.Context, name string, req Request) (*DraftResult, error) {
	provider, err := s.resolveProvider(name)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	raw, err := provider.Generate(ctx, req)
	if err != nil {
		s.logger.Warn("draft generation failed",
			"provider", provider.Name(), "elapsed", time.Since(started), "error", err)
		return nil, err
	}

	result, err := parseResult(raw, req.IncludeAnswer)
	if err != nil {
		s.logger.Warn("draft response rejected",
			"provider", provider.Name(), "error", err)
		return nil, err
	}

	s.logger.Info("draft generated",
		"provider", provider.Name(), "elapsed", time.Since(started))
	return result, nil
}

func (s *service) resolveProvider(name string) (Provider, error) {
	if name == "" {
		name = s.defaultProvider
	}

	provider, ok := s.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return provider, nil
}
