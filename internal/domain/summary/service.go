package summary

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/janhq/jan-summarizer/internal/domain/model"
	"github.com/janhq/jan-summarizer/internal/utils/platformerrors"
)

const (
	MessageEmptyText      = "Input text is empty"
	MessageModelNotLoaded = "Model not loaded. Please reload the model."

	previewLength = 120
)

// Service describes the summarization use cases.
type Service interface {
	Summarize(ctx context.Context, req Request) (Summary, error)
	Get(ctx context.Context, id string) (Summary, error)
	ListRecent(ctx context.Context, limit int) ([]Summary, error)
}

type service struct {
	settings Settings
	models   model.Provider
	repo     Repository
	cache    Cache
	executor Executor
	redactor Redactor
	log      zerolog.Logger
	flight   flightGroup
	now      func() time.Time
}

// NewService wires the summarization service. cache and redactor may be nil.
func NewService(settings Settings, models model.Provider, repo Repository, cache Cache, executor Executor, redactor Redactor, log zerolog.Logger) Service {
	return &service{
		settings: settings,
		models:   models,
		repo:     repo,
		cache:    cache,
		executor: executor,
		redactor: redactor,
		log:      log.With().Str("component", "summary-service").Logger(),
		now:      time.Now,
	}
}

func (s *service) Summarize(ctx context.Context, req Request) (Summary, error) {
	ctx, span := otel.Tracer("summary").Start(ctx, "summary.Summarize")
	defer span.End()

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return Summary{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, MessageEmptyText, nil, "4f1f0b7e-6a51-4d8c-9a0e-0b3c1a7c2d10")
	}
	inputLength := utf8.RuneCountInString(text)
	if s.settings.MaxInputCharacters > 0 && inputLength > s.settings.MaxInputCharacters {
		return Summary{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("Input text exceeds %d characters", s.settings.MaxInputCharacters), nil, "b7d9a0f4-3e2c-4c61-8f0a-6d2e5b1c9a33")
	}

	m, info, err := s.models.Acquire()
	if err != nil {
		return Summary{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnavailable, MessageModelNotLoaded, err, "0c9a3e55-2b7f-4a8e-9d61-5f4c3b2a1e07")
	}

	params := s.settings.Clamp(req)
	key := cacheKey(info.Epoch, text, params)
	span.SetAttributes(
		attribute.Int("summary.input_length", inputLength),
		attribute.Int("summary.max_length", params.MaxLength),
		attribute.Int("summary.num_beams", params.NumBeams),
	)

	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			cached.Cached = true
			span.SetAttributes(attribute.Bool("summary.cached", true))
			s.log.Debug().Str("summary_id", cached.ID).Msg("serving cached summary")
			return cached, nil
		}
	}

	// Identical concurrent requests share one generation. It is abandoned only
	// once every caller waiting on it has gone.
	result, shared, err := s.flight.Do(ctx, key, func(ctx context.Context) (any, error) {
		return s.generate(ctx, m, info, text, key, params)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Summary{}, err
	}
	if shared {
		s.log.Debug().Msg("coalesced concurrent summarize request")
	}
	return result.(Summary), nil
}

func (s *service) generate(ctx context.Context, m model.Model, info model.Info, text, key string, params Params) (Summary, error) {
	var out Summary
	err := s.executor.Execute(ctx, func(ctx context.Context) error {
		start := s.now()

		tokens, err := m.Encode(ctx, text, model.EncodeOptions{})
		if err != nil {
			return s.runtimeError(ctx, "encode input", err)
		}
		plan := PlanLength(len(tokens), params.MaxLength)

		inputIDs, err := m.Encode(ctx, s.settings.InputPrefix+text, model.EncodeOptions{
			MaxLength:  s.settings.InputMaxTokens,
			Truncation: true,
		})
		if err != nil {
			return s.runtimeError(ctx, "encode prompt", err)
		}

		outputIDs, err := m.Generate(ctx, inputIDs, s.settings.GenerationParams(plan, params))
		if err != nil {
			return s.runtimeError(ctx, "generate", err)
		}

		summaryText, err := m.Decode(ctx, outputIDs)
		if err != nil {
			return s.runtimeError(ctx, "decode", err)
		}

		now := s.now()
		out = Summary{
			ID:           uuid.NewString(),
			Text:         summaryText,
			InputLength:  utf8.RuneCountInString(text),
			OutputLength: utf8.RuneCountInString(summaryText),
			InputTokens:  len(tokens),
			MaxLength:    params.MaxLength,
			NumBeams:     params.NumBeams,
			MaxNewTokens: plan.MaxNewTokens,
			MinLength:    plan.MinLength,
			ModelName:    info.Name,
			InputHash:    hashText(text),
			InputPreview: s.preview(text),
			Duration:     now.Sub(start),
			CreatedAt:    now,
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	s.log.Info().
		Str("summary_id", out.ID).
		Int("input_tokens", out.InputTokens).
		Int("max_new_tokens", out.MaxNewTokens).
		Int("min_length", out.MinLength).
		Int("num_beams", out.NumBeams).
		Dur("duration", out.Duration).
		Msg("summary generated")

	if err := s.repo.Save(ctx, out); err != nil {
		s.log.Warn().Err(err).Str("summary_id", out.ID).Msg("persist summary history")
	}
	if s.cache != nil && s.sameEpoch(info.Epoch) {
		s.cache.Add(key, out)
	}
	return out, nil
}

// sameEpoch reports whether the model that produced a result is still the
// one serving. Results from a replaced model are returned but not cached.
func (s *service) sameEpoch(epoch uint64) bool {
	_, info, err := s.models.Acquire()
	return err == nil && info.Epoch == epoch
}

func (s *service) Get(ctx context.Context, id string) (Summary, error) {
	result, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Summary{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "summary not found", err, "9e4b2c61-7d3a-4f08-b5e1-2a6c8d0f4b19")
		}
		return Summary{}, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "fetch summary")
	}
	return result, nil
}

func (s *service) ListRecent(ctx context.Context, limit int) ([]Summary, error) {
	results, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "list summaries")
	}
	return results, nil
}

func (s *service) runtimeError(ctx context.Context, op string, err error) error {
	s.log.Error().Err(err).Str("op", op).Msg("model runtime call failed")
	if errors.Is(err, context.DeadlineExceeded) {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeTimeout, fmt.Sprintf("%s timed out", op), err, "5d8e1f2a-0b6c-4e93-a7d4-3c9b2e1f6a85")
	}
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, err.Error(), err, "e2a7c4d9-1f5b-4c80-8e36-7b0d9a4f2c61")
}

func (s *service) preview(text string) string {
	runes := []rune(text)
	if len(runes) > previewLength {
		text = string(runes[:previewLength])
	}
	if s.redactor != nil {
		return s.redactor.SanitizeText(text)
	}
	return text
}

func cacheKey(epoch uint64, text string, params Params) string {
	return fmt.Sprintf("%d:%s:%d:%d", epoch, hashText(text), params.MaxLength, params.NumBeams)
}

func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
