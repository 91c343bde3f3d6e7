// Package screening orchestrates one image screening: build the prompt,
// invoke the vision model, parse the reply into a verdict, reconcile the
// recommendation, and push the result to the CRM when a contact is known.
package screening

import (
	"context"
	"fmt"
	"time"

	"github.com/findmymarket/screening-agent/internal/cache"
	"github.com/findmymarket/screening-agent/internal/crm"
	"github.com/findmymarket/screening-agent/internal/llm"
	"github.com/findmymarket/screening-agent/internal/models"
	"github.com/findmymarket/screening-agent/internal/prompt"
	"github.com/findmymarket/screening-agent/internal/verdict"
	"github.com/rs/zerolog"
)

type Options struct {
	ModelID     string
	MaxTokens   int
	Temperature float64
	Retry       bool
}

type Screener struct {
	llmClient llm.VisionClient
	syncer    crm.ContactSyncer   // nil disables CRM sync
	verdicts  *cache.VerdictCache // nil disables caching
	opts      Options
	logger    *zerolog.Logger
}

func NewScreener(
	llmClient llm.VisionClient,
	syncer crm.ContactSyncer,
	verdicts *cache.VerdictCache,
	opts Options,
	logger *zerolog.Logger,
) *Screener {
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 1500
	}

	return &Screener{
		llmClient: llmClient,
		syncer:    syncer,
		verdicts:  verdicts,
		opts:      opts,
		logger:    logger,
	}
}

// Screen runs the full pipeline for one request. An error is returned only
// when no classification result exists; once the model has answered, parse
// and sync failures degrade into the result instead.
func (s *Screener) Screen(ctx context.Context, sc models.ScreeningContext) (models.ScreeningResult, error) {
	now := time.Now()

	instruction := prompt.Build(sc.Subject, sc.ImageRole)

	v, parsed, cached, err := s.classify(ctx, sc, instruction)
	if err != nil {
		return models.ScreeningResult{}, err
	}

	result := models.ScreeningResult{
		Verdict:       v,
		Subject:       sc.Subject.Description(),
		Category:      sc.Subject.CategoryKey,
		CategoryLabel: sc.Subject.CategoryLabel,
		ImageRole:     sc.ImageRole,
		ValidatedAt:   time.Now().UTC(),
		ModelUsed:     s.opts.ModelID,
		Cached:        cached,
	}

	// The fallback verdict is already review-routed; reconciling it would
	// turn its zero score into a reject.
	if parsed {
		if rec, overridden := verdict.Reconcile(v); overridden {
			s.logger.Warn().
				Str("request_id", sc.RequestID).
				Str("model_recommendation", string(v.Recommendation)).
				Str("derived_recommendation", string(rec)).
				Float64("relevance_score", v.RelevanceScore).
				Int("red_flags", len(v.RedFlags)).
				Msg("model recommendation inconsistent with its own score, overriding")
			result.ModelRecommendation = v.Recommendation
			result.Recommendation = rec
		}
	}

	s.sync(ctx, sc, &result)

	s.logger.Info().
		Str("request_id", sc.RequestID).
		Str("subject", result.Subject).
		Str("recommendation", string(result.Recommendation)).
		Float64("relevance_score", result.RelevanceScore).
		Bool("cached", cached).
		Dur("duration", time.Since(now)).
		Msg("screening complete")

	return result, nil
}

// classify returns the verdict for the image, from cache when possible.
// parsed is false when the model answered but the reply was unusable and
// the fallback verdict was substituted.
func (s *Screener) classify(ctx context.Context, sc models.ScreeningContext, instruction string) (v models.Verdict, parsed bool, cached bool, err error) {
	var key string
	if s.verdicts != nil {
		key = cache.Key(sc.ImageData, sc.Subject.Description(), sc.ImageRole)
		if hit, ok := s.verdicts.Get(ctx, key); ok {
			s.logger.Debug().Str("request_id", sc.RequestID).Msg("verdict cache hit")
			return *hit, true, true, nil
		}
	}

	request := llm.VisionRequest{
		Prompt:      instruction,
		ImageData:   sc.ImageData,
		MediaType:   sc.MediaType,
		MaxTokens:   s.opts.MaxTokens,
		Temperature: s.opts.Temperature,
	}

	var resp *llm.VisionResponse
	if s.opts.Retry {
		resp, err = s.llmClient.InvokeModelWithRetry(ctx, request)
	} else {
		resp, err = s.llmClient.InvokeModel(ctx, request)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("request_id", sc.RequestID).Msg("vision model call failed")
		return models.Verdict{}, false, false, fmt.Errorf("classification failed: %w", err)
	}

	v, parsed = verdict.Parse(resp.Content)
	if !parsed {
		s.logger.Error().
			Str("request_id", sc.RequestID).
			Str("content", resp.Content).
			Msg("failed to parse model reply, substituting fallback verdict")
		return v, false, false, nil
	}

	if s.verdicts != nil {
		s.verdicts.Set(ctx, key, v)
	}

	return v, true, false, nil
}

// sync pushes the result to the CRM when a contact is identified and a
// syncer is configured. Failures become a flag on the result, never an
// error: the verdict must still reach the caller.
func (s *Screener) sync(ctx context.Context, sc models.ScreeningContext, result *models.ScreeningResult) {
	if s.syncer == nil || (sc.ContactID == "" && sc.ContactEmail == "") {
		return
	}

	err := s.syncer.SyncResult(ctx, sc.ContactID, sc.ContactEmail, *result)
	synced := err == nil
	result.CRMSynced = &synced
	if err != nil {
		result.CRMError = err.Error()
		s.logger.Error().Err(err).Str("request_id", sc.RequestID).Msg("CRM sync failed")
		return
	}

	s.logger.Info().
		Str("request_id", sc.RequestID).
		Str("contact_id", sc.ContactID).
		Msg("CRM contact updated")
}
