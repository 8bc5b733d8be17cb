// Package session runs chat turns against a session store and an inference backend.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/motivate/internal/core"
	"github.com/sandevgo/motivate/pkg/log"
)

// Turn outcomes reported to the Recorder.
const (
	OutcomeOK             = "ok"
	OutcomeFallback       = "fallback"
	OutcomeStoreError     = "store_error"
	OutcomeInferenceError = "inference_error"
	OutcomeCanceled       = "canceled"
)

// Recorder receives per-turn measurements. observability.Metrics satisfies it.
type Recorder interface {
	ObserveTurn(outcome string)
	ObserveInference(d time.Duration)
	ObserveTranscript(turns int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveTurn(string)             {}
func (nopRecorder) ObserveInference(time.Duration) {}
func (nopRecorder) ObserveTranscript(int)          {}

type Option func(*Coordinator)

// WithKeyLock serializes turns that share a session key so that overlapping turns
// cannot overwrite each other's save.
func WithKeyLock() Option {
	return func(c *Coordinator) {
		c.locks = newKeyLocks()
	}
}

func WithRetention(limit int) Option {
	return func(c *Coordinator) {
		if limit > 0 {
			c.retention = limit
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(c *Coordinator) {
		if r != nil {
			c.recorder = r
		}
	}
}

// Coordinator executes one load, infer, save cycle per call. It keeps no transcript
// between calls.
type Coordinator struct {
	store     core.SessionStore
	ai        core.Inference
	retention int
	locks     *keyLocks
	recorder  Recorder
}

func NewCoordinator(store core.SessionStore, ai core.Inference, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:     store,
		ai:        ai,
		retention: core.RetentionLimit,
		recorder:  nopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HandleTurn appends message to the session's transcript, asks the inference backend
// for a reply, persists the trimmed transcript and returns the reply. On any error
// the stored transcript is left as it was.
func (c *Coordinator) HandleTurn(ctx context.Context, key, message string) (string, error) {
	ctx = log.WithFields(ctx, map[string]string{"session": key})
	logger := log.FromCtx(ctx)

	if c.locks != nil {
		unlock, err := c.locks.lock(ctx, key)
		if err != nil {
			c.recorder.ObserveTurn(OutcomeCanceled)
			return "", fmt.Errorf("failed to acquire session: %w", err)
		}
		defer unlock()
	}

	history, err := c.store.Load(ctx, key)
	if err != nil {
		c.recorder.ObserveTurn(OutcomeStoreError)
		return "", fmt.Errorf("failed to load session: %w", err)
	}

	history = append(history, core.ChatTurn{Role: core.RoleUser, Content: message})

	start := time.Now()
	result, err := c.ai.Generate(ctx, history)
	c.recorder.ObserveInference(time.Since(start))
	if err != nil {
		outcome := OutcomeInferenceError
		if ctx.Err() != nil {
			outcome = OutcomeCanceled
		}
		c.recorder.ObserveTurn(outcome)
		logger.Error().Err(err).Int("messages", len(history)).Msg("inference call failed")
		return "", fmt.Errorf("%w: %w", core.ErrInferenceFailed, err)
	}

	reply, ok := ExtractReply(result)
	if !ok {
		logger.Warn().Msg("inference result had no reply field, using fallback")
	}

	history = append(history, core.ChatTurn{Role: core.RoleAssistant, Content: reply})
	trimmed := history.Trim(c.retention)

	if err := c.store.Save(ctx, key, trimmed); err != nil {
		c.recorder.ObserveTurn(OutcomeStoreError)
		return "", fmt.Errorf("failed to save session: %w", err)
	}

	if ok {
		c.recorder.ObserveTurn(OutcomeOK)
	} else {
		c.recorder.ObserveTurn(OutcomeFallback)
	}
	c.recorder.ObserveTranscript(len(trimmed))

	logger.Debug().
		Int("history", len(history)).
		Int("stored", len(trimmed)).
		Int("reply_len", len(reply)).
		Msg("turn complete")

	return reply, nil
}

// History returns the stored transcript for key without changing it.
func (c *Coordinator) History(ctx context.Context, key string) (core.Transcript, error) {
	history, err := c.store.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return history, nil
}
