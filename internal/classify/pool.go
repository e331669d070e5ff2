package classify

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Result is the outcome of classifying one text. OK=false means every
// attempt failed and Label carries the Unknown sentinel; Err then holds the
// last failure for logging. One failed item never fails its batch.
type Result struct {
	Label string
	OK    bool
	Err   error
}

// WorkerPool fans classification calls out over a bounded set of workers
// while keeping results index-aligned with their inputs.
type WorkerPool struct {
	classifier Classifier
	prescorer  Prescorer
	cfg        Config
}

func NewWorkerPool(classifier Classifier, cfg Config) (*WorkerPool, error) {
	if classifier == nil {
		return nil, &ConfigurationError{Field: "Classifier", Reason: "is required"}
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &WorkerPool{classifier: classifier, cfg: cfg}, nil
}

// WithPrescorer installs a local sentiment fast path. Texts it resolves
// never reach the provider.
func (p *WorkerPool) WithPrescorer(ps Prescorer) *WorkerPool {
	p.prescorer = ps
	return p
}

// ClassifyBatch labels every text for one kind. Slot i of the returned slice
// always corresponds to texts[i], and the slice length always equals
// len(texts). At most cfg.Workers classification calls run at once.
func (p *WorkerPool) ClassifyBatch(ctx context.Context, texts []string, kind TaskKind, existing []string) []Result {
	results := make([]Result, len(texts))
	sem := make(chan struct{}, p.cfg.Workers)

	var wg sync.WaitGroup
	for i, text := range texts {
		wg.Add(1)
		go func(idx int, text string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				results[idx] = Result{Label: LabelUnknown, Err: ctx.Err()}
				return
			}
			defer func() { <-sem }()

			results[idx] = p.classifyOne(ctx, text, kind, existing)
		}(i, text)
	}
	wg.Wait()

	return results
}

func (p *WorkerPool) classifyOne(ctx context.Context, text string, kind TaskKind, existing []string) Result {
	if err := ctx.Err(); err != nil {
		return Result{Label: LabelUnknown, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return Result{Label: LabelUnknown, Err: &InvalidInputError{Reason: "empty text"}}
	}

	if kind == TaskSentiment && p.prescorer != nil {
		if label, ok := p.prescorer.Prescore(text); ok {
			return Result{Label: label, OK: true}
		}
	}

	var lastErr error
	for attempt := 1; attempt <= p.cfg.MaxAttempts; attempt++ {
		raw, err := p.classifier.Classify(ctx, text, kind, existing)
		if err == nil {
			if label, ok := kind.CanonicalLabel(raw); ok {
				return Result{Label: label, OK: true}
			}
			err = ErrEmptyResponse
		}
		lastErr = err

		if attempt == p.cfg.MaxAttempts {
			break
		}
		slog.Warn("[WorkerPool] Classification attempt failed, retrying...",
			slog.String("kind", string(kind)),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			return Result{Label: LabelUnknown, Err: ctx.Err()}
		case <-time.After(p.cfg.Backoff):
		}
	}

	slog.Warn("[WorkerPool] Classification failed after all attempts, marking Unknown",
		slog.String("kind", string(kind)),
		slog.Int("attempts", p.cfg.MaxAttempts),
		slog.String("error", lastErr.Error()))
	return Result{Label: LabelUnknown, Err: lastErr}
}
