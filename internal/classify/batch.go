package classify

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/spacesedan/insightflow/internal/models"
	"github.com/spacesedan/insightflow/internal/taxonomy"
)

// BatchClassifier drives whole corpora through the worker pool in sequential
// chunks, feeding the taxonomy registry between chunks so labels minted
// early in a corpus are reused later in it.
type BatchClassifier struct {
	pool      *WorkerPool
	registry  *taxonomy.Registry
	extractor *DemographicExtractor
	cfg       Config
}

func NewBatchClassifier(pool *WorkerPool, registry *taxonomy.Registry, cfg Config) (*BatchClassifier, error) {
	if pool == nil {
		return nil, &ConfigurationError{Field: "WorkerPool", Reason: "is required"}
	}
	if registry == nil {
		return nil, &ConfigurationError{Field: "Registry", Reason: "is required"}
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &BatchClassifier{pool: pool, registry: registry, cfg: cfg}, nil
}

// WithDemographicExtractor enables author-demographic extraction during
// AnnotateCorpus.
func (bc *BatchClassifier) WithDemographicExtractor(e *DemographicExtractor) *BatchClassifier {
	bc.extractor = e
	return bc
}

func (bc *BatchClassifier) Registry() *taxonomy.Registry {
	return bc.registry
}

// ClassifyCorpus labels the whole corpus for one kind. Chunks run strictly
// in order; items inside a chunk run concurrently. The output has exactly
// one label per input text, with Unknown in any slot that could not be
// labeled. On cancellation the labels produced so far are returned with the
// remaining slots marked Unknown, alongside the context error.
func (bc *BatchClassifier) ClassifyCorpus(ctx context.Context, texts []string, kind TaskKind) ([]string, error) {
	labels := make([]string, len(texts))
	open := kind.Open()

	for start := 0; start < len(texts); start += bc.cfg.ChunkSize {
		if err := ctx.Err(); err != nil {
			for i := start; i < len(texts); i++ {
				labels[i] = LabelUnknown
			}
			slog.Warn("[BatchClassifier] Context canceled, returning partial corpus",
				slog.String("kind", string(kind)),
				slog.Int("labeled", start),
				slog.Int("total", len(texts)))
			return labels, err
		}

		end := start + bc.cfg.ChunkSize
		if end > len(texts) {
			end = len(texts)
		}

		var existing []string
		if open {
			existing = bc.registry.Labels(string(kind))
		}

		results := bc.pool.ClassifyBatch(ctx, texts[start:end], kind, existing)
		for i, res := range results {
			label := res.Label
			if !res.OK {
				label = LabelUnknown
			}
			if open && label != LabelUnknown {
				if stored, _ := bc.registry.AddIfAbsent(string(kind), label); stored != "" {
					label = stored
				}
			}
			labels[start+i] = label
		}

		slog.Info("[BatchClassifier] Chunk complete",
			slog.String("kind", string(kind)),
			slog.Int("from", start),
			slog.Int("to", end),
			slog.Int("known_labels", bc.registry.Len(string(kind))))
	}

	return labels, nil
}

// Stats summarizes one AnnotateCorpus run.
type Stats struct {
	Processed int
	Skipped   int
	Unknown   int
}

// AnnotateCorpus runs every requested kind over the posts and returns them
// fully annotated, stamped with a shared ingestion time. Posts without
// usable text are skipped (their label slots stay Unknown) and counted.
// When a demographic extractor is configured each post also gets author
// hints, degrading to unknown on failure.
func (bc *BatchClassifier) AnnotateCorpus(ctx context.Context, posts []models.SocialPost, kinds []TaskKind) ([]models.AnnotatedPost, Stats) {
	annotated := make([]models.AnnotatedPost, len(posts))
	texts := make([]string, len(posts))
	ingestedAt := time.Now().UTC()

	var stats Stats
	for i, post := range posts {
		annotated[i] = models.AnnotatedPost{
			AnnotationInput: models.AnnotationInput{SocialPost: post, IngestedAt: ingestedAt},
		}
		texts[i] = post.Text
		if strings.TrimSpace(post.Text) == "" {
			stats.Skipped++
			slog.Warn("[BatchClassifier] Skipping post without text",
				slog.String("content_id", post.ContentID),
				slog.String("error", (&InvalidInputError{Reason: "empty text"}).Error()))
		}
	}
	stats.Processed = len(posts) - stats.Skipped

	for _, kind := range kinds {
		labels, err := bc.ClassifyCorpus(ctx, texts, kind)
		for i, label := range labels {
			if label == LabelUnknown {
				stats.Unknown++
			}
			applyLabel(&annotated[i], kind, label)
		}
		if err != nil {
			slog.Warn("[BatchClassifier] Annotation interrupted",
				slog.String("kind", string(kind)),
				slog.String("error", err.Error()))
			return annotated, stats
		}
	}

	if bc.extractor != nil {
		for i := range annotated {
			if strings.TrimSpace(texts[i]) == "" {
				continue
			}
			if err := ctx.Err(); err != nil {
				return annotated, stats
			}
			hints, err := bc.extractor.Extract(ctx, texts[i])
			if err != nil {
				slog.Warn("[BatchClassifier] Demographic extraction failed",
					slog.String("content_id", annotated[i].ContentID),
					slog.String("error", err.Error()))
				hints = unknownHints()
			}
			annotated[i].AuthorAgeGroup = hints.AgeGroup
			annotated[i].AuthorGender = hints.Gender
			annotated[i].AuthorLocationHint = hints.LocationHint
		}
	}

	slog.Info("[BatchClassifier] Corpus annotated",
		slog.Int("posts", len(posts)),
		slog.Int("processed", stats.Processed),
		slog.Int("skipped", stats.Skipped),
		slog.Int("unknown_labels", stats.Unknown))
	return annotated, stats
}

func applyLabel(post *models.AnnotatedPost, kind TaskKind, label string) {
	switch kind {
	case TaskSentiment:
		post.Sentiment = label
	case TaskTopic:
		post.Topic = label
	case TaskInterest:
		post.Interest = label
	case TaskCommunicationStyle:
		post.CommunicationStyle = label
	case TaskValue:
		post.Value = label
	case TaskEmotion:
		post.Emotion = label
	case TaskLanguage:
		post.Language = label
	}
}
