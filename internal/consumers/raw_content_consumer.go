package consumers

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/spacesedan/insightflow/internal/classify"
	"github.com/spacesedan/insightflow/internal/clients"
	"github.com/spacesedan/insightflow/internal/clients/kafka_client"
	"github.com/spacesedan/insightflow/internal/db"
	"github.com/spacesedan/insightflow/internal/models"
	"github.com/spacesedan/insightflow/internal/utils"
)

var (
	contentBuffer  = utils.NewBatchBuffer[models.SocialPost]()
	contentTracker = utils.NewMessageTracker()
	pipeline       *classify.BatchClassifier
)

// UseAnnotationPipeline wires the classifier that raw-content batches run
// through. Must be set before StartRawContentConsumer.
func UseAnnotationPipeline(bc *classify.BatchClassifier) {
	pipeline = bc
}

// trackedKeywords reads the brand keywords this deployment filters on.
// Empty disables the keyword gate.
func trackedKeywords() []string {
	raw := os.Getenv("TRACKED_KEYWORDS")
	if raw == "" {
		return nil
	}

	var keywords []string
	for _, keyword := range strings.Split(raw, ",") {
		if k := strings.ToLower(strings.TrimSpace(keyword)); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

func matchesKeywords(text string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}

	lower := strings.ToLower(text)
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func languageFilterEnabled() bool {
	return os.Getenv("LANGUAGE_FILTER") == "true"
}

func StartRawContentConsumer(ctx context.Context, consumer *kafka.Consumer) {
	iterator := kafka_client.NewKafkaMessageIterator(ctx, consumer)
	committer := kafka_client.NewCommitHandler(ctx, consumer)
	valkeyClient := clients.GetValkeyClient()
	keywords := trackedKeywords()

	slog.Info("[RawContentConsumer] Listening for messages...")

	ticker := time.NewTicker(utils.BATCH_TIMEOUT)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[RawContentConsumer] Stopping consumer...")
			return
		case <-ticker.C:
			processContentBatch(ctx, committer)
		default:
			msg, err := iterator.Next()
			if err != nil {
				utils.HandleConsumerError(err)
				continue
			}
			if msg == nil {
				continue
			}

			var post models.SocialPost
			if err := utils.DeserializeFromJSON(msg.Value, &post); err != nil {
				continue
			}

			if post.ContentID == "" {
				slog.Warn("[RawContentConsumer] Dropping message without content_id",
					slog.String("source", post.Source))
				continue
			}

			// Already handled in an earlier run; skip straight to the commit.
			if valkeyClient.IsContentProcessed(ctx, post.Source, post.ContentID) {
				slog.Debug("[RawContentConsumer] Skipping duplicate content",
					slog.String("content_id", post.ContentID))
				if err := committer.Commit(msg); err != nil {
					slog.Warn("[RawContentConsumer] Failed to commit offset",
						slog.String("error", err.Error()))
				}
				continue
			}

			if !matchesKeywords(post.Text, keywords) {
				if err := committer.Commit(msg); err != nil {
					slog.Warn("[RawContentConsumer] Failed to commit offset",
						slog.String("error", err.Error()))
				}
				continue
			}

			contentTracker.Track(post.ContentID, msg)
			contentBuffer.Add(post)

			if contentBuffer.Size() >= utils.BATCH_SIZE {
				processContentBatch(ctx, committer)
			}
		}
	}
}

// processContentBatch drains the buffer, annotates the batch, publishes it,
// and commits the offsets behind it. On publish failure nothing is committed
// or marked processed, leaving the batch to redelivery.
func processContentBatch(ctx context.Context, committer *kafka_client.KafkaCommitHandler) {
	batch := contentBuffer.GetAndClear()
	if len(batch) == 0 {
		return
	}
	if pipeline == nil {
		slog.Error("[RawContentConsumer] No annotation pipeline configured, dropping batch",
			slog.Int("batch_size", len(batch)))
		return
	}

	posts := batch
	var gateLabels []string
	gated := languageFilterEnabled()
	if gated {
		posts, gateLabels = applyLanguageGate(ctx, batch)
	}

	if len(posts) > 0 {
		kinds := annotationKinds(!gated)
		annotated, _ := pipeline.AnnotateCorpus(ctx, posts, kinds)
		if gated {
			for i := range annotated {
				annotated[i].Language = gateLabels[i]
			}
		}

		var publishErr error
		for i := 0; i < 3; i++ {
			publishErr = kafka_client.PublishToKafka(ctx, kafka_client.KAFKA_TOPIC_ANALYZED_CONTENT, annotated)
			if publishErr == nil {
				break
			}
			slog.Warn("[RawContentConsumer] Batch publishing failed",
				slog.Int("attempt", i+1),
				slog.String("error", publishErr.Error()))
			time.Sleep(2 * time.Second)
		}
		if publishErr != nil {
			slog.Error("[RawContentConsumer] Giving up on batch, leaving offsets uncommitted",
				slog.Int("batch_size", len(batch)),
				slog.String("error", publishErr.Error()))
			return
		}
	}

	valkeyClient := clients.GetValkeyClient()
	for _, post := range batch {
		if err := valkeyClient.MarkProcessed(ctx, post.Source, post.ContentID); err != nil {
			slog.Warn("[RawContentConsumer] Failed to mark content processed",
				slog.String("content_id", post.ContentID),
				slog.String("error", err.Error()))
		}

		trackedMsg, found := contentTracker.Take(post.ContentID)
		if found {
			if err := committer.Commit(trackedMsg); err != nil {
				slog.Warn("[RawContentConsumer] Failed to commit offset",
					slog.String("error", err.Error()))
			}
		}
	}

	persistTaxonomy(ctx)
}

// applyLanguageGate labels the batch for language and drops posts classified
// as something other than Indonesian. Posts the classifier could not label
// stay in.
func applyLanguageGate(ctx context.Context, batch []models.SocialPost) ([]models.SocialPost, []string) {
	texts := make([]string, len(batch))
	for i, post := range batch {
		texts[i] = post.Text
	}

	labels, err := pipeline.ClassifyCorpus(ctx, texts, classify.TaskLanguage)
	if err != nil {
		slog.Warn("[RawContentConsumer] Language gate interrupted",
			slog.String("error", err.Error()))
	}

	var kept []models.SocialPost
	var keptLabels []string
	for i, label := range labels {
		if label == classify.LanguageOther {
			continue
		}
		kept = append(kept, batch[i])
		keptLabels = append(keptLabels, label)
	}

	slog.Info("[RawContentConsumer] Language gate applied",
		slog.Int("kept", len(kept)),
		slog.Int("dropped", len(batch)-len(kept)))
	return kept, keptLabels
}

// annotationKinds lists the passes a batch runs, with language included only
// when no gate already labeled it.
func annotationKinds(withLanguage bool) []classify.TaskKind {
	kinds := make([]classify.TaskKind, 0, len(classify.AllTasks))
	for _, kind := range classify.AllTasks {
		if kind == classify.TaskLanguage && !withLanguage {
			continue
		}
		kinds = append(kinds, kind)
	}
	return kinds
}

// persistTaxonomy writes the registry's open-kind labels through to Postgres
// so later runs seed from them. Best effort; the registry stays authoritative
// for this run.
func persistTaxonomy(ctx context.Context) {
	for _, kind := range classify.AllTasks {
		if !kind.Open() {
			continue
		}
		labels := pipeline.Registry().Labels(string(kind))
		if len(labels) == 0 {
			continue
		}
		if err := db.StoreTaxonomyLabels(ctx, string(kind), labels); err != nil {
			slog.Warn("[RawContentConsumer] Failed to persist taxonomy labels",
				slog.String("kind", string(kind)),
				slog.String("error", err.Error()))
		}
	}
}
