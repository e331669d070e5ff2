package consumers

import (
	"context"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/spacesedan/insightflow/internal/clients/kafka_client"
	"github.com/spacesedan/insightflow/internal/db"
	"github.com/spacesedan/insightflow/internal/models"
	"github.com/spacesedan/insightflow/internal/utils"
)

var (
	insertBuffer  = utils.NewBatchBuffer[models.AnnotatedPost]()
	insertTracker = utils.NewMessageTracker()
)

func StartAnnotatedResultsConsumer(ctx context.Context, consumer *kafka.Consumer) {
	iterator := kafka_client.NewKafkaMessageIterator(ctx, consumer)
	committer := kafka_client.NewCommitHandler(ctx, consumer)

	slog.Info("[AnnotatedResultsConsumer] Listening for messages...")

	ticker := time.NewTicker(utils.BATCH_TIMEOUT)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[AnnotatedResultsConsumer] Stopping consumer...")
			return
		case <-ticker.C:
			flushAnnotatedPosts(ctx, committer)
		default:
			msg, err := iterator.Next()
			if err != nil {
				utils.HandleConsumerError(err)
				continue
			}
			if msg == nil {
				continue
			}

			var annotated []models.AnnotatedPost
			if err := utils.DeserializeFromJSON(msg.Value, &annotated); err != nil {
				utils.HandleConsumerError(err)
				continue
			}

			for _, post := range annotated {
				insertTracker.Track(post.ContentID, msg)
				insertBuffer.Add(post)
				if insertBuffer.Size() >= utils.DYNAMODB_BATCH_SIZE {
					flushAnnotatedPosts(ctx, committer)
				}
			}
		}
	}
}

// flushAnnotatedPosts drains the buffer into DynamoDB and commits the offsets
// behind the inserted posts. On insert failure offsets stay uncommitted.
func flushAnnotatedPosts(ctx context.Context, committer *kafka_client.KafkaCommitHandler) {
	batch := insertBuffer.GetAndClear()
	if len(batch) == 0 {
		return
	}

	var insertErr error
	for i := 0; i < 3; i++ {
		insertErr = db.BatchInsertAnnotatedPosts(ctx, batch)
		if insertErr == nil {
			break
		}
		slog.Error("[AnnotatedResultsConsumer] Failed to write posts to DB",
			slog.String("error", insertErr.Error()),
			slog.Int("attempt", i+1))
	}
	if insertErr != nil {
		slog.Error("[AnnotatedResultsConsumer] Giving up on batch, leaving offsets uncommitted",
			slog.Int("batch_size", len(batch)))
		return
	}

	for _, post := range batch {
		msg, found := insertTracker.Take(post.ContentID)
		if found {
			if err := committer.Commit(msg); err != nil {
				slog.Warn("[AnnotatedResultsConsumer] Failed to commit offset",
					slog.String("error", err.Error()))
			}
		}
	}
}
