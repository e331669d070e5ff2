package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spacesedan/insightflow/config"
	"github.com/spacesedan/insightflow/internal/classify"
	"github.com/spacesedan/insightflow/internal/clients"
	"github.com/spacesedan/insightflow/internal/clients/kafka_client"
	"github.com/spacesedan/insightflow/internal/consumers"
	"github.com/spacesedan/insightflow/internal/db"
	"github.com/spacesedan/insightflow/internal/logging"
	"github.com/spacesedan/insightflow/internal/sentiment"
	"github.com/spacesedan/insightflow/internal/taxonomy"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stopChan
		slog.Warn("[Main] Shutdown signal received")
		cancel()
	}()

	cfg := kafka_client.GetKafkaConfig()
	for {
		err := kafka_client.InitKafkaProducer(cfg)
		if err == nil {
			break
		}

		slog.Warn("Kafka init failed, retrying...", slog.String("error", err.Error()))
		time.Sleep(5 * time.Second)
	}
	defer kafka_client.CloseKafkaProducer()

	clients.InitValkey()
	defer clients.CloseValkey()

	db.InitDynamoDB()

	registry := taxonomy.NewRegistry()
	if err := db.InitDB(); err != nil {
		slog.Warn("[Main] Postgres unavailable, starting with an empty taxonomy",
			slog.String("error", err.Error()))
	} else {
		defer db.CloseDB()
		seedRegistry(ctx, registry)
	}

	prescorer, cleanup := buildPrescorer()
	if cleanup != nil {
		defer cleanup()
	}

	pipeline, err := buildPipeline(registry, prescorer)
	if err != nil {
		slog.Error("[Main] Failed to build annotation pipeline",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	consumers.UseAnnotationPipeline(pipeline)

	kafka_client.RegisterConsumer(kafka_client.KAFKA_TOPIC_RAW_CONTENT, consumers.StartRawContentConsumer)
	kafka_client.RegisterConsumer(kafka_client.KAFKA_TOPIC_ANALYZED_CONTENT, consumers.StartAnnotatedResultsConsumer)

	var wg sync.WaitGroup
	for _, topic := range []string{kafka_client.KAFKA_TOPIC_RAW_CONTENT, kafka_client.KAFKA_TOPIC_ANALYZED_CONTENT} {
		wg.Add(1)
		go func(topic string) {
			defer wg.Done()
			if err := kafka_client.StartConsumer(ctx, kafka_client.ConfigForTopic(topic)); err != nil {
				slog.Error("[Main] Failed to start consumer",
					slog.String("topic", topic),
					slog.String("error", err.Error()))
			}
		}(topic)
	}
	wg.Wait()
}

// seedRegistry restores the open-kind label alphabets persisted by earlier
// runs.
func seedRegistry(ctx context.Context, registry *taxonomy.Registry) {
	seedCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for _, kind := range classify.AllTasks {
		if !kind.Open() {
			continue
		}
		labels, err := db.GetRecentTaxonomyLabels(seedCtx, string(kind))
		if err != nil {
			slog.Warn("[Main] Failed to load taxonomy labels",
				slog.String("kind", string(kind)),
				slog.String("error", err.Error()))
			continue
		}
		registry.Seed(string(kind), labels)
		slog.Info("[Main] Taxonomy registry seeded",
			slog.String("kind", string(kind)),
			slog.Int("labels", len(labels)))
	}
}

// buildPrescorer picks the sentiment fast path. The cleanup func is non-nil
// when a model session needs closing at shutdown.
func buildPrescorer() (classify.Prescorer, func()) {
	switch os.Getenv("SENTIMENT_PRESCORER") {
	case "none":
		return nil, nil
	case "local":
		analyzer, err := sentiment.NewLocalAnalyzer()
		if err != nil {
			slog.Warn("[Main] Local sentiment model unavailable, falling back to VADER",
				slog.String("error", err.Error()))
			return sentiment.VaderPrescorer{}, nil
		}
		return analyzer, func() {
			if err := analyzer.Close(); err != nil {
				slog.Warn("[Main] Failed to close sentiment model",
					slog.String("error", err.Error()))
			}
		}
	default:
		return sentiment.VaderPrescorer{}, nil
	}
}

func buildPipeline(registry *taxonomy.Registry, prescorer classify.Prescorer) (*classify.BatchClassifier, error) {
	cfg := classify.ConfigFromEnv()

	var classifier classify.Classifier
	provider := os.Getenv("CLASSIFIER_PROVIDER")
	switch provider {
	case "anthropic":
		classifier = classify.NewAnthropicClassifier()
	default:
		provider = "openai"
		classifier = classify.NewOpenAIClassifier()
	}
	slog.Info("[Main] Classification provider selected", slog.String("provider", provider))

	pool, err := classify.NewWorkerPool(classifier, cfg)
	if err != nil {
		return nil, err
	}
	if prescorer != nil {
		pool.WithPrescorer(prescorer)
	}

	pipeline, err := classify.NewBatchClassifier(pool, registry, cfg)
	if err != nil {
		return nil, err
	}

	if os.Getenv("EXTRACT_DEMOGRAPHICS") == "true" {
		pipeline = pipeline.WithDemographicExtractor(classify.NewDemographicExtractor())
	}

	return pipeline, nil
}
