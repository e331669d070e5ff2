package sentiment

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/spacesedan/insightflow/internal/classify"
)

const defaultSentimentModelPath = "./internal/transformers/models/sentiment.onnx"

// LocalAnalyzer runs an ONNX sentiment model in-process through hugot. It is
// a Prescorer: it decides the lookups it can read a verdict from and reports
// everything else as undecided.
type LocalAnalyzer struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
}

// NewLocalAnalyzer initializes the ONNX runtime session and the
// classification pipeline. The model path comes from SENTIMENT_MODEL_PATH.
func NewLocalAnalyzer() (*LocalAnalyzer, error) {
	modelPath := os.Getenv("SENTIMENT_MODEL_PATH")
	if modelPath == "" {
		modelPath = defaultSentimentModelPath
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("[LocalAnalyzer] model not found at %s: %w", modelPath, err)
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("[LocalAnalyzer] failed to initialize Hugot session: %w", err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "sentimentClassificationPipeline",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("[LocalAnalyzer] failed to initialize pipeline: %w", err)
	}

	return &LocalAnalyzer{session: session, pipeline: pipeline}, nil
}

func (a *LocalAnalyzer) Prescore(text string) (string, bool) {
	output, err := a.pipeline.RunPipeline([]string{text})
	if err != nil {
		slog.Warn("[LocalAnalyzer] Pipeline run failed", slog.String("error", err.Error()))
		return "", false
	}
	if len(output.ClassificationOutputs) == 0 || len(output.ClassificationOutputs[0]) == 0 {
		return "", false
	}

	// Covers both human-readable label sets and the LABEL_n convention of
	// common sentiment checkpoints.
	switch strings.ToUpper(output.ClassificationOutputs[0][0].Label) {
	case "POSITIVE", "LABEL_2":
		return classify.SentimentPositive, true
	case "NEGATIVE", "LABEL_0":
		return classify.SentimentNegative, true
	case "NEUTRAL", "LABEL_1":
		return classify.SentimentNeutral, true
	default:
		return "", false
	}
}

func (a *LocalAnalyzer) Close() error {
	return a.session.Destroy()
}
