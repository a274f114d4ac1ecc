// Package sentiment classifies review text as Negative, Neutral or Positive
// using a pre-fitted vectorizer and classifier.
//
// The pipeline is fixed: normalize, vectorize, classify, map the class to a
// label. Artifacts are loaded once at startup; a Pipeline is immutable after
// construction and shared by all request goroutines.
package sentiment

import (
	"context"
	"fmt"

	"sensor-sentiment/config"
	"sensor-sentiment/logging"
	"sensor-sentiment/models"
)

type Pipeline struct {
	normalizer *Normalizer
	vectorizer *Vectorizer
	classifier *Classifier
}

// Prediction is the outcome of one pipeline run.
type Prediction struct {
	Label      models.SentimentLabel
	Class      int
	Normalized string
}

func NewPipeline(n *Normalizer, v *Vectorizer, c *Classifier) *Pipeline {
	return &Pipeline{normalizer: n, vectorizer: v, classifier: c}
}

// Load builds a pipeline from the configured artifacts. Any error means the
// service must not start.
func Load(ctx context.Context, loader *Loader, cfg config.ModelConfig) (*Pipeline, error) {
	stopWords, err := LoadStopWords(cfg.StopwordsPath)
	if err != nil {
		return nil, err
	}

	vectorizer, err := loader.LoadVectorizer(ctx, cfg.VectorizerPath)
	if err != nil {
		return nil, fmt.Errorf("load vectorizer: %w", err)
	}

	classifier, err := loader.LoadClassifier(ctx, cfg.ClassifierPath, vectorizer.Dim())
	if err != nil {
		return nil, fmt.Errorf("load classifier: %w", err)
	}

	log := logging.WithComponent("sentiment")
	log.Info().
		Int("features", vectorizer.Dim()).
		Ints("classes", classifier.Classes()).
		Int("stop_words", len(stopWords)).
		Msg("Sentiment model loaded")

	return NewPipeline(NewNormalizer(stopWords), vectorizer, classifier), nil
}

// Predict runs text through the pipeline. A class outside the label table
// fails with models.ErrUnknownLabel.
func (p *Pipeline) Predict(ctx context.Context, text string) (Prediction, error) {
	normalized := p.normalizer.Normalize(text)
	class := p.classifier.Predict(p.vectorizer.Transform(normalized))

	label, err := models.LabelOf(class)
	if err != nil {
		return Prediction{Class: class, Normalized: normalized}, err
	}

	logging.Ctx(ctx).Debug().
		Str("normalized", normalized).
		Int("class", class).
		Str("label", string(label)).
		Msg("Sentiment predicted")

	return Prediction{Label: label, Class: class, Normalized: normalized}, nil
}
