package models

import (
	"errors"
	"fmt"
)

type SentimentLabel string

const (
	Negative SentimentLabel = "Negative"
	Neutral  SentimentLabel = "Neutral"
	Positive SentimentLabel = "Positive"
)

// ErrUnknownLabel is returned for classifier outputs outside {1, 2, 3}.
var ErrUnknownLabel = errors.New("unknown sentiment class")

var sentimentLabels = map[int]SentimentLabel{
	1: Negative,
	2: Neutral,
	3: Positive,
}

// LabelOf maps a classifier class to its label.
func LabelOf(class int) (SentimentLabel, error) {
	label, ok := sentimentLabels[class]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownLabel, class)
	}
	return label, nil
}

// PredictRequest is the JSON body of POST /predict_sentiment.
type PredictRequest struct {
	Text *string `json:"text" binding:"required"`
}

type PredictResponse struct {
	Sentiment SentimentLabel `json:"sentiment"`
}
