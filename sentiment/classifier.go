package sentiment

import (
	"fmt"
	"math"
)

// Classifier is a fitted linear decision function: the predicted class is
// argmax_k(intercept[k] + coef[k]·x). Multinomial naive Bayes reduces to the
// same form with class_log_prior as intercept and feature_log_prob as coef.
type Classifier struct {
	classes   []int
	coef      [][]float64
	intercept []float64
}

// NewClassifier validates a classifier artifact against the feature dimension.
func NewClassifier(a ClassifierArtifact, dim int) (*Classifier, error) {
	if len(a.Classes) < 2 {
		return nil, fmt.Errorf("%w: classifier needs at least two classes, got %d", ErrArtifact, len(a.Classes))
	}

	var coef [][]float64
	var intercept []float64
	switch a.Kind {
	case "linear":
		coef, intercept = a.Coef, a.Intercept
	case "multinomial_nb":
		coef, intercept = a.FeatureLogProb, a.ClassLogPrior
	default:
		return nil, fmt.Errorf("%w: unknown classifier kind %q", ErrArtifact, a.Kind)
	}

	rows := len(a.Classes)
	// Binary linear models carry a single row scoring the second class.
	if a.Kind == "linear" && len(a.Classes) == 2 && len(coef) == 1 {
		rows = 1
	}
	if len(coef) != rows || len(intercept) != rows {
		return nil, fmt.Errorf("%w: expected %d weight rows and intercepts, got %d and %d",
			ErrArtifact, rows, len(coef), len(intercept))
	}
	for k, row := range coef {
		if len(row) != dim {
			return nil, fmt.Errorf("%w: weight row %d has %d features, vectorizer has %d", ErrArtifact, k, len(row), dim)
		}
	}

	return &Classifier{classes: a.Classes, coef: coef, intercept: intercept}, nil
}

// Classes returns the class values in score order.
func (c *Classifier) Classes() []int {
	return c.classes
}

// DecisionFunction returns one score per weight row.
func (c *Classifier) DecisionFunction(x Vector) []float64 {
	scores := make([]float64, len(c.coef))
	for k, row := range c.coef {
		s := c.intercept[k]
		for i, idx := range x.Indices {
			s += row[idx] * x.Values[i]
		}
		scores[k] = s
	}
	return scores
}

// Predict returns the winning class value. Ties go to the earlier class.
func (c *Classifier) Predict(x Vector) int {
	scores := c.DecisionFunction(x)
	if len(scores) == 1 {
		if scores[0] > 0 {
			return c.classes[1]
		}
		return c.classes[0]
	}

	best, bestScore := 0, math.Inf(-1)
	for k, s := range scores {
		if s > bestScore {
			best, bestScore = k, s
		}
	}
	return c.classes[best]
}
