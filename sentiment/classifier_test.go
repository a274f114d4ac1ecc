package sentiment

import (
	"errors"
	"math"
	"testing"
)

func vec(dim int, pairs ...float64) Vector {
	v := Vector{Dim: dim}
	for i := 0; i+1 < len(pairs); i += 2 {
		v.Indices = append(v.Indices, int(pairs[i]))
		v.Values = append(v.Values, pairs[i+1])
	}
	return v
}

func TestLinearClassifierArgmax(t *testing.T) {
	c, err := NewClassifier(ClassifierArtifact{
		Kind:    "linear",
		Classes: []int{1, 2, 3},
		Coef: [][]float64{
			{2, 0, 0},
			{0, 2, 0},
			{0, 0, 2},
		},
		Intercept: []float64{0, 0.5, 0},
	}, 3)
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}

	tests := []struct {
		x    Vector
		want int
	}{
		{vec(3, 0, 1), 1},
		{vec(3, 2, 1), 3},
		{vec(3), 2},
		{vec(3, 0, 0.2), 2},
	}
	for _, tt := range tests {
		if got := c.Predict(tt.x); got != tt.want {
			t.Errorf("Predict(%+v) = %d, want %d (scores %v)", tt.x, got, tt.want, c.DecisionFunction(tt.x))
		}
	}
}

func TestClassifierTieGoesToFirstClass(t *testing.T) {
	c, err := NewClassifier(ClassifierArtifact{
		Kind:      "linear",
		Classes:   []int{1, 2, 3},
		Coef:      [][]float64{{0}, {0}, {0}},
		Intercept: []float64{0, 0, 0},
	}, 1)
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	if got := c.Predict(vec(1)); got != 1 {
		t.Errorf("Predict = %d, want 1", got)
	}
}

func TestBinaryLinearClassifier(t *testing.T) {
	c, err := NewClassifier(ClassifierArtifact{
		Kind:      "linear",
		Classes:   []int{1, 3},
		Coef:      [][]float64{{1, -1}},
		Intercept: []float64{0},
	}, 2)
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	if got := c.Predict(vec(2, 0, 1)); got != 3 {
		t.Errorf("positive score: Predict = %d, want 3", got)
	}
	if got := c.Predict(vec(2, 1, 1)); got != 1 {
		t.Errorf("negative score: Predict = %d, want 1", got)
	}
}

func TestMultinomialNB(t *testing.T) {
	c, err := NewClassifier(ClassifierArtifact{
		Kind:          "multinomial_nb",
		Classes:       []int{1, 2, 3},
		ClassLogPrior: []float64{math.Log(0.3), math.Log(0.4), math.Log(0.3)},
		FeatureLogProb: [][]float64{
			{math.Log(0.8), math.Log(0.1), math.Log(0.1)},
			{math.Log(0.2), math.Log(0.2), math.Log(0.6)},
			{math.Log(0.1), math.Log(0.8), math.Log(0.1)},
		},
	}, 3)
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	if got := c.Predict(vec(3, 1, 3)); got != 3 {
		t.Errorf("Predict = %d, want 3", got)
	}
	if got := c.Predict(vec(3)); got != 2 {
		t.Errorf("empty doc Predict = %d, want prior argmax 2", got)
	}
}

func TestClassifierMayReturnUnmappedClass(t *testing.T) {
	c, err := NewClassifier(ClassifierArtifact{
		Kind:      "linear",
		Classes:   []int{1, 2, 7},
		Coef:      [][]float64{{0}, {0}, {1}},
		Intercept: []float64{0, 0, 0},
	}, 1)
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	if got := c.Predict(vec(1, 0, 1)); got != 7 {
		t.Errorf("Predict = %d, want 7", got)
	}
}

func TestNewClassifierRejectsBadArtifacts(t *testing.T) {
	tests := []struct {
		name string
		a    ClassifierArtifact
		dim  int
	}{
		{"one class", ClassifierArtifact{Kind: "linear", Classes: []int{1}, Coef: [][]float64{{1}}, Intercept: []float64{0}}, 1},
		{"unknown kind", ClassifierArtifact{Kind: "svm_rbf", Classes: []int{1, 2}}, 1},
		{"row count", ClassifierArtifact{Kind: "linear", Classes: []int{1, 2, 3}, Coef: [][]float64{{1}, {1}}, Intercept: []float64{0, 0}}, 1},
		{"intercept count", ClassifierArtifact{Kind: "linear", Classes: []int{1, 2, 3}, Coef: [][]float64{{1}, {1}, {1}}, Intercept: []float64{0}}, 1},
		{"feature width", ClassifierArtifact{Kind: "linear", Classes: []int{1, 2}, Coef: [][]float64{{1, 2}, {1, 2}}, Intercept: []float64{0, 0}}, 3},
		{"nb missing priors", ClassifierArtifact{Kind: "multinomial_nb", Classes: []int{1, 2}, FeatureLogProb: [][]float64{{0}, {0}}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewClassifier(tt.a, tt.dim); !errors.Is(err, ErrArtifact) {
				t.Errorf("err = %v, want ErrArtifact", err)
			}
		})
	}
}
