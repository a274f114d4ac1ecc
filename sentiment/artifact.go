package sentiment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/goccy/go-json"
)

// ErrArtifact marks a missing or malformed model artifact.
var ErrArtifact = errors.New("invalid model artifact")

// VectorizerArtifact is the JSON export of a fitted count or tf-idf vectorizer.
type VectorizerArtifact struct {
	Kind           string         `json:"kind"`
	Vocabulary     map[string]int `json:"vocabulary"`
	IDF            []float64      `json:"idf,omitempty"`
	Norm           string         `json:"norm,omitempty"`
	SublinearTF    bool           `json:"sublinear_tf,omitempty"`
	Binary         bool           `json:"binary,omitempty"`
	NgramRange     []int          `json:"ngram_range,omitempty"`
	MinTokenLength *int           `json:"min_token_length,omitempty"`
}

// ClassifierArtifact is the JSON export of a fitted linear or naive Bayes model.
type ClassifierArtifact struct {
	Kind           string      `json:"kind"`
	Classes        []int       `json:"classes"`
	Coef           [][]float64 `json:"coef,omitempty"`
	Intercept      []float64   `json:"intercept,omitempty"`
	ClassLogPrior  []float64   `json:"class_log_prior,omitempty"`
	FeatureLogProb [][]float64 `json:"feature_log_prob,omitempty"`
}

// ObjectGetter is the subset of the S3 API used to fetch artifacts.
type ObjectGetter interface {
	GetObjectWithContext(ctx aws.Context, input *s3.GetObjectInput, opts ...request.Option) (*s3.GetObjectOutput, error)
}

// NewS3Client builds an S3 client for the region. No request is made until
// an s3:// artifact is opened.
func NewS3Client(region string) (*s3.S3, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}
	return s3.New(sess), nil
}

// Loader reads artifacts from the local filesystem or from s3://bucket/key.
type Loader struct {
	s3 ObjectGetter
}

// NewLoader takes the S3 client used for s3:// URIs; it may be nil when only
// local paths are used.
func NewLoader(s3Client ObjectGetter) *Loader {
	return &Loader{s3: s3Client}
}

// Open returns a reader for uri.
func (l *Loader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	if uri == "" {
		return nil, fmt.Errorf("%w: empty artifact path", ErrArtifact)
	}
	if !strings.HasPrefix(uri, "s3://") {
		f, err := os.Open(uri)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrArtifact, err)
		}
		return f, nil
	}

	if l.s3 == nil {
		return nil, fmt.Errorf("%w: no S3 client configured for %s", ErrArtifact, uri)
	}
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrArtifact, uri, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return nil, fmt.Errorf("%w: %s must look like s3://bucket/key", ErrArtifact, uri)
	}

	out, err := l.s3.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(u.Host),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to download %s: %v", ErrArtifact, uri, err)
	}
	return out.Body, nil
}

func (l *Loader) decode(ctx context.Context, uri string, v interface{}) error {
	rc, err := l.Open(ctx, uri)
	if err != nil {
		return err
	}
	defer rc.Close()

	if err := json.NewDecoder(rc).Decode(v); err != nil {
		return fmt.Errorf("%w: failed to parse %s: %v", ErrArtifact, uri, err)
	}
	return nil
}

// LoadVectorizer reads and validates a vectorizer artifact.
func (l *Loader) LoadVectorizer(ctx context.Context, uri string) (*Vectorizer, error) {
	var a VectorizerArtifact
	if err := l.decode(ctx, uri, &a); err != nil {
		return nil, err
	}
	return NewVectorizer(a)
}

// LoadClassifier reads a classifier artifact and checks it against dim.
func (l *Loader) LoadClassifier(ctx context.Context, uri string, dim int) (*Classifier, error) {
	var a ClassifierArtifact
	if err := l.decode(ctx, uri, &a); err != nil {
		return nil, err
	}
	return NewClassifier(a, dim)
}
