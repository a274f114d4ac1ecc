package sentiment

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
)

type fakeS3 struct {
	objects map[string]string
	calls   []string
}

func (f *fakeS3) GetObjectWithContext(_ aws.Context, in *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	key := aws.StringValue(in.Bucket) + "/" + aws.StringValue(in.Key)
	f.calls = append(f.calls, key)
	body, ok := f.objects[key]
	if !ok {
		return nil, errors.New("NoSuchKey: The specified key does not exist.")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func readTestdata(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(b)
}

func TestLoaderLocalFiles(t *testing.T) {
	l := NewLoader(nil)
	ctx := context.Background()

	v, err := l.LoadVectorizer(ctx, "testdata/vectorizer.json")
	if err != nil {
		t.Fatalf("LoadVectorizer: %v", err)
	}
	if v.Dim() != 13 {
		t.Errorf("Dim = %d, want 13", v.Dim())
	}
	c, err := l.LoadClassifier(ctx, "testdata/classifier.json", v.Dim())
	if err != nil {
		t.Fatalf("LoadClassifier: %v", err)
	}
	if got := c.Classes(); len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("Classes = %v", got)
	}
}

func TestLoaderS3(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{
		"models/sentiment/vectorizer.json": readTestdata(t, "vectorizer.json"),
		"models/sentiment/classifier.json": readTestdata(t, "classifier.json"),
	}}
	l := NewLoader(fake)
	ctx := context.Background()

	v, err := l.LoadVectorizer(ctx, "s3://models/sentiment/vectorizer.json")
	if err != nil {
		t.Fatalf("LoadVectorizer: %v", err)
	}
	if _, err := l.LoadClassifier(ctx, "s3://models/sentiment/classifier.json", v.Dim()); err != nil {
		t.Fatalf("LoadClassifier: %v", err)
	}
	if len(fake.calls) != 2 || fake.calls[0] != "models/sentiment/vectorizer.json" {
		t.Errorf("S3 calls = %v", fake.calls)
	}
}

func TestLoaderErrors(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{}}
	ctx := context.Background()

	tests := []struct {
		name string
		l    *Loader
		uri  string
	}{
		{"empty path", NewLoader(nil), ""},
		{"missing file", NewLoader(nil), "testdata/nope.json"},
		{"truncated json", NewLoader(nil), "testdata/vectorizer_truncated.json"},
		{"s3 without client", NewLoader(nil), "s3://models/vectorizer.json"},
		{"s3 without key", NewLoader(fake), "s3://models"},
		{"s3 missing object", NewLoader(fake), "s3://models/missing.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.l.LoadVectorizer(ctx, tt.uri); !errors.Is(err, ErrArtifact) {
				t.Errorf("err = %v, want ErrArtifact", err)
			}
		})
	}
}

func TestLoadClassifierShapeMismatch(t *testing.T) {
	_, err := NewLoader(nil).LoadClassifier(context.Background(), "testdata/classifier_bad_shape.json", 2)
	if !errors.Is(err, ErrArtifact) {
		t.Errorf("err = %v, want ErrArtifact", err)
	}
}
