package sentiment

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed stopwords_id.txt
var indonesianStopWords string

// StopWords is a set of lowercase tokens excluded from feature extraction.
type StopWords map[string]struct{}

// Contains reports whether token is a stop word.
func (s StopWords) Contains(token string) bool {
	_, ok := s[token]
	return ok
}

// DefaultStopWords returns the embedded Indonesian list.
func DefaultStopWords() StopWords {
	words, err := ReadStopWords(strings.NewReader(indonesianStopWords))
	if err != nil {
		panic(fmt.Sprintf("embedded stop words: %v", err))
	}
	return words
}

// ReadStopWords reads one word per line. Blank lines and lines starting
// with # are ignored; words are lowercased.
func ReadStopWords(r io.Reader) (StopWords, error) {
	words := make(StopWords)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words[strings.ToLower(line)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stop words: %w", err)
	}
	return words, nil
}

// LoadStopWords returns the list at path, or the embedded list when path is empty.
func LoadStopWords(path string) (StopWords, error) {
	if path == "" {
		return DefaultStopWords(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stop words: %w", err)
	}
	defer f.Close()
	return ReadStopWords(f)
}
