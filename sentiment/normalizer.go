package sentiment

import (
	"regexp"
	"strings"

	porterstemmer "github.com/reiver/go-porterstemmer"

	"sensor-sentiment/logging"
)

var nonLetters = regexp.MustCompile(`[^a-zA-Z]`)

// Normalizer turns raw review text into the token string the vectorizer was
// fitted on. It is stateless after construction and safe for concurrent use.
type Normalizer struct {
	stopWords StopWords
	stem      func(string) string
}

// NewNormalizer uses Porter stemming. A nil stopWords means the embedded list.
func NewNormalizer(stopWords StopWords) *Normalizer {
	if stopWords == nil {
		stopWords = DefaultStopWords()
	}
	return &Normalizer{stopWords: stopWords, stem: porterstemmer.StemString}
}

// Normalize replaces non-letters with spaces, lowercases, drops stop words,
// stems the rest and joins them with single spaces. The result may be empty.
func (n *Normalizer) Normalize(text string) string {
	text = nonLetters.ReplaceAllString(text, " ")
	text = strings.ToLower(text)

	tokens := strings.Fields(text)
	kept := tokens[:0]
	for _, tok := range tokens {
		if n.stopWords.Contains(tok) {
			continue
		}
		kept = append(kept, n.stemToken(tok))
	}
	return strings.Join(kept, " ")
}

// stemToken stems one token. go-porterstemmer indexes out of range on some
// short tokens ("eed", "eeds"); those are kept unstemmed.
func (n *Normalizer) stemToken(tok string) (stemmed string) {
	defer func() {
		if r := recover(); r != nil {
			logging.Debug().Str("token", tok).Interface("panic", r).Msg("Stemmer failed, keeping token")
			stemmed = tok
		}
	}()
	return n.stem(tok)
}
