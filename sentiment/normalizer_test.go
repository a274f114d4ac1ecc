package sentiment

import (
	"strings"
	"testing"
)

func identity(s string) string { return s }

func TestNormalizeSteps(t *testing.T) {
	n := &Normalizer{
		stopWords: StopWords{"ini": {}, "dan": {}, "sangat": {}},
		stem:      identity,
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase and stop words", "Barang ini SANGAT bagus dan berkualitas", "barang bagus berkualitas"},
		{"digits and punctuation become separators", "mantap!!!5 bintang,puas", "mantap bintang puas"},
		{"non ascii letters are dropped", "café très bon", "caf tr s bon"},
		{"whitespace collapses", "  a \t\n b  ", "a b"},
		{"no letters", "12345 !!! ???", ""},
		{"only stop words", "ini dan sangat", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeStemsAfterStopWordRemoval(t *testing.T) {
	var seen []string
	n := &Normalizer{
		stopWords: StopWords{"dan": {}},
		stem: func(s string) string {
			seen = append(seen, s)
			return strings.ToUpper(s)
		},
	}
	if got := n.Normalize("Bagus dan Murah"); got != "BAGUS MURAH" {
		t.Errorf("Normalize = %q", got)
	}
	if strings.Join(seen, ",") != "bagus,murah" {
		t.Errorf("stemmed tokens = %v, want lowercase non-stop tokens in order", seen)
	}
}

func TestNormalizePorter(t *testing.T) {
	n := NewNormalizer(nil)

	got := n.Normalize("Barang ini sangat bagus dan berkualitas")
	if got != "barang bagu berkualita" {
		t.Errorf("Normalize = %q, want %q", got, "barang bagu berkualita")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := NewNormalizer(nil)

	for _, in := range []string{
		"barang bagu berkualita",
		"jelek rusak kecewa",
		"lumayan standar",
		"",
	} {
		if got := n.Normalize(in); got != in {
			t.Errorf("Normalize(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	n := NewNormalizer(nil)
	in := "Pengiriman cepat, barang mantap! Tidak mengecewakan :)"
	first := n.Normalize(in)
	for i := 0; i < 20; i++ {
		if got := n.Normalize(in); got != first {
			t.Fatalf("run %d: Normalize = %q, first run %q", i, got, first)
		}
	}
	if strings.Contains(first, "tidak") {
		t.Errorf("stop word survived: %q", first)
	}
}

func TestDefaultStopWords(t *testing.T) {
	sw := DefaultStopWords()
	for _, w := range []string{"yang", "dan", "ini", "sangat", "tidak", "adalah"} {
		if !sw.Contains(w) {
			t.Errorf("embedded list is missing %q", w)
		}
	}
	for _, w := range []string{"bagus", "barang", "jelek", "puas"} {
		if sw.Contains(w) {
			t.Errorf("embedded list unexpectedly contains %q", w)
		}
	}
}

func TestLoadStopWordsFile(t *testing.T) {
	sw, err := LoadStopWords("testdata/stopwords_small.txt")
	if err != nil {
		t.Fatalf("LoadStopWords: %v", err)
	}
	if len(sw) != 3 || !sw.Contains("sangat") {
		t.Errorf("stop words = %v", sw)
	}
	if _, err := LoadStopWords("testdata/missing.txt"); err == nil {
		t.Error("LoadStopWords on missing file succeeded")
	}
}

func TestNormalizeKeepsTokensTheStemmerRejects(t *testing.T) {
	n := &Normalizer{
		stopWords: StopWords{"dan": {}},
		stem: func(s string) string {
			if s == "eeds" {
				panic("index out of range [-1]")
			}
			return strings.ToUpper(s)
		},
	}
	if got := n.Normalize("bagus dan eeds murah"); got != "BAGUS eeds MURAH" {
		t.Errorf("Normalize = %q, want %q", got, "BAGUS eeds MURAH")
	}
}

func TestNormalizePorterShortTokens(t *testing.T) {
	n := NewNormalizer(StopWords{})
	for _, in := range []string{"eed", "eeds", "Barang bagus, eeds!"} {
		if got := n.Normalize(in); got == "" {
			t.Errorf("Normalize(%q) is empty", in)
		}
	}
}

// Every 1-4 letter word over a small alphabet must normalize to one token.
func TestNormalizePorterExhaustiveShortWords(t *testing.T) {
	n := NewNormalizer(StopWords{})
	const alphabet = "aeiouybcdlmnrsty"

	words := []string{""}
	for length := 1; length <= 4; length++ {
		var next []string
		for _, prefix := range words {
			for _, c := range alphabet {
				w := prefix + string(c)
				next = append(next, w)

				got := n.Normalize(w)
				if got == "" || strings.Contains(got, " ") {
					t.Fatalf("Normalize(%q) = %q, want a single token", w, got)
				}
			}
		}
		words = next
	}
}
