package location

import (
	"strings"
	"unicode"
)

// Span is a place mention found in text. Start is a byte offset of the first
// occurrence. Cued is set when a locative preposition ("in", "from", ...)
// directly precedes that occurrence.
type Span struct {
	Name  string
	Start int
	Cued  bool
}

// PlaceExtractor finds place-name spans in text. Each distinct name is
// reported once, at its first occurrence.
type PlaceExtractor interface {
	ExtractPlaces(text string) []Span
}

// CapitalizedExtractor treats runs of capitalized words as place mentions.
// It keeps multi-word names such as "New York" together and allows a
// lowercase "de" inside a run ("Rio de Janeiro").
type CapitalizedExtractor struct{}

var leadingFillers = map[string]bool{
	"The": true, "A": true, "An": true, "In": true, "On": true, "At": true, "From": true,
	"But": true, "And": true, "As": true, "After": true, "Before": true, "Officials": true,
	"Reports": true, "Report": true, "Breaking": true, "Live": true, "Why": true, "How": true,
	"What": true, "When": true, "Where": true, "Who": true, "This": true, "That": true,
	"Near": true, "Across": true,
}

var locativeCues = map[string]bool{
	"in": true, "at": true, "from": true, "near": true, "across": true, "outside": true,
}

var joiners = map[string]bool{"de": true, "da": true, "del": true}

type word struct {
	text  string
	start int
	end   int
}

func splitWords(text string) []word {
	var words []word
	start := -1
	for i, r := range text {
		inWord := unicode.IsLetter(r) || r == '.' || r == '\'' || r == '-'
		if inWord && start < 0 {
			start = i
		} else if !inWord && start >= 0 {
			words = append(words, word{text[start:i], start, i})
			start = -1
		}
	}
	if start >= 0 {
		words = append(words, word{text[start:], start, len(text)})
	}
	for i := range words {
		trimmed := strings.TrimSuffix(words[i].text, "'s")
		trimmed = strings.TrimRight(trimmed, ".'-")
		words[i].end -= len(words[i].text) - len(trimmed)
		words[i].text = trimmed
	}
	return words
}

func isCapitalized(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func (CapitalizedExtractor) ExtractPlaces(text string) []Span {
	words := splitWords(text)
	seen := map[string]bool{}
	var spans []Span

	before := make(map[int]string, len(words))
	for i := 1; i < len(words); i++ {
		before[words[i].start] = words[i-1].text
	}

	emit := func(run []word) {
		if len(run) == 0 {
			return
		}
		cued := locativeCues[strings.ToLower(before[run[0].start])]
		for len(run) > 0 && leadingFillers[run[0].text] {
			cued = locativeCues[strings.ToLower(run[0].text)]
			run = run[1:]
		}
		for len(run) > 0 && joiners[run[len(run)-1].text] {
			run = run[:len(run)-1]
		}
		if len(run) == 0 {
			return
		}
		name := text[run[0].start:run[len(run)-1].end]
		if seen[name] {
			return
		}
		seen[name] = true
		spans = append(spans, Span{Name: name, Start: run[0].start, Cued: cued})
	}

	var run []word
	for i, w := range words {
		contiguous := len(run) > 0 && onlySpaces(text[run[len(run)-1].end:w.start])
		switch {
		case isCapitalized(w.text) && (len(run) == 0 || contiguous):
			run = append(run, w)
		case joiners[w.text] && contiguous && i+1 < len(words) && isCapitalized(words[i+1].text):
			run = append(run, w)
		default:
			emit(run)
			run = nil
			if isCapitalized(w.text) {
				run = append(run, w)
			}
		}
	}
	emit(run)
	return spans
}

func onlySpaces(s string) bool {
	return strings.TrimSpace(s) == "" && !strings.Contains(s, "\n")
}
