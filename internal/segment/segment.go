// Package segment splits raw descriptions into candidate sentences.
package segment

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/reqsift/reqsift/internal/nlp"
)

// MinSentenceWords is the word count a sentence must exceed to plausibly
// encode a requirement.
const MinSentenceWords = 5

var whitespaceRun = regexp.MustCompile(`\s+`)

// Segmenter produces candidate sentences from raw text.
type Segmenter struct {
	engine   nlp.Engine
	minWords int
}

// NewSegmenter creates a segmenter backed by the given engine.
func NewSegmenter(engine nlp.Engine) *Segmenter {
	return &Segmenter{
		engine:   engine,
		minWords: MinSentenceWords,
	}
}

// Split collapses whitespace, detects sentence boundaries, and discards
// sentences too short to encode a requirement. Empty input yields an empty
// result, not an error.
func (s *Segmenter) Split(ctx context.Context, text string) ([]string, error) {
	text = strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
	if text == "" {
		return nil, nil
	}

	sentences, err := s.engine.Segment(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("segment text: %w", err)
	}

	var out []string
	for _, sentence := range sentences {
		if len(strings.Fields(sentence)) > s.minWords {
			out = append(out, sentence)
		}
	}
	return out, nil
}
