package segment

import (
	"context"
	"errors"
	"testing"

	"github.com/reqsift/reqsift/internal/nlp"
)

func TestSplit_FiltersShortSentences(t *testing.T) {
	segmenter := NewSegmenter(nlp.NewRuleEngine())

	text := "Fix the pump. The customer should book a washing machine online."
	sentences, err := segmenter.Split(context.Background(), text)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	if len(sentences) != 1 {
		t.Fatalf("Expected short sentence to be dropped, got %d: %v", len(sentences), sentences)
	}
	if sentences[0] != "The customer should book a washing machine online." {
		t.Errorf("Unexpected surviving sentence: %q", sentences[0])
	}
}

func TestSplit_ExactMinimumDropped(t *testing.T) {
	segmenter := NewSegmenter(nlp.NewRuleEngine())

	// Five words: the count must exceed the minimum, not meet it.
	sentences, err := segmenter.Split(context.Background(), "The machine reports its status.")
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if len(sentences) != 0 {
		t.Errorf("Expected five-word sentence to be dropped, got %v", sentences)
	}
}

func TestSplit_CollapsesWhitespace(t *testing.T) {
	segmenter := NewSegmenter(nlp.NewRuleEngine())

	text := "The  customer\n\tshould book\n a washing   machine."
	sentences, err := segmenter.Split(context.Background(), text)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	if len(sentences) != 1 {
		t.Fatalf("Expected 1 sentence, got %d", len(sentences))
	}
	if sentences[0] != "The customer should book a washing machine." {
		t.Errorf("Whitespace not collapsed: %q", sentences[0])
	}
}

func TestSplit_EmptyInput(t *testing.T) {
	segmenter := NewSegmenter(nlp.NewRuleEngine())

	for _, text := range []string{"", "   ", "\n\t\n"} {
		sentences, err := segmenter.Split(context.Background(), text)
		if err != nil {
			t.Errorf("Split(%q) returned error: %v", text, err)
		}
		if len(sentences) != 0 {
			t.Errorf("Split(%q) returned %v, expected none", text, sentences)
		}
	}
}

type failingEngine struct{}

func (failingEngine) Segment(ctx context.Context, text string) ([]string, error) {
	return nil, errors.New("sidecar unreachable")
}

func (failingEngine) Parse(ctx context.Context, sentence string) (*nlp.Doc, error) {
	return nil, errors.New("sidecar unreachable")
}

func TestSplit_EngineError(t *testing.T) {
	segmenter := NewSegmenter(failingEngine{})

	_, err := segmenter.Split(context.Background(), "The customer should book a machine today.")
	if err == nil {
		t.Fatal("Expected error from failing engine")
	}
}
