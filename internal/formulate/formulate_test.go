package formulate

import (
	"context"
	"strings"
	"testing"

	"github.com/reqsift/reqsift/internal/extract"
	"github.com/reqsift/reqsift/internal/model"
	"github.com/reqsift/reqsift/internal/nlp"
)

func candidate(t *testing.T, sentence string) model.ScoredCandidate {
	t.Helper()
	doc, err := nlp.NewRuleEngine().Parse(context.Background(), sentence)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return model.ScoredCandidate{FeatureRecord: extract.FromDoc(sentence, doc)}
}

func TestFormulate_SubjectVerbObjectTemplate(t *testing.T) {
	f := NewFormulator()

	draft := f.Formulate(candidate(t, "The customer should book a washing machine."))
	if draft != "The customer shall book a washing machine" {
		t.Errorf("Unexpected draft: %q", draft)
	}
}

func TestFormulate_AppendsPrepositionalContext(t *testing.T) {
	f := NewFormulator()

	draft := f.Formulate(candidate(t, "The administrator must monitor the payment system for fraud."))
	if draft != "The administrator shall monitor the payment system for fraud" {
		t.Errorf("Unexpected draft: %q", draft)
	}
}

func TestFormulate_FallbackTemplate(t *testing.T) {
	f := NewFormulator()

	// Subject and verb but no object: the draft wraps the original sentence.
	draft := f.Formulate(candidate(t, "Customers can pay."))
	if draft != "The customer shall pay customers can pay." {
		t.Errorf("Unexpected fallback draft: %q", draft)
	}
}

func TestFormulate_SystemActorWithoutSubject(t *testing.T) {
	f := NewFormulator()

	draft := f.Formulate(candidate(t, "A unique identifier per machine."))
	if !strings.HasPrefix(draft, "The system shall support ") {
		t.Errorf("Expected system actor with fallback action, got %q", draft)
	}
}

func TestFormulate_CustomerTakesPriorityOverAdministrator(t *testing.T) {
	f := NewFormulator()

	draft := f.Formulate(candidate(t, "The administrator and the customer can view reports."))
	if !strings.HasPrefix(draft, "The customer shall ") {
		t.Errorf("Expected customer actor priority, got %q", draft)
	}
}

func TestFormulate_AdministratorActor(t *testing.T) {
	f := NewFormulator()

	draft := f.Formulate(candidate(t, "The owner must review daily reports."))
	if !strings.HasPrefix(draft, "The administrator shall ") {
		t.Errorf("Expected administrator actor for owner role, got %q", draft)
	}
}

func TestFormulate_NeverEmpty(t *testing.T) {
	f := NewFormulator()

	sentences := []string{
		"The customer should book a washing machine.",
		"A unique identifier per machine.",
		"Customers can pay.",
		"The owner must review daily reports.",
	}
	for _, s := range sentences {
		draft := f.Formulate(candidate(t, s))
		if strings.TrimSpace(draft) == "" {
			t.Errorf("Empty draft for %q", s)
		}
		ok := strings.HasPrefix(draft, "The customer ") ||
			strings.HasPrefix(draft, "The administrator ") ||
			strings.HasPrefix(draft, "The system ")
		if !ok {
			t.Errorf("Draft for %q has no recognized actor: %q", s, draft)
		}
	}
}
