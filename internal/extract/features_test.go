package extract

import (
	"context"
	"reflect"
	"testing"

	"github.com/reqsift/reqsift/internal/nlp"
)

func TestExtract_BookingSentence(t *testing.T) {
	extractor := NewFeatureExtractor(nlp.NewRuleEngine())

	rec, err := extractor.Extract(context.Background(), "The customer should book a washing machine.")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if !reflect.DeepEqual(rec.Verbs, []string{"book"}) {
		t.Errorf("Unexpected verbs: %v", rec.Verbs)
	}
	if !reflect.DeepEqual(rec.ActionVerbs, []string{"book"}) {
		t.Errorf("Unexpected action verbs: %v", rec.ActionVerbs)
	}
	if !reflect.DeepEqual(rec.Modals, []string{"should"}) {
		t.Errorf("Unexpected modals: %v", rec.Modals)
	}
	if !reflect.DeepEqual(rec.Nouns, []string{"customer", "washing", "machine"}) {
		t.Errorf("Unexpected nouns: %v", rec.Nouns)
	}

	want := []struct{ subject, verb, object string }{
		{"The customer", "book", "machine"},
	}
	if len(rec.SVOPatterns) != len(want) {
		t.Fatalf("Expected %d SVO triples, got %d: %v", len(want), len(rec.SVOPatterns), rec.SVOPatterns)
	}
	for i, w := range want {
		got := rec.SVOPatterns[i]
		if got.Subject != w.subject || got.Verb != w.verb || got.Object != w.object {
			t.Errorf("SVO %d: got (%q, %q, %q)", i, got.Subject, got.Verb, got.Object)
		}
	}
}

func TestExtract_MultipleObjects(t *testing.T) {
	extractor := NewFeatureExtractor(nlp.NewRuleEngine())

	rec, err := extractor.Extract(context.Background(), "The administrator must monitor the payment system for fraud.")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(rec.SVOPatterns) != 2 {
		t.Fatalf("Expected one triple per object, got %d: %v", len(rec.SVOPatterns), rec.SVOPatterns)
	}
	for _, svo := range rec.SVOPatterns {
		if svo.Subject != "The administrator" || svo.Verb != "monitor" {
			t.Errorf("Unexpected triple: %+v", svo)
		}
	}
	if rec.SVOPatterns[0].Object != "system" || rec.SVOPatterns[1].Object != "fraud" {
		t.Errorf("Unexpected objects: %q, %q", rec.SVOPatterns[0].Object, rec.SVOPatterns[1].Object)
	}
}

func TestExtract_NoSignals(t *testing.T) {
	extractor := NewFeatureExtractor(nlp.NewRuleEngine())

	rec, err := extractor.Extract(context.Background(), "A unique identifier per machine.")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(rec.Verbs) != 0 {
		t.Errorf("Expected no verbs, got %v", rec.Verbs)
	}
	if len(rec.Modals) != 0 {
		t.Errorf("Expected no modals, got %v", rec.Modals)
	}
	if len(rec.SVOPatterns) != 0 {
		t.Errorf("Expected no SVO triples, got %v", rec.SVOPatterns)
	}
	if len(rec.Nouns) == 0 {
		t.Error("Expected nouns even without verbs")
	}
}

func TestExtract_ModalNotInVocabulary(t *testing.T) {
	extractor := NewFeatureExtractor(nlp.NewRuleEngine())

	// "may" is an auxiliary but not in the modal vocabulary.
	rec, err := extractor.Extract(context.Background(), "The customer may view the machine status.")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(rec.Modals) != 0 {
		t.Errorf("Expected 'may' to be excluded from modals, got %v", rec.Modals)
	}
	if !reflect.DeepEqual(rec.ActionVerbs, []string{"view"}) {
		t.Errorf("Unexpected action verbs: %v", rec.ActionVerbs)
	}
}

func TestExtractAll_PreservesOrder(t *testing.T) {
	extractor := NewFeatureExtractor(nlp.NewRuleEngine())

	sentences := []string{
		"The customer should book a washing machine.",
		"The administrator must monitor the payment system for fraud.",
	}
	records, err := extractor.ExtractAll(context.Background(), sentences)
	if err != nil {
		t.Fatalf("ExtractAll failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	for i, rec := range records {
		if rec.Sentence != sentences[i] {
			t.Errorf("Record %d out of order: %q", i, rec.Sentence)
		}
	}
}

func TestFromDoc_EntityText(t *testing.T) {
	doc := &nlp.Doc{
		Text: "PayFast handles card payments.",
		Tokens: []nlp.Token{
			{Index: 0, Text: "PayFast", Lemma: "PayFast", Pos: nlp.PosPropn, Dep: nlp.DepNsubj, Head: 1},
			{Index: 1, Text: "handles", Lemma: "handle", Pos: nlp.PosVerb, Dep: nlp.DepRoot, Head: 1},
			{Index: 2, Text: "card", Lemma: "card", Pos: nlp.PosNoun, Dep: nlp.DepCompound, Head: 3},
			{Index: 3, Text: "payments", Lemma: "payment", Pos: nlp.PosNoun, Dep: nlp.DepDobj, Head: 1},
			{Index: 4, Text: ".", Lemma: ".", Pos: nlp.PosPunct, Dep: nlp.DepPunct, Head: 1},
		},
		Chunks:   []nlp.NounChunk{{Start: 0, End: 1, Root: 0}, {Start: 2, End: 4, Root: 3}},
		Entities: []nlp.Entity{{Start: 0, End: 1, Label: "MISC"}},
	}

	rec := FromDoc(doc.Text, doc)
	if !reflect.DeepEqual(rec.Entities, []string{"PayFast"}) {
		t.Errorf("Unexpected entities: %v", rec.Entities)
	}
	if len(rec.SVOPatterns) != 1 || rec.SVOPatterns[0].Object != "payments" {
		t.Errorf("Unexpected SVO triples: %v", rec.SVOPatterns)
	}
}
