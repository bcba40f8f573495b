package nlp

import (
	"context"
	"testing"
)

func TestRuleEngine_Segment(t *testing.T) {
	engine := NewRuleEngine()

	text := "The customer should book a washing machine. The administrator must monitor the payment system for fraud."
	sentences, err := engine.Segment(context.Background(), text)
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	if len(sentences) != 2 {
		t.Fatalf("Expected 2 sentences, got %d: %v", len(sentences), sentences)
	}
	if sentences[0] != "The customer should book a washing machine." {
		t.Errorf("Unexpected first sentence: %q", sentences[0])
	}
	if sentences[1] != "The administrator must monitor the payment system for fraud." {
		t.Errorf("Unexpected second sentence: %q", sentences[1])
	}
}

func TestRuleEngine_Segment_NoTerminator(t *testing.T) {
	engine := NewRuleEngine()

	sentences, err := engine.Segment(context.Background(), "customers can view their account balance online")
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}
	if len(sentences) != 1 {
		t.Fatalf("Expected trailing text to form 1 sentence, got %d", len(sentences))
	}
}

func TestRuleEngine_Parse_SubjectVerbObject(t *testing.T) {
	engine := NewRuleEngine()

	doc, err := engine.Parse(context.Background(), "The customer should book a washing machine.")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	book := findToken(t, doc, "book")
	if book.Pos != PosVerb {
		t.Errorf("Expected 'book' tagged VERB after modal, got %s", book.Pos)
	}
	if book.Lemma != "book" {
		t.Errorf("Expected lemma 'book', got %q", book.Lemma)
	}

	should := findToken(t, doc, "should")
	if should.Dep != DepAux || should.Head != book.Index {
		t.Errorf("Expected 'should' as aux of 'book', got dep=%s head=%d", should.Dep, should.Head)
	}

	machine := findToken(t, doc, "machine")
	if machine.Dep != DepDobj || machine.Head != book.Index {
		t.Errorf("Expected 'machine' as dobj of 'book', got dep=%s head=%d", machine.Dep, machine.Head)
	}

	customer := findToken(t, doc, "customer")
	if customer.Dep != DepNsubj {
		t.Errorf("Expected 'customer' as nsubj, got %s", customer.Dep)
	}

	if len(doc.Chunks) != 2 {
		t.Fatalf("Expected 2 noun chunks, got %d", len(doc.Chunks))
	}
	if got := doc.ChunkText(doc.Chunks[0]); got != "The customer" {
		t.Errorf("Unexpected first chunk: %q", got)
	}
	if got := doc.ChunkText(doc.Chunks[1]); got != "a washing machine" {
		t.Errorf("Unexpected second chunk: %q", got)
	}
}

func TestRuleEngine_Parse_PrepositionalObject(t *testing.T) {
	engine := NewRuleEngine()

	doc, err := engine.Parse(context.Background(), "The administrator must monitor the payment system for fraud.")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	monitor := findToken(t, doc, "monitor")
	if monitor.Pos != PosVerb || monitor.Dep != DepRoot {
		t.Fatalf("Expected 'monitor' as root verb, got pos=%s dep=%s", monitor.Pos, monitor.Dep)
	}

	fraud := findToken(t, doc, "fraud")
	if fraud.Dep != DepPobj {
		t.Errorf("Expected 'fraud' as pobj, got %s", fraud.Dep)
	}
	if fraud.Head != monitor.Index {
		t.Errorf("Expected pobj attached to governing verb, got head=%d", fraud.Head)
	}

	system := findToken(t, doc, "system")
	if system.Dep != DepDobj || system.Head != monitor.Index {
		t.Errorf("Expected 'system' as dobj of 'monitor', got dep=%s head=%d", system.Dep, system.Head)
	}

	payment := findToken(t, doc, "payment")
	if payment.Dep != DepCompound {
		t.Errorf("Expected 'payment' as compound, got %s", payment.Dep)
	}
}

func TestRuleEngine_Parse_NounReadingAfterDeterminer(t *testing.T) {
	engine := NewRuleEngine()

	doc, err := engine.Parse(context.Background(), "Customers pay through the online booking system.")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	booking := findToken(t, doc, "booking")
	if booking.Pos != PosNoun {
		t.Errorf("Expected 'booking' tagged NOUN inside a noun phrase, got %s", booking.Pos)
	}

	customers := findToken(t, doc, "Customers")
	if customers.Lemma != "customer" {
		t.Errorf("Expected plural lemma 'customer', got %q", customers.Lemma)
	}
}

func TestRuleEngine_Parse_NoVerb(t *testing.T) {
	engine := NewRuleEngine()

	doc, err := engine.Parse(context.Background(), "A unique identifier per machine.")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	for _, tok := range doc.Tokens {
		if tok.Dep == DepNsubj || tok.Dep == DepDobj {
			t.Errorf("Verbless sentence should have no subject/object relations, got %s on %q", tok.Dep, tok.Text)
		}
	}
}

func TestStopwords(t *testing.T) {
	if !IsStopword("the") || !IsStopword("The") {
		t.Error("Expected 'the' to be a stopword")
	}
	if IsStopword("machine") {
		t.Error("Did not expect 'machine' to be a stopword")
	}

	words := Stopwords()
	words["machine"] = true
	if IsStopword("machine") {
		t.Error("Stopwords() must return a copy")
	}
}

func findToken(t *testing.T, doc *Doc, text string) Token {
	t.Helper()
	for _, tok := range doc.Tokens {
		if tok.Text == text {
			return tok
		}
	}
	t.Fatalf("Token %q not found in %q", text, doc.Text)
	return Token{}
}
