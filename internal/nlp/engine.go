package nlp

import (
	"context"
	"fmt"
	"strings"
)

// Coarse part-of-speech tags. The set follows the Universal Dependencies
// convention so remote providers (spaCy, LLM) can pass their tags through.
const (
	PosVerb  = "VERB"
	PosNoun  = "NOUN"
	PosPropn = "PROPN"
	PosAux   = "AUX"
	PosDet   = "DET"
	PosAdp   = "ADP"
	PosAdj   = "ADJ"
	PosAdv   = "ADV"
	PosPron  = "PRON"
	PosCconj = "CCONJ"
	PosPart  = "PART"
	PosNum   = "NUM"
	PosPunct = "PUNCT"
)

// Dependency labels used by the pipeline.
const (
	DepNsubj    = "nsubj"
	DepDobj     = "dobj"
	DepPobj     = "pobj"
	DepAux      = "aux"
	DepPrep     = "prep"
	DepDet      = "det"
	DepCompound = "compound"
	DepAdvmod   = "advmod"
	DepConj     = "conj"
	DepRoot     = "ROOT"
	DepPunct    = "punct"
	DepDep      = "dep"
)

// Token is one word of a parsed sentence. Head is an index into the owning
// Doc's token slice; the root token is its own head.
type Token struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Lemma string `json:"lemma"`
	Pos   string `json:"pos"`
	Dep   string `json:"dep"`
	Head  int    `json:"head"`
}

// NounChunk is a maximal noun phrase span. End is exclusive. Root indexes
// the chunk's head noun in the token slice.
type NounChunk struct {
	Start int `json:"start"`
	End   int `json:"end"`
	Root  int `json:"root"`
}

// Entity is a recognized named-entity span. End is exclusive.
type Entity struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
}

// Doc is the parsed-sentence structure the engine produces. It is immutable
// once built and safe to share read-only across pipeline stages.
type Doc struct {
	Text     string      `json:"text"`
	Tokens   []Token     `json:"tokens"`
	Chunks   []NounChunk `json:"chunks,omitempty"`
	Entities []Entity    `json:"entities,omitempty"`
}

// ChunkText returns the surface text of a noun chunk.
func (d *Doc) ChunkText(c NounChunk) string {
	return d.spanText(c.Start, c.End)
}

// EntityText returns the surface text of an entity span.
func (d *Doc) EntityText(e Entity) string {
	return d.spanText(e.Start, e.End)
}

func (d *Doc) spanText(start, end int) string {
	if start < 0 || end > len(d.Tokens) || start >= end {
		return ""
	}
	parts := make([]string, 0, end-start)
	for _, t := range d.Tokens[start:end] {
		parts = append(parts, t.Text)
	}
	return strings.Join(parts, " ")
}

// validateDoc checks that every head, root, and span index points inside the
// token slice. Remote providers return attacker- or model-shaped JSON; a Doc
// with a stray index must surface as an engine error, not a panic in a later
// stage.
func validateDoc(doc *Doc) error {
	n := len(doc.Tokens)

	for i, t := range doc.Tokens {
		if t.Head < 0 || t.Head >= n {
			return fmt.Errorf("token %d: head %d out of range [0, %d)", i, t.Head, n)
		}
	}
	for i, c := range doc.Chunks {
		if c.Start < 0 || c.End > n || c.Start >= c.End {
			return fmt.Errorf("chunk %d: span [%d, %d) invalid for %d tokens", i, c.Start, c.End, n)
		}
		if c.Root < 0 || c.Root >= n {
			return fmt.Errorf("chunk %d: root %d out of range [0, %d)", i, c.Root, n)
		}
	}
	for i, e := range doc.Entities {
		if e.Start < 0 || e.End > n || e.Start >= e.End {
			return fmt.Errorf("entity %d: span [%d, %d) invalid for %d tokens", i, e.Start, e.End, n)
		}
	}
	return nil
}

// Engine is the linguistic-analysis collaborator. Implementations must be
// safe for concurrent read-only use; a shared instance serves all requests.
type Engine interface {
	// Segment splits text into sentences, preserving source order.
	Segment(ctx context.Context, text string) ([]string, error)

	// Parse analyzes a single sentence.
	Parse(ctx context.Context, sentence string) (*Doc, error)
}
