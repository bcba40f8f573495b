// Package formulate synthesizes draft requirement sentences from scored
// candidates.
package formulate

import (
	"strings"

	"github.com/reqsift/reqsift/internal/model"
	"github.com/reqsift/reqsift/internal/nlp"
)

// Role vocabularies for actor detection. The customer check takes priority
// when both appear in one sentence; that is a fixed policy, not a bug.
var (
	customerRoles = map[string]bool{"customer": true, "client": true, "user": true}
	adminRoles    = map[string]bool{"administrator": true, "admin": true, "owner": true}
)

const fallbackAction = "support"

// Formulator builds "The X shall Y Z" drafts.
type Formulator struct{}

// NewFormulator creates a new formulator.
func NewFormulator() *Formulator {
	return &Formulator{}
}

// Formulate produces one draft requirement from a candidate. It re-queries
// the candidate's parse handle for noun chunks and always returns a
// non-empty string.
func (f *Formulator) Formulate(c model.ScoredCandidate) string {
	doc := c.Doc

	var actors []string
	isCustomer, isAdmin := false, false
	for _, chunk := range doc.Chunks {
		root := doc.Tokens[chunk.Root]
		if root.Dep != nlp.DepNsubj {
			continue
		}
		actors = append(actors, doc.ChunkText(chunk))

		// Match on the chunk head's lemma so determiners ("The customer")
		// and plurals ("Customers") do not defeat role detection.
		lemma := strings.ToLower(root.Lemma)
		switch {
		case customerRoles[lemma]:
			isCustomer = true
		case adminRoles[lemma]:
			isAdmin = true
		}
	}

	primaryActor := "The system"
	if isCustomer {
		primaryActor = "The customer"
	} else if isAdmin {
		primaryActor = "The administrator"
	}

	hasAction := len(c.ActionVerbs) > 0 || len(c.Verbs) > 0
	action := fallbackAction
	if len(c.ActionVerbs) > 0 {
		action = c.ActionVerbs[0]
	} else if len(c.Verbs) > 0 {
		action = c.Verbs[0]
	}

	var objects []string
	for _, chunk := range doc.Chunks {
		dep := doc.Tokens[chunk.Root].Dep
		if dep == nlp.DepDobj || dep == nlp.DepPobj {
			objects = append(objects, doc.ChunkText(chunk))
		}
	}

	var draft string
	if len(actors) > 0 && hasAction && len(objects) > 0 {
		draft = primaryActor + " shall " + action + " " + objects[0]
	} else {
		// Fall back to a template around the original sentence.
		draft = primaryActor + " shall " + action + " " + strings.ToLower(c.Sentence)
	}

	draft = strings.ReplaceAll(draft, "  ", " ")
	draft = strings.TrimSpace(draft)

	// Append prepositional context not already present in the draft.
	for _, chunk := range doc.Chunks {
		if doc.Tokens[chunk.Root].Dep != nlp.DepPobj {
			continue
		}
		text := doc.ChunkText(chunk)
		if !strings.Contains(draft, text) && !strings.HasSuffix(draft, ".") {
			draft += " for " + text
		}
	}

	return draft
}
