// Package extract derives linguistic feature records from sentences.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/reqsift/reqsift/internal/model"
	"github.com/reqsift/reqsift/internal/nlp"
)

// ActionVerbVocabulary is the fixed vocabulary of verbs that typically
// describe a system capability.
var ActionVerbVocabulary = map[string]bool{
	"allow": true, "enable": true, "provide": true, "support": true,
	"manage": true, "monitor": true, "check": true, "view": true,
	"book": true, "pay": true, "receive": true, "create": true,
	"track": true, "generate": true,
}

// ModalVocabulary is the fixed vocabulary of modal auxiliaries that signal
// obligation or capability.
var ModalVocabulary = map[string]bool{
	"should": true, "must": true, "will": true, "can": true, "could": true,
}

// FeatureExtractor turns sentences into feature records using the analysis
// engine.
type FeatureExtractor struct {
	engine nlp.Engine
}

// NewFeatureExtractor creates a feature extractor backed by the given engine.
func NewFeatureExtractor(engine nlp.Engine) *FeatureExtractor {
	return &FeatureExtractor{engine: engine}
}

// Extract parses one sentence and derives its feature record. A sentence
// with no matches for a category yields an empty sequence for that category.
func (x *FeatureExtractor) Extract(ctx context.Context, sentence string) (*model.FeatureRecord, error) {
	doc, err := x.engine.Parse(ctx, sentence)
	if err != nil {
		return nil, fmt.Errorf("parse sentence: %w", err)
	}
	return FromDoc(sentence, doc), nil
}

// ExtractAll derives feature records for every sentence, preserving order.
func (x *FeatureExtractor) ExtractAll(ctx context.Context, sentences []string) ([]*model.FeatureRecord, error) {
	records := make([]*model.FeatureRecord, 0, len(sentences))
	for _, sentence := range sentences {
		rec, err := x.Extract(ctx, sentence)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// FromDoc derives a feature record from an already-parsed sentence.
func FromDoc(sentence string, doc *nlp.Doc) *model.FeatureRecord {
	rec := &model.FeatureRecord{
		Sentence: sentence,
		Doc:      doc,
	}

	for _, t := range doc.Tokens {
		switch t.Pos {
		case nlp.PosVerb:
			rec.Verbs = append(rec.Verbs, t.Lemma)
			if ActionVerbVocabulary[t.Lemma] {
				rec.ActionVerbs = append(rec.ActionVerbs, t.Lemma)
			}
		case nlp.PosNoun:
			rec.Nouns = append(rec.Nouns, t.Text)
		}
		if t.Dep == nlp.DepAux && ModalVocabulary[strings.ToLower(t.Text)] {
			rec.Modals = append(rec.Modals, t.Text)
		}
	}

	for _, ent := range doc.Entities {
		rec.Entities = append(rec.Entities, doc.EntityText(ent))
	}

	rec.SVOPatterns = svoPatterns(doc)
	return rec
}

// svoPatterns records a (subject, verb, object) triple for every noun chunk
// acting as nominal subject of a verb, once per direct or prepositional
// object of that verb. Multiple objects yield multiple triples.
func svoPatterns(doc *nlp.Doc) []model.SVO {
	var patterns []model.SVO
	for _, chunk := range doc.Chunks {
		root := doc.Tokens[chunk.Root]
		if root.Dep != nlp.DepNsubj {
			continue
		}
		head := doc.Tokens[root.Head]
		if head.Pos != nlp.PosVerb {
			continue
		}

		subject := doc.ChunkText(chunk)
		for _, t := range doc.Tokens {
			if t.Head != head.Index || t.Index == head.Index {
				continue
			}
			if t.Dep == nlp.DepDobj || t.Dep == nlp.DepPobj {
				patterns = append(patterns, model.SVO{
					Subject: subject,
					Verb:    head.Lemma,
					Object:  t.Text,
				})
			}
		}
	}
	return patterns
}
