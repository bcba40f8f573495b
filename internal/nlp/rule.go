package nlp

import (
	"context"
	"strings"
	"unicode"
)

// RuleEngine is the built-in deterministic analyzer. It covers the slice of
// English the pipeline consumes: coarse POS tagging from closed-class word
// lists, table-driven lemmatization, a single-clause dependency heuristic,
// noun-chunk grouping, and capitalization-based entity spans. It needs no
// model files and no network, which makes it the default provider.
type RuleEngine struct {
	verbs map[string]string // surface form -> lemma
}

// NewRuleEngine creates the built-in analyzer.
func NewRuleEngine() *RuleEngine {
	return &RuleEngine{verbs: buildVerbTable()}
}

// Closed-class word lists. Unknown open-class words default to NOUN, which is
// the safe choice for requirement text.
var (
	determiners = wordSet("the", "a", "an", "this", "that", "these", "those",
		"each", "every", "any", "some", "all", "no", "their", "its", "his",
		"her", "our", "your", "my")

	modalAux = wordSet("should", "must", "will", "can", "could", "would",
		"may", "might", "shall")

	plainAux = wordSet("is", "are", "was", "were", "be", "been", "being",
		"has", "have", "had", "do", "does", "did")

	prepositions = wordSet("in", "on", "at", "by", "for", "with", "from",
		"of", "through", "during", "before", "after", "into", "onto", "over",
		"under", "within", "via", "per", "until", "between", "about")

	pronouns = wordSet("i", "you", "he", "she", "it", "we", "they", "them",
		"him", "us", "me", "who", "someone", "anyone")

	conjunctions = wordSet("and", "or", "but", "nor", "so", "yet")

	adverbs = wordSet("not", "also", "only", "always", "never",
		"automatically", "immediately", "already", "still", "then",
		"currently", "instead", "once")

	adjectives = wordSet("available", "unique", "new", "ready", "remaining",
		"designated", "online", "mobile", "prepaid", "self-service", "free",
		"busy", "active", "valid", "invalid", "daily", "weekly", "monthly",
		"multiple", "several", "next", "last", "same", "other", "own")

	auxLemmas = map[string]string{
		"is": "be", "are": "be", "was": "be", "were": "be", "been": "be",
		"being": "be", "has": "have", "have": "have", "had": "have",
		"does": "do", "do": "do", "did": "do",
	}
)

// verbRoots are the regular verbs the tagger recognizes; inflections are
// generated. Irregular forms are listed separately.
var verbRoots = []string{
	"allow", "enable", "provide", "support", "manage", "monitor", "check",
	"view", "book", "pay", "receive", "create", "track", "generate",
	"use", "select", "choose", "start", "stop", "display", "move", "offer",
	"wash", "dry", "fold", "assign", "notify", "maintain", "flag", "require",
	"update", "schedule", "reserve", "walk", "need", "want", "access",
	"record", "report", "communicate", "alert", "message", "review", "rate",
	"comment", "process", "complete", "handle", "store", "cancel", "confirm",
	"register", "deliver", "charge", "refund", "validate", "verify",
	"respond", "submit", "finish", "remove", "occupy", "place", "press",
	"insert", "scan", "open", "close", "lock", "unlock", "add", "include",
	"ensure", "perform", "operate", "repair", "service", "log", "print",
	"reject", "accept", "return", "collect", "drop",
}

var irregularVerbs = map[string]string{
	"sent": "send", "send": "send", "sends": "send", "sending": "send",
	"left": "leave", "leave": "leave", "leaves": "leave", "leaving": "leave",
	"made": "make", "make": "make", "makes": "make", "making": "make",
	"paid": "pay",
	"chose": "choose", "chosen": "choose",
	"kept": "keep", "keep": "keep", "keeps": "keep", "keeping": "keep",
	"took": "take", "taken": "take", "take": "take", "takes": "take", "taking": "take",
	"gave": "give", "given": "give", "give": "give", "gives": "give", "giving": "give",
}

func buildVerbTable() map[string]string {
	table := make(map[string]string, len(verbRoots)*4+len(irregularVerbs))
	for _, lemma := range verbRoots {
		for _, form := range inflectVerb(lemma) {
			table[form] = lemma
		}
	}
	for form, lemma := range irregularVerbs {
		table[form] = lemma
	}
	return table
}

// inflectVerb produces the base, third-person, past, and gerund forms of a
// regular verb.
func inflectVerb(lemma string) []string {
	third := lemma + "s"
	past := lemma + "ed"
	gerund := lemma + "ing"

	switch {
	case strings.HasSuffix(lemma, "e"):
		past = lemma + "d"
		gerund = strings.TrimSuffix(lemma, "e") + "ing"
	case hasConsonantY(lemma):
		stem := strings.TrimSuffix(lemma, "y")
		third = stem + "ies"
		past = stem + "ied"
	case strings.HasSuffix(lemma, "s"), strings.HasSuffix(lemma, "x"),
		strings.HasSuffix(lemma, "z"), strings.HasSuffix(lemma, "ch"),
		strings.HasSuffix(lemma, "sh"):
		third = lemma + "es"
	}
	return []string{lemma, third, past, gerund}
}

func hasConsonantY(w string) bool {
	if !strings.HasSuffix(w, "y") || len(w) < 2 {
		return false
	}
	return !strings.ContainsRune("aeiou", rune(w[len(w)-2]))
}

// Segment splits text into sentences at ./!/? boundaries followed by
// whitespace or end of text.
func (e *RuleEngine) Segment(ctx context.Context, text string) ([]string, error) {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences, nil
}

// Parse analyzes a single sentence.
func (e *RuleEngine) Parse(ctx context.Context, sentence string) (*Doc, error) {
	words := tokenize(sentence)
	tokens := e.tag(words)
	assignDeps(tokens)
	doc := &Doc{
		Text:   sentence,
		Tokens: tokens,
	}
	doc.Chunks = nounChunks(tokens)
	doc.Entities = entitySpans(tokens)
	return doc, nil
}

// tokenize splits on whitespace and peels surrounding punctuation into
// separate tokens. Hyphenated words stay whole.
func tokenize(sentence string) []string {
	var out []string
	for _, field := range strings.Fields(sentence) {
		var leading []string
		for len(field) > 0 && isPunctRune(rune(field[0])) {
			leading = append(leading, string(field[0]))
			field = field[1:]
		}
		var trailing []string
		for len(field) > 0 && isPunctRune(rune(field[len(field)-1])) {
			trailing = append([]string{string(field[len(field)-1])}, trailing...)
			field = field[:len(field)-1]
		}
		out = append(out, leading...)
		if field != "" {
			out = append(out, field)
		}
		out = append(out, trailing...)
	}
	return out
}

func isPunctRune(r rune) bool {
	switch r {
	case '.', ',', ';', ':', '!', '?', '(', ')', '[', ']', '"', '\'', '“', '”':
		return true
	}
	return false
}

// tag assigns POS and lemma to each word.
func (e *RuleEngine) tag(words []string) []Token {
	tokens := make([]Token, len(words))
	for i, w := range words {
		lw := strings.ToLower(w)
		tok := Token{Index: i, Text: w, Lemma: lw}

		switch {
		case len(w) == 1 && isPunctRune(rune(w[0])):
			tok.Pos = PosPunct
		case isNumeric(w):
			tok.Pos = PosNum
		case modalAux[lw]:
			tok.Pos = PosAux
		case plainAux[lw]:
			tok.Pos = PosAux
			tok.Lemma = auxLemmas[lw]
		case determiners[lw]:
			tok.Pos = PosDet
		case lw == "to":
			if i+1 < len(words) && e.verbs[strings.ToLower(words[i+1])] != "" {
				tok.Pos = PosPart
			} else {
				tok.Pos = PosAdp
			}
		case prepositions[lw]:
			tok.Pos = PosAdp
		case conjunctions[lw]:
			tok.Pos = PosCconj
		case pronouns[lw]:
			tok.Pos = PosPron
		case adverbs[lw] || strings.HasSuffix(lw, "ly"):
			tok.Pos = PosAdv
		case adjectives[lw]:
			tok.Pos = PosAdj
		case e.verbs[lw] != "":
			// Verb-or-noun ambiguity ("book", "view", "schedule"): a
			// determiner, preposition, adjective, or number in front means
			// we are inside a noun phrase.
			if prevOpenClass(tokens, i) {
				tok.Pos = PosNoun
				tok.Lemma = nounLemma(lw)
			} else {
				tok.Pos = PosVerb
				tok.Lemma = e.verbs[lw]
			}
		case i > 0 && startsUpper(w):
			tok.Pos = PosPropn
			tok.Lemma = w
		default:
			tok.Pos = PosNoun
			tok.Lemma = nounLemma(lw)
		}
		tokens[i] = tok
	}
	return tokens
}

// prevOpenClass reports whether the nearest preceding non-adverb token locks
// the current word into a noun reading.
func prevOpenClass(tokens []Token, i int) bool {
	for j := i - 1; j >= 0; j-- {
		if tokens[j].Pos == PosAdv {
			continue
		}
		switch tokens[j].Pos {
		case PosDet, PosAdp, PosAdj, PosNum:
			return true
		}
		return false
	}
	return false
}

func isNumeric(w string) bool {
	for _, r := range w {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(w) > 0
}

func startsUpper(w string) bool {
	for _, r := range w {
		return unicode.IsUpper(r)
	}
	return false
}

// nounLemma strips regular plural suffixes.
func nounLemma(lw string) string {
	switch {
	case strings.HasSuffix(lw, "ies") && len(lw) > 3:
		return strings.TrimSuffix(lw, "ies") + "y"
	case strings.HasSuffix(lw, "sses"), strings.HasSuffix(lw, "shes"),
		strings.HasSuffix(lw, "ches"), strings.HasSuffix(lw, "xes"),
		strings.HasSuffix(lw, "zes"):
		return strings.TrimSuffix(lw, "es")
	case strings.HasSuffix(lw, "ss"), strings.HasSuffix(lw, "us"),
		strings.HasSuffix(lw, "is"):
		return lw
	case strings.HasSuffix(lw, "s") && len(lw) > 1:
		return strings.TrimSuffix(lw, "s")
	}
	return lw
}

// assignDeps builds a single-clause dependency structure: the first verb is
// the root, auxiliaries and prepositions attach to it, pre-verb noun groups
// become nominal subjects, post-verb noun groups become direct objects, and
// noun groups behind a preposition become prepositional objects. Unlike
// spaCy, prepositional objects attach to the governing verb rather than the
// preposition, which keeps them visible to head-based object scans.
func assignDeps(tokens []Token) {
	root := -1
	for i := range tokens {
		if tokens[i].Pos == PosVerb {
			root = i
			break
		}
	}
	if root == -1 {
		for i := range tokens {
			if tokens[i].Pos == PosAux {
				root = i
				break
			}
		}
	}

	headOr := func(i int) int {
		if root == -1 {
			return i
		}
		return root
	}

	for i := range tokens {
		tok := &tokens[i]
		switch tok.Pos {
		case PosPunct:
			tok.Dep, tok.Head = DepPunct, headOr(i)
		case PosVerb:
			if i == root {
				tok.Dep, tok.Head = DepRoot, i
			} else {
				tok.Dep, tok.Head = DepConj, root
			}
		case PosAux, PosPart:
			tok.Dep, tok.Head = DepAux, nearestVerbAfter(tokens, i, headOr(i))
			if i == root {
				tok.Dep, tok.Head = DepRoot, i
			}
		case PosAdp:
			tok.Dep, tok.Head = DepPrep, nearestVerbBefore(tokens, i, headOr(i))
		case PosAdv:
			tok.Dep, tok.Head = DepAdvmod, headOr(i)
		case PosDet:
			tok.Dep, tok.Head = DepDet, nextNoun(tokens, i, headOr(i))
		case PosCconj, PosNum, PosAdj:
			tok.Dep, tok.Head = DepDep, headOr(i)
		default:
			// Nouns, proper nouns, and pronouns handled by the group pass.
			tok.Dep, tok.Head = DepDep, headOr(i)
		}
	}

	for _, g := range nounGroups(tokens) {
		head := g.head
		for i := g.start; i < head; i++ {
			if tokens[i].Pos == PosNoun || tokens[i].Pos == PosPropn {
				tokens[i].Dep, tokens[i].Head = DepCompound, head
			}
		}
		ht := &tokens[head]
		prev := prevNonDet(tokens, g.start)
		switch {
		case root == -1:
			ht.Dep, ht.Head = DepDep, head
		case prev >= 0 && tokens[prev].Pos == PosAdp:
			ht.Dep = DepPobj
			ht.Head = nearestVerbBefore(tokens, prev, root)
		case head < root:
			ht.Dep, ht.Head = DepNsubj, root
		default:
			ht.Dep = DepDobj
			ht.Head = nearestVerbBefore(tokens, g.start, root)
		}
	}
}

// nounGroup is a run of determiner/adjective/noun tokens headed by its last
// noun or pronoun.
type nounGroup struct {
	start, end, head int // end exclusive
}

func nounGroups(tokens []Token) []nounGroup {
	var groups []nounGroup
	i := 0
	for i < len(tokens) {
		if !chunkMember(tokens[i].Pos) {
			i++
			continue
		}
		start := i
		for i < len(tokens) && chunkMember(tokens[i].Pos) {
			i++
		}
		head := -1
		for j := i - 1; j >= start; j-- {
			if tokens[j].Pos == PosNoun || tokens[j].Pos == PosPropn || tokens[j].Pos == PosPron {
				head = j
				break
			}
		}
		if head >= 0 {
			groups = append(groups, nounGroup{start: start, end: head + 1, head: head})
		}
	}
	return groups
}

func chunkMember(pos string) bool {
	switch pos {
	case PosDet, PosAdj, PosNum, PosNoun, PosPropn, PosPron:
		return true
	}
	return false
}

func nearestVerbBefore(tokens []Token, i, fallback int) int {
	for j := i - 1; j >= 0; j-- {
		if tokens[j].Pos == PosVerb {
			return j
		}
	}
	return fallback
}

func nearestVerbAfter(tokens []Token, i, fallback int) int {
	for j := i + 1; j < len(tokens); j++ {
		if tokens[j].Pos == PosVerb {
			return j
		}
	}
	return nearestVerbBefore(tokens, i, fallback)
}

func nextNoun(tokens []Token, i, fallback int) int {
	for j := i + 1; j < len(tokens); j++ {
		if tokens[j].Pos == PosNoun || tokens[j].Pos == PosPropn {
			return j
		}
	}
	return fallback
}

func prevNonDet(tokens []Token, start int) int {
	for j := start - 1; j >= 0; j-- {
		if tokens[j].Pos == PosDet || tokens[j].Pos == PosAdv {
			continue
		}
		return j
	}
	return -1
}

// nounChunks converts noun groups into chunk spans including leading
// determiners and adjectives.
func nounChunks(tokens []Token) []NounChunk {
	var chunks []NounChunk
	for _, g := range nounGroups(tokens) {
		chunks = append(chunks, NounChunk{Start: g.start, End: g.end, Root: g.head})
	}
	return chunks
}

// entitySpans marks runs of proper nouns as entities.
func entitySpans(tokens []Token) []Entity {
	var ents []Entity
	i := 0
	for i < len(tokens) {
		if tokens[i].Pos != PosPropn {
			i++
			continue
		}
		start := i
		for i < len(tokens) && tokens[i].Pos == PosPropn {
			i++
		}
		ents = append(ents, Entity{Start: start, End: i, Label: "MISC"})
	}
	return ents
}

func wordSet(words ...string) map[string]bool {
	s := make(map[string]bool, len(words))
	for _, w := range words {
		s[w] = true
	}
	return s
}
