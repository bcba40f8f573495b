package nlp

import "strings"

// english is the standard English stopword list. It is part of the engine
// contract: available for filtering, read-only after init.
var english = wordSet(
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you",
	"your", "yours", "yourself", "yourselves", "he", "him", "his", "himself",
	"she", "her", "hers", "herself", "it", "its", "itself", "they", "them",
	"their", "theirs", "themselves", "what", "which", "who", "whom", "this",
	"that", "these", "those", "am", "is", "are", "was", "were", "be", "been",
	"being", "have", "has", "had", "having", "do", "does", "did", "doing",
	"a", "an", "the", "and", "but", "if", "or", "because", "as", "until",
	"while", "of", "at", "by", "for", "with", "about", "against", "between",
	"into", "through", "during", "before", "after", "above", "below", "to",
	"from", "up", "down", "in", "out", "on", "off", "over", "under", "again",
	"further", "then", "once", "here", "there", "when", "where", "why",
	"how", "all", "any", "both", "each", "few", "more", "most", "other",
	"some", "such", "no", "nor", "not", "only", "own", "same", "so", "than",
	"too", "very", "s", "t", "can", "will", "just", "don", "should", "now",
)

// IsStopword reports whether the word is an English stopword.
func IsStopword(word string) bool {
	return english[strings.ToLower(word)]
}

// Stopwords returns a copy of the English stopword set.
func Stopwords() map[string]bool {
	out := make(map[string]bool, len(english))
	for w := range english {
		out[w] = true
	}
	return out
}
