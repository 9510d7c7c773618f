// pkg/corrupt/pools.go
package corrupt

// commonTypos maps frequently misspelled words to precomputed misspellings.
// Substitution preserves the original capitalization pattern.
var commonTypos = map[string][]string{
	"the":  {"teh", "hte", "te"},
	"and":  {"adn", "nad", "an"},
	"you":  {"yuo", "yu", "oyu"},
	"for":  {"fro", "ofr", "fo"},
	"are":  {"aer", "rae", "ar"},
	"with": {"wiht", "whit", "wit"},
	"this": {"thsi", "tihs", "ths"},
}

// irrelevantPool holds the off-topic sentences used by irrelevant-content
// insertion and topic drift. The analyzer matches against these fragments to
// classify a change as semantic, so additions here must stay in sync with it.
var irrelevantPool = []string{
	"By the way, did you know that cats sleep 12-16 hours a day?",
	"Speaking of pizza, I love pineapple on it.",
	"Random fact: The sky is blue because of Rayleigh scattering.",
	"Unrelated: My favorite color is purple.",
	"Fun fact: Bananas are berries but strawberries aren't.",
}

// wrongContextPhrase is appended by the wrong-context semantic primitive.
const wrongContextPhrase = "As mentioned in the previous chapter, the results were inconclusive."

// degenerateResponses are the canned low-information replacements used by the
// quality family.
var degenerateResponses = []string{
	"I don't know.",
	"Yes.",
	"No.",
	"Maybe.",
	"It depends.",
}

// ramblingPrefix is prepended wholesale by the rambling quality primitive.
const ramblingPrefix = "Okay, so, um, let me think about this one for a second. Basically, "

// contradictionInsert is the two-word contradiction forced into a text when
// the grammar-swap primitive finds none of its target words.
const contradictionInsert = "always never"

// incompleteMarker replaces strings too short to truncate meaningfully.
const incompleteMarker = "[incomplete]"

// fallbackMarker is force-appended when the guaranteed fallback mutation has
// to change an empty or degenerate text cell.
const fallbackMarker = "!"

// grammarPairs are the antonymous verb/article pairs scanned by grammar-swap.
// Both directions are listed so a single pass can match either side.
var grammarPairs = map[string]string{
	"is":   "are",
	"are":  "is",
	"was":  "were",
	"were": "was",
	"has":  "have",
	"have": "has",
	"a":    "an",
	"an":   "a",
}

// keyboardNeighbors maps each lowercase letter to horizontally adjacent keys
// on a QWERTY layout, for keyboard-slip typo substitution.
var keyboardNeighbors = map[rune][]rune{
	'q': {'w'}, 'w': {'q', 'e'}, 'e': {'w', 'r'}, 'r': {'e', 't'},
	't': {'r', 'y'}, 'y': {'t', 'u'}, 'u': {'y', 'i'}, 'i': {'u', 'o'},
	'o': {'i', 'p'}, 'p': {'o'},
	'a': {'s'}, 's': {'a', 'd'}, 'd': {'s', 'f'}, 'f': {'d', 'g'},
	'g': {'f', 'h'}, 'h': {'g', 'j'}, 'j': {'h', 'k'}, 'k': {'j', 'l'},
	'l': {'k'},
	'z': {'x'}, 'x': {'z', 'c'}, 'c': {'x', 'v'}, 'v': {'c', 'b'},
	'b': {'v', 'n'}, 'n': {'b', 'm'}, 'm': {'n'},
}

// IrrelevantFragments exposes the off-topic pool (plus the wrong-context
// phrase) for the analyzer's semantic-change heuristic.
func IrrelevantFragments() []string {
	out := make([]string, 0, len(irrelevantPool)+1)
	out = append(out, irrelevantPool...)
	out = append(out, wrongContextPhrase)
	return out
}

// ContradictionMarker exposes the forced contradiction fragment for the
// analyzer's grammar-change heuristic.
func ContradictionMarker() string {
	return contradictionInsert
}

// IncompleteMarker exposes the wholesale-truncation replacement string.
func IncompleteMarker() string {
	return incompleteMarker
}
