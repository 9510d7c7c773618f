// pkg/corrupt/primitives.go
//
// Stateless text-mutating primitives. Each takes a string (plus the run's
// RNG) and returns a new string. A primitive never returns its input
// unchanged except in the short-circuit cases documented per function; the
// injector verifies every record afterwards and applies ForceFallback when a
// draw happens to land on a no-op.
package corrupt

import (
	"math/rand"
	"sort"
	"strings"
	"unicode"

	"github.com/datainf-eval/noisegen/pkg/model"
)

// Context carries what a primitive may need beyond the text itself.
// Original is the pre-corruption table; cross-record replacement reads it and
// never the in-progress corrupted one.
type Context struct {
	Original   *model.Table
	RowIndex   int
	Column     string
	OutputLike bool
}

// InjectTypos misspells 1-3 words. Words present in the common-misspelling
// table get a precomputed misspelling with the original capitalization
// pattern; other words get an adjacent transposition, a random substitution,
// or a keyboard-slip, with a fixed-position replacement forced when the
// chosen edit turns out to be a no-op.
// Short-circuit: text with no words is returned unchanged.
func InjectTypos(s string, rng *rand.Rand) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return s
	}

	count := 1 + rng.Intn(3)
	if count > len(words) {
		count = len(words)
	}
	targets := rng.Perm(len(words))[:count]
	sort.Ints(targets)

	for _, i := range targets {
		words[i] = typoWord(words[i], rng)
	}
	return strings.Join(words, " ")
}

// typoWord produces a misspelled variant of a single word.
func typoWord(word string, rng *rand.Rand) string {
	if alts, ok := commonTypos[strings.ToLower(word)]; ok {
		return matchCapitalization(word, alts[rng.Intn(len(alts))])
	}

	runes := []rune(word)
	if len(runes) < 2 {
		return forceCharReplace(word)
	}

	switch rng.Intn(3) {
	case 0:
		// Adjacent-character transposition.
		i := rng.Intn(len(runes) - 1)
		runes[i], runes[i+1] = runes[i+1], runes[i]
	case 1:
		// Random single-character substitution, interior when possible.
		idx := 0
		if len(runes) > 2 {
			idx = 1 + rng.Intn(len(runes)-2)
		}
		runes[idx] = rune('a' + rng.Intn(26))
	default:
		// Keyboard-adjacent-key substitution.
		var candidates []int
		for i, r := range runes {
			if _, ok := keyboardNeighbors[unicode.ToLower(r)]; ok {
				candidates = append(candidates, i)
			}
		}
		if len(candidates) > 0 {
			i := candidates[rng.Intn(len(candidates))]
			neighbors := keyboardNeighbors[unicode.ToLower(runes[i])]
			runes[i] = neighbors[rng.Intn(len(neighbors))]
		}
	}

	out := string(runes)
	if out == word {
		return forceCharReplace(word)
	}
	return out
}

// forceCharReplace changes a fixed position so the word always differs:
// the second character when the word has one, otherwise the first.
func forceCharReplace(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word + "x"
	}
	idx := 0
	if len(runes) > 1 {
		idx = 1
	}
	if runes[idx] == 'x' {
		runes[idx] = 'z'
	} else {
		runes[idx] = 'x'
	}
	return string(runes)
}

// matchCapitalization reshapes a replacement word to the capitalization
// pattern of the original: all-upper, title-case, or lowercase.
func matchCapitalization(original, replacement string) string {
	if original == strings.ToUpper(original) && strings.ToLower(original) != original {
		return strings.ToUpper(replacement)
	}
	runes := []rune(original)
	if len(runes) > 0 && unicode.IsUpper(runes[0]) {
		rep := []rune(replacement)
		rep[0] = unicode.ToUpper(rep[0])
		return string(rep)
	}
	return replacement
}

// ShuffleWords picks one sentence and scrambles its word order: interior
// words for sentences longer than 4 words, everything for 3-4 words, a swap
// for exactly 2.
// Short-circuit: a sentence of 0 or 1 words is returned unchanged, and a
// shuffle can land on the identity permutation; callers must detect both.
func ShuffleWords(s string, rng *rand.Rand) string {
	sentences := strings.Split(s, ". ")
	idx := rng.Intn(len(sentences))
	words := strings.Fields(sentences[idx])

	switch {
	case len(words) > 4:
		shuffleStrings(words[1:len(words)-1], rng)
	case len(words) >= 3:
		shuffleStrings(words, rng)
	case len(words) == 2:
		words[0], words[1] = words[1], words[0]
	default:
		return s
	}

	sentences[idx] = strings.Join(words, " ")
	return strings.Join(sentences, ". ")
}

func shuffleStrings(a []string, rng *rand.Rand) {
	for i := len(a) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// MutatePunctuation applies one randomly chosen single-occurrence edit.
// Short-circuit: edits targeting a character the text does not contain are
// no-ops; callers must detect this.
func MutatePunctuation(s string, rng *rand.Rand) string {
	switch rng.Intn(6) {
	case 0:
		return strings.Replace(s, ".", "!", 1)
	case 1:
		return strings.Replace(s, ",", "", 1)
	case 2:
		return strings.Replace(s, "?", ".", 1)
	case 3:
		return s + "???"
	case 4:
		return strings.Replace(s, " ", "  ", 1)
	default:
		return strings.Replace(s, ".", "..", 1)
	}
}

// SwapGrammar replaces the first case-insensitive occurrence of a word from
// the antonymous pair set (is/are, was/were, has/have, a/an) with its pair.
// When none occurs, two contradictory words are inserted after the second
// token instead, so the primitive always changes non-trivial text.
func SwapGrammar(s string, rng *rand.Rand) string {
	_ = rng // the swap itself is position-determined, not drawn

	tokens := strings.Split(s, " ")
	for i, tok := range tokens {
		core := strings.TrimFunc(tok, unicode.IsPunct)
		pair, ok := grammarPairs[strings.ToLower(core)]
		if !ok || core == "" {
			continue
		}
		tokens[i] = strings.Replace(tok, core, matchCapitalization(core, pair), 1)
		return strings.Join(tokens, " ")
	}

	// No swappable word found: force a contradiction after the second token.
	if len(tokens) >= 2 {
		rest := append([]string{contradictionInsert}, tokens[2:]...)
		tokens = append(tokens[:2:2], rest...)
		return strings.Join(tokens, " ")
	}
	return s + " " + contradictionInsert
}

// InsertIrrelevant prepends or appends one off-topic sentence from the pool.
func InsertIrrelevant(s string, rng *rand.Rand) string {
	sentence := irrelevantPool[rng.Intn(len(irrelevantPool))]
	if rng.Intn(2) == 0 {
		return sentence + " " + s
	}
	return s + " " + sentence
}

// DriftTopic replaces the last sentence of a multi-sentence text with an
// off-topic pool sentence; single-sentence text gets the sentence appended.
func DriftTopic(s string, rng *rand.Rand) string {
	sentence := irrelevantPool[rng.Intn(len(irrelevantPool))]
	sentences := strings.Split(s, ". ")
	if len(sentences) > 1 {
		sentences[len(sentences)-1] = sentence
		return strings.Join(sentences, ". ")
	}
	return s + " " + sentence
}

// AppendWrongContext appends the fixed contradictory-context phrase.
func AppendWrongContext(s string, rng *rand.Rand) string {
	_ = rng
	return s + " " + wrongContextPhrase
}

// ReplaceCrossRecord substitutes the value of the same column from a
// different, randomly chosen row of the original table. The second result is
// false when the table has fewer than two rows.
func ReplaceCrossRecord(ctx Context, rng *rand.Rand) (string, bool) {
	if ctx.Original == nil || ctx.Original.RowCount() < 2 {
		return "", false
	}
	j := pickOther(ctx.Original.RowCount(), ctx.RowIndex, rng)
	return ctx.Original.CellString(j, ctx.Column), true
}

// Truncate cuts the text between one third and two thirds of its length and
// appends an ellipsis. Text shorter than 20 characters is replaced wholesale
// with the fixed incomplete marker.
func Truncate(s string, rng *rand.Rand) string {
	runes := []rune(s)
	if len(runes) < 20 {
		return incompleteMarker
	}
	third := len(runes) / 3
	cut := third + rng.Intn(third+1)
	return string(runes[:cut]) + "..."
}

// DuplicateSentence appends a copy of the first sentence, or of the whole
// text when it cannot be segmented.
func DuplicateSentence(s string, rng *rand.Rand) string {
	_ = rng
	if idx := strings.Index(s, ". "); idx >= 0 {
		return s + " " + s[:idx+1]
	}
	return s + " " + s
}

// DegenerateResponse replaces the text with a canned low-information answer.
func DegenerateResponse(s string, rng *rand.Rand) string {
	return degenerateResponses[rng.Intn(len(degenerateResponses))]
}

// PrependRambling prepends the fixed filler phrase.
func PrependRambling(s string, rng *rand.Rand) string {
	_ = rng
	return ramblingPrefix + s
}

// ForceFallback guarantees an observable change: it flips the terminal
// character of the last word, or appends the fallback marker when the text is
// empty or all whitespace. Used by the injector when a drawn primitive
// produced no difference.
func ForceFallback(s string) string {
	if strings.TrimSpace(s) == "" {
		return s + fallbackMarker
	}
	runes := []rune(s)
	last := len(runes) - 1
	for last > 0 && unicode.IsSpace(runes[last]) {
		last--
	}
	if runes[last] == 'z' {
		runes[last] = 'q'
	} else {
		runes[last] = 'z'
	}
	return string(runes)
}
