// pkg/corrupt/primitives_test.go
package corrupt

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datainf-eval/noisegen/pkg/model"
)

func TestNewRandIsDeterministic(t *testing.T) {
	a := NewRand(7)
	b := NewRand(7)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Int63(), b.Int63())
	}
}

func TestNewRandZeroSelectsDefaultSeed(t *testing.T) {
	a := NewRand(0)
	b := NewRand(defaultSeed)
	assert.Equal(t, a.Int63(), b.Int63())
}

func TestInjectTyposAlwaysChangesText(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	for seed := int64(1); seed <= 30; seed++ {
		out := InjectTypos(text, NewRand(seed))
		assert.NotEqual(t, text, out, "seed %d", seed)
		assert.Len(t, strings.Fields(out), 9)
	}
}

func TestInjectTyposEmptyTextIsNoop(t *testing.T) {
	assert.Equal(t, "", InjectTypos("", NewRand(1)))
}

func TestTypoWordUsesCommonMisspellings(t *testing.T) {
	rng := NewRand(3)
	out := typoWord("The", rng)
	assert.Contains(t, []string{"Teh", "Hte", "Te"}, out)
	assert.True(t, unicode.IsUpper([]rune(out)[0]))
}

func TestShuffleWordsTwoWordSentenceSwaps(t *testing.T) {
	assert.Equal(t, "world hello", ShuffleWords("hello world", NewRand(1)))
}

func TestShuffleWordsSingleWordIsNoop(t *testing.T) {
	assert.Equal(t, "hello", ShuffleWords("hello", NewRand(1)))
}

func TestMutatePunctuationIsDeterministic(t *testing.T) {
	text := "Wait, is this right? Yes."
	first := MutatePunctuation(text, NewRand(5))
	second := MutatePunctuation(text, NewRand(5))
	assert.Equal(t, first, second)

	candidates := []string{
		strings.Replace(text, ".", "!", 1),
		strings.Replace(text, ",", "", 1),
		strings.Replace(text, "?", ".", 1),
		text + "???",
		strings.Replace(text, " ", "  ", 1),
		strings.Replace(text, ".", "..", 1),
	}
	assert.Contains(t, candidates, first)
}

func TestSwapGrammarSwapsFirstPair(t *testing.T) {
	out := SwapGrammar("This is fine.", NewRand(1))
	assert.Equal(t, "This are fine.", out)
}

func TestSwapGrammarKeepsCapitalization(t *testing.T) {
	out := SwapGrammar("Is this fine?", NewRand(1))
	assert.Equal(t, "Are this fine?", out)
}

func TestSwapGrammarInsertsContradictionWhenNoPairMatches(t *testing.T) {
	out := SwapGrammar("Quick brown fox", NewRand(1))
	assert.Equal(t, "Quick brown always never fox", out)
}

func TestTruncateShortTextBecomesIncompleteMarker(t *testing.T) {
	assert.Equal(t, incompleteMarker, Truncate("short answer", NewRand(1)))
}

func TestTruncateCutsBetweenThirds(t *testing.T) {
	text := strings.Repeat("abcdef ", 10) // 70 chars
	out := Truncate(text, NewRand(9))

	require.True(t, strings.HasSuffix(out, "..."))
	kept := strings.TrimSuffix(out, "...")
	assert.True(t, strings.HasPrefix(text, kept))
	assert.GreaterOrEqual(t, len(kept), len(text)/3)
	assert.LessOrEqual(t, len(kept), 2*len(text)/3+1)
}

func TestDuplicateSentenceAppendsFirstSentence(t *testing.T) {
	out := DuplicateSentence("A b. C d.", NewRand(1))
	assert.Equal(t, "A b. C d. A b.", out)
}

func TestDuplicateSentenceWithoutSegmentsDoublesText(t *testing.T) {
	out := DuplicateSentence("no periods here", NewRand(1))
	assert.Equal(t, "no periods here no periods here", out)
}

func TestDegenerateResponseDrawsFromPool(t *testing.T) {
	out := DegenerateResponse("a long and careful explanation", NewRand(2))
	assert.Contains(t, degenerateResponses, out)
}

func TestPrependRambling(t *testing.T) {
	out := PrependRambling("The answer is 4.", NewRand(1))
	assert.True(t, strings.HasPrefix(out, ramblingPrefix))
	assert.True(t, strings.HasSuffix(out, "The answer is 4."))
}

func TestAppendWrongContext(t *testing.T) {
	out := AppendWrongContext("The answer is 4.", NewRand(1))
	assert.True(t, strings.HasSuffix(out, wrongContextPhrase))
}

func TestInsertIrrelevantAddsPoolSentence(t *testing.T) {
	text := "Photosynthesis converts light into energy."
	out := InsertIrrelevant(text, NewRand(4))

	assert.Contains(t, out, text)
	found := false
	for _, sentence := range irrelevantPool {
		if strings.Contains(out, sentence) {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDriftTopicReplacesLastSentence(t *testing.T) {
	out := DriftTopic("First part. Second part. UNIQUEFINAL", NewRand(6))
	assert.NotContains(t, out, "UNIQUEFINAL")
	assert.Contains(t, out, "First part. Second part. ")
}

func TestReplaceCrossRecord(t *testing.T) {
	table, err := model.NewTable(
		[]string{"output"},
		[]model.Row{
			{"output": "row zero"},
			{"output": "row one"},
			{"output": "row two"},
		},
	)
	require.NoError(t, err)

	ctx := Context{Original: table, RowIndex: 1, Column: "output", OutputLike: true}
	out, ok := ReplaceCrossRecord(ctx, NewRand(1))
	require.True(t, ok)
	assert.NotEqual(t, "row one", out)
	assert.Contains(t, []string{"row zero", "row two"}, out)
}

func TestReplaceCrossRecordNeedsTwoRows(t *testing.T) {
	table, err := model.NewTable([]string{"output"}, []model.Row{{"output": "only"}})
	require.NoError(t, err)

	_, ok := ReplaceCrossRecord(Context{Original: table, RowIndex: 0, Column: "output"}, NewRand(1))
	assert.False(t, ok)
}

func TestForceFallback(t *testing.T) {
	assert.Equal(t, "hellz", ForceFallback("hello"))
	assert.Equal(t, "buzq", ForceFallback("buzz"))
	assert.Equal(t, "!", ForceFallback(""))
	assert.Equal(t, "   !", ForceFallback("   "))
}

func TestForceFallbackAlwaysDiffers(t *testing.T) {
	for _, s := range []string{"a", "z", "word", "two words", "trailing "} {
		assert.NotEqual(t, s, ForceFallback(s))
	}
}
