// pkg/corrupt/families_test.go
package corrupt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datainf-eval/noisegen/pkg/model"
)

func TestProfileByName(t *testing.T) {
	for _, name := range ProfileNames() {
		p, err := ProfileByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, p.Name)
		assert.NoError(t, p.Validate(), name)
	}

	_, err := ProfileByName("chaos")
	assert.True(t, errors.Is(err, ErrUnknownProfile))
}

func TestProfileValidateRejectsBadWeights(t *testing.T) {
	cases := map[string]map[Family]float64{
		"bad_sum":        {FamilyGrammar: 0.5, FamilySemantic: 0.3, FamilyQuality: 0.1},
		"negative":       {FamilyGrammar: 1.2, FamilySemantic: -0.1, FamilyQuality: -0.1},
		"missing_family": {FamilyGrammar: 0.5, FamilySemantic: 0.5},
		"extra_family":   {FamilyGrammar: 0.4, FamilySemantic: 0.3, FamilyQuality: 0.3, FamilyLabelFlip: 0},
	}
	for name, weights := range cases {
		p := Profile{Name: name, Weights: weights}
		assert.True(t, errors.Is(p.Validate(), ErrInvalidProfile), name)
	}
}

func TestDrawHonorsDegenerateWeights(t *testing.T) {
	p := Profile{
		Name:    "all_quality",
		Weights: map[Family]float64{FamilyGrammar: 0, FamilySemantic: 0, FamilyQuality: 1},
	}
	require.NoError(t, p.Validate())

	rng := NewRand(11)
	for i := 0; i < 50; i++ {
		assert.Equal(t, FamilyQuality, p.Draw(rng))
	}
}

func TestDrawIsDeterministic(t *testing.T) {
	p, err := ProfileByName("balanced")
	require.NoError(t, err)

	a := NewRand(17)
	b := NewRand(17)
	for i := 0; i < 100; i++ {
		assert.Equal(t, p.Draw(a), p.Draw(b))
	}
}

func TestApplyGrammarUsesOneOrTwoDistinctPrimitives(t *testing.T) {
	text := "The model is trained on clean data. It performs well."
	for seed := int64(1); seed <= 20; seed++ {
		applied := ApplyFamily(FamilyGrammar, text, Context{}, NewRand(seed))

		require.NotEmpty(t, applied.Primitives, "seed %d", seed)
		assert.LessOrEqual(t, len(applied.Primitives), 2)
		if len(applied.Primitives) == 2 {
			assert.NotEqual(t, applied.Primitives[0], applied.Primitives[1])
		}
		for _, name := range applied.Primitives {
			assert.Contains(t, []string{"typos", "word_shuffle", "punctuation", "grammar_swap"}, name)
		}
	}
}

func TestApplySemanticWithoutCrossEligibility(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		applied := ApplyFamily(FamilySemantic, "Some instruction text.", Context{}, NewRand(seed))

		require.Len(t, applied.Primitives, 1)
		assert.Contains(t,
			[]string{"irrelevant_content", "topic_drift", "wrong_context"},
			applied.Primitives[0])
		assert.NotEqual(t, "Some instruction text.", applied.Text)
	}
}

func TestApplySemanticCrossRecordOnOutputColumns(t *testing.T) {
	table, err := model.NewTable(
		[]string{"output"},
		[]model.Row{{"output": "first answer"}, {"output": "second answer"}},
	)
	require.NoError(t, err)

	ctx := Context{Original: table, RowIndex: 0, Column: "output", OutputLike: true}

	sawCross := false
	for seed := int64(1); seed <= 200; seed++ {
		applied := ApplyFamily(FamilySemantic, "first answer", ctx, NewRand(seed))
		require.Len(t, applied.Primitives, 1)
		if applied.Primitives[0] == "cross_record" {
			sawCross = true
			assert.Equal(t, "second answer", applied.Text)
		}
	}
	assert.True(t, sawCross)
}

func TestApplyQualityUsesExactlyOnePrimitive(t *testing.T) {
	text := "A reasonably long answer that explains the reasoning in detail."
	for seed := int64(1); seed <= 20; seed++ {
		applied := ApplyFamily(FamilyQuality, text, Context{}, NewRand(seed))

		require.Len(t, applied.Primitives, 1)
		assert.Contains(t,
			[]string{"truncation", "duplication", "degenerate_response", "rambling_prefix"},
			applied.Primitives[0])
		assert.NotEqual(t, text, applied.Text)
	}
}

func TestApplyFamilyLabelFlipIsNoopForText(t *testing.T) {
	applied := ApplyFamily(FamilyLabelFlip, "unchanged", Context{}, NewRand(1))
	assert.Equal(t, "unchanged", applied.Text)
	assert.Empty(t, applied.Primitives)
}
