// pkg/policy/policy_test.go
package policy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKnownDatasets(t *testing.T) {
	for _, name := range []string{"alpaca", "gsm8k", "sst2", "mrpc"} {
		pol, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, pol.Name)
		assert.NoError(t, pol.Validate(), name)
	}
}

func TestLookupUnknownDataset(t *testing.T) {
	_, err := Lookup("imagenet")
	assert.True(t, errors.Is(err, ErrUnknownDataset))
}

func TestNamesAreSorted(t *testing.T) {
	assert.Equal(t, []string{"alpaca", "gsm8k", "mrpc", "sst2"}, Names())
}

func TestAlpacaPolicyShape(t *testing.T) {
	pol, err := Lookup("alpaca")
	require.NoError(t, err)

	assert.Equal(t, []string{"instruction", "input", "output"}, pol.TextColumns)
	assert.Empty(t, pol.LabelColumns)
	assert.False(t, pol.SupportsLabelFlip)
	assert.Equal(t, "output", pol.OutputColumn)
	assert.Equal(t, "", pol.FirstLabelColumn())
}

func TestGSM8KPreservesAnswerWithoutFlip(t *testing.T) {
	pol, err := Lookup("gsm8k")
	require.NoError(t, err)

	assert.True(t, pol.PreserveLabels)
	assert.False(t, pol.SupportsLabelFlip)
	assert.Equal(t, "answer", pol.FirstLabelColumn())
}

func TestBinaryFlipIsBijective(t *testing.T) {
	for _, name := range []string{"sst2", "mrpc"} {
		pol, err := Lookup(name)
		require.NoError(t, err, name)
		require.True(t, pol.SupportsLabelFlip, name)

		flipped, ok := pol.FlipLabel("0")
		assert.True(t, ok)
		assert.Equal(t, "1", flipped)

		back, ok := pol.FlipLabel(flipped)
		assert.True(t, ok)
		assert.Equal(t, "0", back)

		_, ok = pol.FlipLabel("2")
		assert.False(t, ok)
	}
}

func TestValidateRejectsNonBijectiveFlip(t *testing.T) {
	pol := Policy{
		Name:              "broken",
		TextColumns:       []string{"text"},
		LabelColumns:      []string{"label"},
		SupportsLabelFlip: true,
		LabelFlip:         map[string]string{"0": "1", "2": "1"},
	}
	assert.Error(t, pol.Validate())
}
