// pkg/corrupt/families.go
package corrupt

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// Family names a group of related mutation primitives.
type Family string

const (
	// FamilyGrammar groups surface-level grammar and spelling mutations.
	FamilyGrammar Family = "grammar"
	// FamilySemantic groups meaning-altering mutations.
	FamilySemantic Family = "semantic"
	// FamilyQuality groups response-quality degradations.
	FamilyQuality Family = "quality"
	// FamilyLabelFlip is the orthogonal label-corruption mode; it never
	// appears in a strategy profile and never touches text columns.
	FamilyLabelFlip Family = "label_flip"
)

// textFamilies is the fixed draw order for profile sampling. Iterating a map
// would randomize the draw and break seed reproducibility.
var textFamilies = []Family{FamilyGrammar, FamilySemantic, FamilyQuality}

var (
	// ErrInvalidProfile indicates strategy weights that do not form a
	// probability distribution over the three text families.
	ErrInvalidProfile = errors.New("corrupt: strategy profile weights must be non-negative and sum to 1")

	// ErrUnknownProfile indicates an unregistered strategy profile name.
	ErrUnknownProfile = errors.New("corrupt: unknown strategy profile")
)

// Profile assigns a weight to each corruption family.
type Profile struct {
	Name    string
	Weights map[Family]float64
}

// Named strategy profiles.
var profiles = map[string]Profile{
	"balanced": {
		Name: "balanced",
		Weights: map[Family]float64{
			FamilyGrammar:  0.40,
			FamilySemantic: 0.35,
			FamilyQuality:  0.25,
		},
	},
	"grammar_heavy": {
		Name: "grammar_heavy",
		Weights: map[Family]float64{
			FamilyGrammar:  0.60,
			FamilySemantic: 0.25,
			FamilyQuality:  0.15,
		},
	},
	"semantic_heavy": {
		Name: "semantic_heavy",
		Weights: map[Family]float64{
			FamilyGrammar:  0.20,
			FamilySemantic: 0.60,
			FamilyQuality:  0.20,
		},
	},
}

// ProfileByName returns a named strategy profile.
func ProfileByName(name string) (Profile, error) {
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrUnknownProfile, name)
	}
	return p, nil
}

// ProfileNames returns the registered profile names in draw-stable order.
func ProfileNames() []string {
	return []string{"balanced", "grammar_heavy", "semantic_heavy"}
}

// Validate checks that the profile is a probability distribution over the
// three text families.
func (p Profile) Validate() error {
	sum := 0.0
	for _, fam := range textFamilies {
		w, ok := p.Weights[fam]
		if !ok || w < 0 {
			return fmt.Errorf("%w (profile %q)", ErrInvalidProfile, p.Name)
		}
		sum += w
	}
	if len(p.Weights) != len(textFamilies) || math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("%w (profile %q, sum %.6f)", ErrInvalidProfile, p.Name, sum)
	}
	return nil
}

// Draw samples a family according to the profile weights. The profile must
// have been validated first; Draw itself never fails.
func (p Profile) Draw(rng *rand.Rand) Family {
	r := rng.Float64()
	acc := 0.0
	for _, fam := range textFamilies {
		acc += p.Weights[fam]
		if r < acc {
			return fam
		}
	}
	// Floating-point slack: r landed within epsilon of 1.
	return textFamilies[len(textFamilies)-1]
}

// Applied reports the outcome of one family application.
type Applied struct {
	// Primitives lists the primitive names applied, in order.
	Primitives []string
	// Text is the resulting value for the targeted column.
	Text string
}

// namedPrimitive pairs a primitive with its reporting name.
type namedPrimitive struct {
	name string
	fn   func(string, *rand.Rand) string
}

var grammarPrimitives = []namedPrimitive{
	{"typos", InjectTypos},
	{"word_shuffle", ShuffleWords},
	{"punctuation", MutatePunctuation},
	{"grammar_swap", SwapGrammar},
}

var qualityPrimitives = []namedPrimitive{
	{"truncation", Truncate},
	{"duplication", DuplicateSentence},
	{"degenerate_response", DegenerateResponse},
	{"rambling_prefix", PrependRambling},
}

// ApplyFamily dispatches a corruption family onto one text value.
//
//   - grammar: one primitive half the time, two distinct in sequence otherwise.
//   - semantic: exactly one of cross-record replacement (output-like columns
//     with at least two rows only), irrelevant insertion, topic drift, or
//     wrong-context append.
//   - quality: exactly one of truncation, duplication, degenerate
//     replacement, or rambling prefix.
//
// FamilyLabelFlip is not handled here; the injector flips labels directly.
func ApplyFamily(f Family, text string, ctx Context, rng *rand.Rand) Applied {
	switch f {
	case FamilyGrammar:
		return applyGrammar(text, rng)
	case FamilySemantic:
		return applySemantic(text, ctx, rng)
	case FamilyQuality:
		return applyQuality(text, rng)
	default:
		return Applied{Text: text}
	}
}

func applyGrammar(text string, rng *rand.Rand) Applied {
	count := 1
	if rng.Intn(2) == 1 {
		count = 2
	}
	order := rng.Perm(len(grammarPrimitives))[:count]

	applied := Applied{Text: text}
	for _, i := range order {
		prim := grammarPrimitives[i]
		applied.Text = prim.fn(applied.Text, rng)
		applied.Primitives = append(applied.Primitives, prim.name)
	}
	return applied
}

func applySemantic(text string, ctx Context, rng *rand.Rand) Applied {
	crossEligible := ctx.OutputLike && ctx.Original != nil && ctx.Original.RowCount() >= 2

	options := 3
	if crossEligible {
		options = 4
	}

	switch rng.Intn(options) {
	case 0:
		return Applied{Primitives: []string{"irrelevant_content"}, Text: InsertIrrelevant(text, rng)}
	case 1:
		return Applied{Primitives: []string{"topic_drift"}, Text: DriftTopic(text, rng)}
	case 2:
		return Applied{Primitives: []string{"wrong_context"}, Text: AppendWrongContext(text, rng)}
	default:
		replacement, ok := ReplaceCrossRecord(ctx, rng)
		if !ok {
			// Unreachable when crossEligible held; keep a safe fallback.
			return Applied{Primitives: []string{"irrelevant_content"}, Text: InsertIrrelevant(text, rng)}
		}
		return Applied{Primitives: []string{"cross_record"}, Text: replacement}
	}
}

func applyQuality(text string, rng *rand.Rand) Applied {
	prim := qualityPrimitives[rng.Intn(len(qualityPrimitives))]
	return Applied{Primitives: []string{prim.name}, Text: prim.fn(text, rng)}
}
