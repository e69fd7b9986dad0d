package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresets(t *testing.T) {
	tt := []struct {
		name   string
		set    Set
		window int
	}{
		{name: "basic", set: Set{Beyond3Sigma, SevenOnOneSide}, window: 7},
		{name: "pmi", set: Set{Beyond3Sigma, EightOnOneSide}, window: 8},
		{name: "weco", set: Set{Beyond3Sigma, TwoOfThreeBeyond2Sigma, FourOfFiveBeyond1Sigma, EightOnOneSide, SixTrending, FourteenUpDown}, window: 14},
		{name: "nelson", set: Set{Beyond3Sigma, NineOnOneSide, SixTrending, FourteenUpDown, TwoOfThreeBeyond2Sigma, FourOfFiveBeyond1Sigma, FifteenBelow1Sigma, EightBeyond1SigmaBothSides}, window: 15},
		{name: "all", set: Set(Rules()), window: 15},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			s, err := ParseSet(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.set, s)
			assert.Equal(t, tc.window, s.MaxWindow())
		})
	}
	assert.Len(t, All(), 10)
}

func TestParseSet(t *testing.T) {
	tt := []struct {
		name string
		in   string
		exp  Set
		err  bool
	}{
		{name: "preset any case", in: " WECO ", exp: WECO()},
		{name: "slugs", in: "beyond-3sigma,7-one-side", exp: Set{Beyond3Sigma, SevenOnOneSide}},
		{name: "canonical names", in: "6 trending, 2 of 3 beyond 2*sigma", exp: Set{SixTrending, TwoOfThreeBeyond2Sigma}},
		{name: "duplicates removed", in: "6-trending,6-trending,14-up-down", exp: Set{SixTrending, FourteenUpDown}},
		{name: "trailing comma", in: "15-below-1sigma,", exp: Set{FifteenBelow1Sigma}},
		{name: "unknown", in: "beyond-4sigma", err: true},
		{name: "empty", in: "", err: true},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			s, err := ParseSet(tc.in)
			if tc.err {
				assert.ErrorIs(t, err, ErrUnknownRule)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.exp, s)
		})
	}
}

func TestNewSet(t *testing.T) {
	s, err := NewSet(SixTrending, Beyond3Sigma, SixTrending)
	require.NoError(t, err)
	assert.Equal(t, Set{SixTrending, Beyond3Sigma}, s)

	_, err = NewSet(Beyond3Sigma, Rule(42))
	assert.ErrorIs(t, err, ErrUnknownRule)
}

func TestUnion(t *testing.T) {
	u := Basic().Union(PMI())
	assert.Equal(t, Set{Beyond3Sigma, SevenOnOneSide, EightOnOneSide}, u)
	assert.Equal(t, Set{Beyond3Sigma, SevenOnOneSide}, Basic())
	assert.Equal(t, "1 beyond 3*sigma, 7 on one side", Basic().String())
}

func TestRuleNames(t *testing.T) {
	for _, r := range Rules() {
		t.Run(r.Slug(), func(t *testing.T) {
			byName, err := ParseRule(r.String())
			require.NoError(t, err)
			assert.Equal(t, r, byName)

			bySlug, err := ParseRule(r.Slug())
			require.NoError(t, err)
			assert.Equal(t, r, bySlug)

			b, err := r.MarshalText()
			require.NoError(t, err)
			var back Rule
			require.NoError(t, back.UnmarshalText(b))
			assert.Equal(t, r, back)
		})
	}
	_, err := Rule(0).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownRule)
	assert.Equal(t, "Rule(0)", Rule(0).String())
}
