package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	s := New(DefaultTokens)
	tests := []struct {
		raw     string
		want    float64
		outcome Outcome
	}{
		{"1234", 1234, Valid},
		{"1,234,567", 1234567, Valid},
		{"  42.5 ", 42.5, Valid},
		{"-3", -3, Valid},
		{"0", 0, Valid},
		{"12 345", 12345, Valid},
		{"", 0, Empty},
		{"   ", 0, Empty},
		{"S", 0, Suppressed},
		{"D", 0, Suppressed},
		{"X", 0, Suppressed},
		{" S ", 0, Suppressed},
		{"(S)", 0, Suppressed},
		{"s", 0, Unparsable},
		{"SD", 0, Unparsable},
		{"n/a", 0, Unparsable},
		{"12(r)", 0, Unparsable},
		{",", 0, Unparsable},
	}
	for _, tt := range tests {
		v, outcome := s.Classify(tt.raw)
		assert.Equal(t, tt.outcome, outcome, "Classify(%q)", tt.raw)
		assert.InDelta(t, tt.want, v, 1e-9, "Classify(%q)", tt.raw)
	}
}

func TestSanitize_SuppressedIsNotZero(t *testing.T) {
	s := New(DefaultTokens)
	for _, tok := range []string{"S", "D", "X"} {
		_, ok := s.Sanitize(tok)
		assert.False(t, ok, "token %q must not produce a value", tok)
	}
	v, ok := s.Sanitize("0")
	assert.True(t, ok)
	assert.Zero(t, v)
}

func TestNew_CustomTokens(t *testing.T) {
	s := New([]string{"NA", " ", ""})
	_, outcome := s.Classify("NA")
	assert.Equal(t, Suppressed, outcome)

	// S is only a suppression token when configured.
	_, outcome = s.Classify("S")
	assert.Equal(t, Unparsable, outcome)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "valid", Valid.String())
	assert.Equal(t, "empty", Empty.String())
	assert.Equal(t, "suppressed", Suppressed.String())
	assert.Equal(t, "unparsable", Unparsable.String())
}

func TestClassify_OverflowIsUnparsable(t *testing.T) {
	s := New(DefaultTokens)
	for _, raw := range []string{"1e400", "-1e400", "1,000e400"} {
		v, outcome := s.Classify(raw)
		assert.Equal(t, Unparsable, outcome, raw)
		assert.Zero(t, v, raw)
	}

	v, outcome := s.Classify("1e-320")
	assert.Equal(t, Valid, outcome)
	assert.Greater(t, v, 0.0)
}
