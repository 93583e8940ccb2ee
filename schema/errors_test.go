package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teranos/typedoc/errors"
)

func TestSummarize(t *testing.T) {
	keys := map[string]any{}
	for _, k := range []string{"j", "i", "h", "g", "f", "e", "d", "c", "b", "a"} {
		keys[k] = nil
	}

	tests := []struct {
		name string
		raw  any
		max  int
		want string
	}{
		{name: "null", raw: nil, max: 8, want: "null"},
		{name: "string", raw: "abc", max: 8, want: `"abc"`},
		{name: "long string", raw: strings.Repeat("x", 100), max: 8, want: `"` + strings.Repeat("x", 80) + `..."`},
		{name: "int", raw: int64(42), max: 8, want: "42"},
		{name: "list", raw: []any{1, 2, 3}, max: 8, want: "list of len=3"},
		{name: "small mapping", raw: map[string]any{"b": 1, "a": 2}, max: 8, want: "{[a, b]}"},
		{name: "large mapping", raw: keys, max: 8, want: "{[a, b, c, d, e, f, g, h, ...]}"},
		{name: "unbounded mapping", raw: keys, max: 0, want: "{[a, b, c, d, e, f, g, h, i, j]}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.raw, tt.max))
		})
	}
}

func TestValidationErrorLocation(t *testing.T) {
	assert.Equal(t, "Owner.field", (&ValidationError{Owner: "Owner", Field: "field"}).Location())
	assert.Equal(t, "[3]", (&ValidationError{Field: "[3]"}).Location())
	assert.Equal(t, "", (&ValidationError{}).Location())
}

func TestErrorsMatchSentinels(t *testing.T) {
	v := mismatch(Int, "a", DefaultSummaryKeys)
	u := unsupported("Type", "type", "tuple", nil)
	c := construction("ArrayType", "missing required fields", []string{"elementType"}, nil)

	assert.True(t, errors.Is(v, errors.ErrValidation))
	assert.True(t, errors.Is(u, errors.ErrUnsupportedKind))
	assert.True(t, errors.Is(c, errors.ErrConstruction))
	assert.False(t, errors.Is(v, errors.ErrConstruction))
	assert.Empty(t, errors.GetAllHints(u), "no hint without supported kinds")

	wrapped := errors.Wrap(c, "decode")
	var ce *ConstructionError
	assert.True(t, errors.As(wrapped, &ce))
	assert.Equal(t, []string{"elementType"}, ce.Fields)
}

func TestFieldPathOfPlainError(t *testing.T) {
	assert.Nil(t, FieldPath(errors.New("boom")))
	assert.Nil(t, FieldPath(nil))
}
