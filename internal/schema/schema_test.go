package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		in   string
		want TypeTag
	}{
		{"boolean", Scalar(KindBoolean)},
		{"string", Scalar(KindString)},
		{"integer", Scalar(KindInteger)},
		{"decimal", Scalar(KindDecimal)},
		{"datetime", Scalar(KindDateTime)},
		{"belongs_to", Scalar(KindBelongsTo)},
		{"array(enum)", Array(Scalar(KindEnum))},
		{"array(array(string))", Array(Array(Scalar(KindString)))},
		{" array( enum ) ", Array(Scalar(KindEnum))},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTag(tt.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestParseTagErrors(t *testing.T) {
	for _, in := range []string{"", "widget", "array", "array(", "array(bogus)", "array(string"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseTag(in)
			assert.Error(t, err)
		})
	}
}

func TestTypeTagString(t *testing.T) {
	assert.Equal(t, "integer", Scalar(KindInteger).String())
	assert.Equal(t, "array(enum)", Array(Scalar(KindEnum)).String())
	assert.Equal(t, "array(array(date))", Array(Array(Scalar(KindDate))).String())
}

func TestConstraintsEnumValues(t *testing.T) {
	c := Constraints{ConstraintValues: []string{"draft", "published", "archived"}}
	assert.Equal(t, []string{"draft", "published", "archived"}, c.EnumValues())
	assert.True(t, c.HasEnumValues())

	anyVals := Constraints{ConstraintValues: []any{"a", "b"}}
	assert.Equal(t, []string{"a", "b"}, anyVals.EnumValues())

	assert.Nil(t, Constraints(nil).EnumValues())
	assert.False(t, Constraints{}.HasEnumValues())
}

func TestSchemaOrderAndLookup(t *testing.T) {
	s, err := New("posts",
		Attribute{Name: "title", Type: Scalar(KindString)},
		Attribute{Name: "status", Type: Scalar(KindEnum), Constraints: Constraints{ConstraintValues: []string{"draft", "published"}}},
		Attribute{Name: "rating", Type: Scalar(KindInteger)},
	)
	require.NoError(t, err)

	assert.Equal(t, "posts", s.Resource())
	assert.Equal(t, []string{"title", "status", "rating"}, s.Names())
	assert.Equal(t, 3, s.Len())

	attr, ok := s.Attribute("status")
	require.True(t, ok)
	assert.Equal(t, KindEnum, attr.Type.Kind)

	_, ok = s.Attribute("missing")
	assert.False(t, ok)
}

func TestSchemaDuplicate(t *testing.T) {
	_, err := New("posts",
		Attribute{Name: "title", Type: Scalar(KindString)},
		Attribute{Name: "title", Type: Scalar(KindString)},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate attribute")
}
