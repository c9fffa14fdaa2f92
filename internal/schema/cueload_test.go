package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCue = `package schemas

#Posts: {
	title:         string
	status:        "draft" | "published" | "archived"
	rating:        int
	score:         number
	featured:      bool
	price:         number @decimal()
	published_on?: string @date()
	created_at:    string @datetime()
	author_id:     string @belongs_to(authors)
	tags:          [...string]
	badges:        [...("gold" | "silver")]
}
`

func loadTestSchemas(t *testing.T) map[string]*Schema {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "resources.cue"), []byte(testCue), 0o644)
	require.NoError(t, err)

	schemas, err := Load(dir)
	require.NoError(t, err)
	return schemas
}

func TestLoadClassifiesKinds(t *testing.T) {
	schemas := loadTestSchemas(t)
	posts := schemas["posts"]
	require.NotNil(t, posts)

	tests := []struct {
		attr string
		want TypeTag
	}{
		{"title", Scalar(KindString)},
		{"status", Scalar(KindEnum)},
		{"rating", Scalar(KindInteger)},
		{"score", Scalar(KindFloat)},
		{"featured", Scalar(KindBoolean)},
		{"price", Scalar(KindDecimal)},
		{"published_on", Scalar(KindDate)},
		{"created_at", Scalar(KindDateTime)},
		{"author_id", Scalar(KindBelongsTo)},
		{"tags", Array(Scalar(KindString))},
		{"badges", Array(Scalar(KindEnum))},
	}
	for _, tt := range tests {
		t.Run(tt.attr, func(t *testing.T) {
			attr, ok := posts.Attribute(tt.attr)
			require.True(t, ok)
			assert.True(t, attr.Type.Equal(tt.want), "got %s, want %s", attr.Type, tt.want)
		})
	}
}

func TestLoadEnumConstraints(t *testing.T) {
	schemas := loadTestSchemas(t)
	posts := schemas["posts"]
	require.NotNil(t, posts)

	status, ok := posts.Attribute("status")
	require.True(t, ok)
	assert.Equal(t, []string{"draft", "published", "archived"}, status.EnumValues())

	badges, ok := posts.Attribute("badges")
	require.True(t, ok)
	assert.Equal(t, []string{"gold", "silver"}, badges.EnumValues())

	author, ok := posts.Attribute("author_id")
	require.True(t, ok)
	assert.Equal(t, "authors", author.Constraints.Target())
}

func TestLoadPreservesDeclarationOrder(t *testing.T) {
	schemas := loadTestSchemas(t)
	posts := schemas["posts"]
	require.NotNil(t, posts)
	assert.Equal(t, "title", posts.Names()[0])
	assert.Equal(t, "status", posts.Names()[1])
}

func TestLoadMissingDir(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
