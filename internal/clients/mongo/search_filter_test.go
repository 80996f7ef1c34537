package mongo

import (
	"testing"

	"mentor-match/internal/services/accounts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestSearchFilter(t *testing.T) {
	t.Run("email is matched in stored form", func(t *testing.T) {
		filter, ok := searchFilter(accounts.SearchQuery{Email: " Ada@X.com "})
		require.True(t, ok)
		assert.Equal(t, "ada@x.com", filter["email"])
	})

	t.Run("blank email is ignored", func(t *testing.T) {
		filter, ok := searchFilter(accounts.SearchQuery{Email: "  "})
		require.True(t, ok)
		assert.Empty(t, filter)
	})

	t.Run("skill is a literal case-insensitive match", func(t *testing.T) {
		filter, ok := searchFilter(accounts.SearchQuery{Skill: "c++"})
		require.True(t, ok)
		assert.Equal(t, bson.M{"$regex": `c\+\+`, "$options": "i"}, filter["skills"])
	})

	t.Run("malformed id matches nothing", func(t *testing.T) {
		_, ok := searchFilter(accounts.SearchQuery{ID: "xyz"})
		assert.False(t, ok)
	})
}
