package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/storefront-api/internal/domain/product"
)

func TestProductFilterSQL(t *testing.T) {
	where, args := productFilterSQL(product.Filter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = productFilterSQL(product.Filter{Name: "shirt", Size: "small"})
	assert.Equal(t, " WHERE name ILIKE $1 AND sizes @> $2::jsonb", where)
	require.Len(t, args, 2)
	assert.Equal(t, "%shirt%", args[0])
	assert.JSONEq(t, `[{"size":"small"}]`, args[1].(string))
}

// LIKE metacharacters in the name filter must match literally, not as
// wildcards.
func TestProductFilterSQL_EscapesLikeMetacharacters(t *testing.T) {
	_, args := productFilterSQL(product.Filter{Name: `50%_off\deal`})
	require.Len(t, args, 1)
	assert.Equal(t, `%50\%\_off\\deal%`, args[0])
}
