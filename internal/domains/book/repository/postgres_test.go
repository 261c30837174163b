package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_BuildListQuery_NoTerm_ListsWholeCatalog(t *testing.T) {
	query, args, err := BuildListQuery("")

	require.NoError(t, err)
	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, `ORDER BY "title" ASC, "id" ASC`)
	assert.Empty(t, args)
}

func Test_BuildListQuery_Term_MatchesEveryCatalogField(t *testing.T) {
	query, args, err := BuildListQuery("Hugo")

	require.NoError(t, err)
	assert.Contains(t, query, `"title" ILIKE $1`)
	assert.Contains(t, query, `"author" ILIKE $2`)
	assert.Contains(t, query, `"category" ILIKE $3`)
	assert.Contains(t, query, `CAST("year" AS TEXT) ILIKE $4`)
	require.Len(t, args, 4)
	for _, arg := range args {
		assert.Equal(t, "%Hugo%", arg)
	}
}

func Test_BuildListQuery_Term_IsNeverInlined(t *testing.T) {
	query, args, err := BuildListQuery("x'; DROP TABLE books; --")

	require.NoError(t, err)
	assert.NotContains(t, query, "DROP TABLE")
	assert.Equal(t, "%x'; DROP TABLE books; --%", args[0])
}
