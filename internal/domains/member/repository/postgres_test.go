package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_BuildListQuery_SearchesMemberFields(t *testing.T) {
	query, args, err := BuildListQuery("dupont_")

	require.NoError(t, err)
	assert.Contains(t, query, `"username" ILIKE $1`)
	assert.Contains(t, query, `ORDER BY "username" ASC`)
	assert.NotContains(t, query, "password_hash ILIKE")
	require.NotEmpty(t, args)
	assert.Equal(t, `%dupont\_%`, args[0])
}

func Test_BuildListQuery_EmptyTerm_HasNoWhere(t *testing.T) {
	query, args, err := BuildListQuery(" ")

	require.NoError(t, err)
	assert.NotContains(t, query, "WHERE")
	assert.Empty(t, args)
}
