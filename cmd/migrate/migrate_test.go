package main

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_EmbeddedSource_StartsAtVersionOne(t *testing.T) {
	// arrange
	src, err := embeddedSource()
	require.NoError(t, err)
	defer src.Close()

	// act
	first, err := src.First()

	// assert
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)
}

func Test_EmbeddedSource_InitCreatesLoanTables(t *testing.T) {
	src, err := embeddedSource()
	require.NoError(t, err)
	defer src.Close()

	r, identifier, err := src.ReadUp(1)
	require.NoError(t, err)
	defer r.Close()
	body, err := io.ReadAll(r)
	require.NoError(t, err)

	assert.Equal(t, "init", identifier)
	for _, table := range []string{"members", "books", "loans"} {
		assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS "+table)
	}
}

func Test_EmbeddedSource_InitHasDownFile(t *testing.T) {
	src, err := embeddedSource()
	require.NoError(t, err)
	defer src.Close()

	r, _, err := src.ReadDown(1)
	require.NoError(t, err)
	defer r.Close()
	body, err := io.ReadAll(r)
	require.NoError(t, err)

	assert.Contains(t, string(body), "DROP TABLE IF EXISTS loans")

	_, err = src.Next(1)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
