package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LikePattern_EscapesWildcards(t *testing.T) {
	cases := map[string]string{
		"hugo":     "%hugo%",
		"50%":      `%50\%%`,
		"a_b":      `%a\_b%`,
		`back\sl`:  `%back\\sl%`,
		"O'Reilly": "%O'Reilly%",
	}

	for in, want := range cases {
		assert.Equal(t, want, LikePattern(in), in)
	}
}

func Test_AnyFieldContains_BlankTermMeansNoFilter(t *testing.T) {
	assert.Nil(t, AnyFieldContains("", Text("title")))
	assert.Nil(t, AnyFieldContains("   ", Text("title")))
	assert.Nil(t, AnyFieldContains("hugo"))
}

func Test_AnyFieldContains_BindsTermAsParameter(t *testing.T) {
	// arrange
	where := AnyFieldContains("  ' OR 1=1 --  ", Text("title"), Cast("year"))
	require.NotNil(t, where)

	// act
	query, args, err := ToSQL(Dialect.From("books").Select("id").Where(where))

	// assert
	require.NoError(t, err)
	assert.Contains(t, query, `"title" ILIKE $1`)
	assert.Contains(t, query, `CAST("year" AS TEXT) ILIKE $2`)
	assert.NotContains(t, query, "OR 1=1")
	assert.Equal(t, []interface{}{"%' OR 1=1 --%", "%' OR 1=1 --%"}, args)
}
