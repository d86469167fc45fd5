package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeed(t *testing.T) {
	seed, err := parseSeed("")
	require.NoError(t, err)
	assert.Nil(t, seed)

	seed, err = parseSeed("0")
	require.NoError(t, err)
	require.NotNil(t, seed)
	assert.Equal(t, int64(0), *seed)

	seed, err = parseSeed("-42")
	require.NoError(t, err)
	require.NotNil(t, seed)
	assert.Equal(t, int64(-42), *seed)

	_, err = parseSeed("not-a-number")
	assert.Error(t, err)
}
