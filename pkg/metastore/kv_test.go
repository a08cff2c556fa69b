package metastore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVGetSet(t *testing.T) {
	s := openTestStore(t)

	_, ok, err := s.KVGet("tags_modified_utc")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.KVSet("tags_modified_utc", "100"))
	v, ok, err := s.KVGet("tags_modified_utc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "100", v)

	require.NoError(t, s.KVSet("tags_modified_utc", "200"))
	v, ok, err = s.KVGet("tags_modified_utc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "200", v)
}
