package notebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmitConfigRoundTrip(t *testing.T) {
	input := []byte(`{"id":"nb1","name":"My Notebook","description":"desc","assetsFolder":"assets","attachmentsFolder":"attach","tags":[{"name":"work","children":[{"name":"urgent"}]}],"tagsModifiedUtc":1234}`)

	cfg, err := ParseConfig(input)
	require.NoError(t, err)
	assert.Equal(t, "nb1", cfg.ID)
	assert.Equal(t, "My Notebook", cfg.Name)
	require.Len(t, cfg.Tags, 1)
	assert.Equal(t, "work", cfg.Tags[0].Name)
	require.Len(t, cfg.Tags[0].Children, 1)
	assert.Equal(t, "urgent", cfg.Tags[0].Children[0].Name)

	out, err := EmitConfig(cfg)
	require.NoError(t, err)

	roundTripped, err := ParseConfig(out)
	require.NoError(t, err)
	assert.Equal(t, cfg.ID, roundTripped.ID)
	assert.Equal(t, cfg.Name, roundTripped.Name)
}

func TestParseConfigPreservesUnknownFields(t *testing.T) {
	input := []byte(`{"id":"nb1","name":"n","tags":[],"futureField":{"x":1}}`)

	cfg, err := ParseConfig(input)
	require.NoError(t, err)

	out, err := EmitConfig(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"futureField"`)
}

func TestParseConfigDefaultsNilTagsToEmptySlice(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"id":"nb1","name":"n"}`))
	require.NoError(t, err)
	assert.NotNil(t, cfg.Tags)
	assert.Empty(t, cfg.Tags)
}
