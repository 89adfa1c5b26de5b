package helper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patchBody struct {
	Rank PatchField[int] `json:"rank"`
}

func TestPatchField_TriState(t *testing.T) {
	var absent, null, value patchBody
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	require.NoError(t, json.Unmarshal([]byte(`{"rank":null}`), &null))
	require.NoError(t, json.Unmarshal([]byte(`{"rank":3}`), &value))

	v, ok := absent.Rank.Get()
	assert.False(t, ok)
	assert.Nil(t, v)

	assert.True(t, null.Rank.IsNull())

	v, ok = value.Rank.Get()
	assert.True(t, ok)
	require.NotNil(t, v)
	assert.Equal(t, 3, *v)

	var bad patchBody
	assert.Error(t, json.Unmarshal([]byte(`{"rank":"three"}`), &bad))
}
