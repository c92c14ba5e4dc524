package random

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenLength(t *testing.T) {
	token, err := New().Token(32)
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestTokensDiffer(t *testing.T) {
	r := New()
	a, _ := r.Token(16)
	b, _ := r.Token(16)
	assert.NotEqual(t, a, b)
}

func TestTokenRejectsNonPositiveLength(t *testing.T) {
	_, err := New().Token(0)
	assert.Error(t, err)
}
