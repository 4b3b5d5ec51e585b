package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedURLRoundTrip(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Minute)

	token, expiresAt, err := signer.Generate("content-1", "contents/content-1.pdf")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	id, path, _, err := signer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "content-1", id)
	assert.Equal(t, "contents/content-1.pdf", path)
}

func TestSignedURLExpired(t *testing.T) {
	signer := NewSignedURLSigner("secret", -time.Minute)

	token, _, err := signer.Generate("content-1", "contents/content-1.pdf")
	require.NoError(t, err)

	_, _, _, err = signer.Parse(token)
	require.Error(t, err)
}

func TestSignedURLTampered(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Minute)

	token, _, err := signer.Generate("content-1", "contents/content-1.pdf")
	require.NoError(t, err)

	other := NewSignedURLSigner("different", time.Minute)
	_, _, _, err = other.Parse(token)
	require.Error(t, err)
}

func TestSignedURLRejectsEmptyInputs(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Minute)

	_, _, err := signer.Generate("", "path")
	require.Error(t, err)

	_, _, _, err = signer.Parse("not.a.token")
	require.Error(t, err)
}
