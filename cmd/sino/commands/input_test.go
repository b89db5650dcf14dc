package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptPassword(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	readPassword = func() ([]byte, error) {
		return []byte("hunter2"), nil
	}
	password, err := promptPassword("Password")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", password)

	readPassword = func() ([]byte, error) {
		return nil, errors.New("not a terminal")
	}
	_, err = promptPassword("Password")
	require.Error(t, err)
	assert.ErrorContains(t, err, "reading password")
}
