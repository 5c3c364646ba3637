package trace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestAddressReaderSkipsBlankLinesAndExhausts(t *testing.T) {
	path := writeTempFile(t, "addresses.txt", "16916\n\n12107\n")
	r, err := NewAddressReader(path)
	require.NoError(t, err)

	v, ok, err := r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint32(16916), v)

	v, ok, err = r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint32(12107), v)

	_, ok, err = r.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddressReaderMalformedLineAborts(t *testing.T) {
	path := writeTempFile(t, "addresses.txt", "not-a-number\n")
	r, err := NewAddressReader(path)
	require.NoError(t, err)

	_, ok, err := r.Next()
	assert.False(t, ok)
	assert.Error(t, err)
	var parseErr *ErrParse
	assert.ErrorAs(t, err, &parseErr)
}

func TestValidationReaderParsesFields(t *testing.T) {
	line := "w ? 16916 ? ? 20 ? 0\n"
	path := writeTempFile(t, "correct.txt", line)
	r, err := NewValidationReader(path)
	require.NoError(t, err)

	result, ok, err := r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint32(16916), result.VirtualAddress)
	assert.Equal(t, uint32(20), result.PhysicalAddress)
	assert.Equal(t, int8(0), result.Value)

	_, ok, err = r.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidationReaderTooFewFieldsAborts(t *testing.T) {
	path := writeTempFile(t, "correct.txt", "a b c\n")
	r, err := NewValidationReader(path)
	require.NoError(t, err)

	_, ok, err := r.Next()
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestValidationReaderNegativeValue(t *testing.T) {
	line := "w ? 12107 ? ? 2635 ? -46\n"
	path := writeTempFile(t, "correct.txt", line)
	r, err := NewValidationReader(path)
	require.NoError(t, err)

	result, ok, err := r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int8(-46), result.Value)
}
