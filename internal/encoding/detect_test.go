package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdineen/outgo/internal/encoding"
)

func decode(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "description,date,cost\nCafé crème,2024-01-03,3.50\n"
	assert.Equal(t, input, decode(t, []byte(input)))
}

func TestNewUTF8Reader_UTF8BOMStripped(t *testing.T) {
	content := "description,date,cost\n"
	input := append([]byte{0xEF, 0xBB, 0xBF}, content...)
	assert.Equal(t, content, decode(t, input))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// "Café" with é encoded as 0xE9.
	input := []byte{'C', 'a', 'f', 0xE9, ',', '2', '0', '2', '4', '\n'}
	assert.Equal(t, "Café,2024\n", decode(t, input))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	// "hi\n" in UTF-16 little-endian with BOM.
	input := []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00, '\n', 0x00}
	assert.Equal(t, "hi\n", decode(t, input))
}
