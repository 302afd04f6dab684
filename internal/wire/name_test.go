package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeNameRoot(t *testing.T) {
	buf := []byte{0x00, 0xff, 0xff}
	name, n, err := DecodeName(buf, 0)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, []byte{0x00}, name)
}

func TestDecodeNameCompressionPointerNotFollowed(t *testing.T) {
	buf := []byte{0xC0, 0x0C, 0xde, 0xad}
	name, n, err := DecodeName(buf, 0)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, []byte{0xC0, 0x0C}, name)
}

func TestDecodeNameLabelRun(t *testing.T) {
	// "abc.de" -> 03 61 62 63 02 64 65 00
	buf := []byte{3, 'a', 'b', 'c', 2, 'd', 'e', 0, 0xff}
	name, n, err := DecodeName(buf, 0)
	require.NoError(t, err)
	require.Equal(t, 8, n)
	require.Equal(t, buf[:8], name)
	require.Equal(t, "abc.de", Stringify(name))
}

func TestDecodeNameTruncatedFails(t *testing.T) {
	buf := []byte{3, 'a', 'b'}
	_, _, err := DecodeName(buf, 0)
	require.ErrorIs(t, err, ErrMalformedMessage)
}

func TestDecodeNameMidNamePointerRejected(t *testing.T) {
	buf := []byte{3, 'a', 'b', 'c', 0xC0, 0x00}
	_, _, err := DecodeName(buf, 0)
	require.ErrorIs(t, err, ErrMalformedMessage)
}

func TestStringifyPointerName(t *testing.T) {
	require.Equal(t, "(+ptr)", Stringify([]byte{0xC0, 0x0C}))
}
