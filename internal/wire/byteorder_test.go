package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSwap16SelfInverse(t *testing.T) {
	values := []uint16{0, 1, 0xff, 0x1234, 0xffff, 0x8000}
	for _, v := range values {
		assert.Equal(t, v, Swap16(Swap16(v)), "swap16 should be self-inverse for %#x", v)
	}
}

func TestSwap32SelfInverse(t *testing.T) {
	values := []uint32{0, 1, 0xff, 0x12345678, 0xffffffff, 0x80000000}
	for _, v := range values {
		assert.Equal(t, v, Swap32(Swap32(v)), "swap32 should be self-inverse for %#x", v)
	}
}

func TestGetPutUint16RoundTrip(t *testing.T) {
	buf := make([]byte, 2)
	putUint16(buf, 1234)
	assert.Equal(t, uint16(1234), getUint16(buf))
}

func TestGetPutUint32RoundTrip(t *testing.T) {
	buf := make([]byte, 4)
	putUint32(buf, 300)
	assert.Equal(t, uint32(300), getUint32(buf))
}
