package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// S1 - header round trip.
func TestDecodeHeaderRoundTrip(t *testing.T) {
	raw := []byte{0x04, 0xd2, 0x81, 0x80, 0x00, 0x01, 0x00, 0x02, 0x00, 0x00, 0x00, 0x00}

	h, err := decodeHeader(raw)
	require.NoError(t, err)

	require.Equal(t, uint16(1234), h.MessageID())
	require.True(t, h.IsResponse())
	require.True(t, h.IsRD())
	require.True(t, h.IsRA())
	require.Equal(t, OpcodeQuery, h.GetOpcode())
	require.Equal(t, NoError, h.RCODE())
	require.Equal(t, uint16(1), h.QDCOUNTValue())
	require.Equal(t, uint16(2), h.ANCOUNTValue())
	require.Equal(t, uint16(0), h.NSCOUNTValue())
	require.Equal(t, uint16(0), h.ARCOUNTValue())
	require.Equal(t, raw, h.marshal(nil))
}

func mustEncode(t *testing.T, msg Message) []byte {
	t.Helper()
	out, err := Encode(msg)
	require.NoError(t, err)
	return out
}

func sampleMessage() Message {
	var h Header
	h.SetMessageID(0xAAAA)
	h.SetQR(true)
	h.SetRA(true)

	question := Question{Name: []byte{7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 0}, Type: 1, Class: 1}
	answer := Record{
		Name:  question.Name,
		Type:  1,
		Class: 1,
		TTL:   300,
		RDATA: []byte{93, 184, 216, 34},
	}

	return Message{
		Header:    h,
		Questions: []Question{question},
		Answers:   []Record{answer},
	}
}

// Invariant 1: decode(encode(m)) == m for a one-question, one-answer message.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	msg := sampleMessage()
	encoded := mustEncode(t, msg)

	decoded, err := Decode(encoded)
	require.NoError(t, err)

	require.Equal(t, msg.Header.MessageID(), decoded.Header.MessageID())
	require.Equal(t, msg.Questions, decoded.Questions)
	require.Equal(t, msg.Answers, decoded.Answers)
	require.Empty(t, decoded.Authority)
	require.Empty(t, decoded.Additional)
}

// Invariant 2: size(m) == len(encode(m)).
func TestSizeMatchesEncodedLength(t *testing.T) {
	msg := sampleMessage()
	encoded := mustEncode(t, msg)
	require.Equal(t, Size(msg), len(encoded))
}

func TestDecodeFailsOnTruncatedBuffer(t *testing.T) {
	_, err := Decode([]byte{0x00, 0x01})
	require.ErrorIs(t, err, ErrMalformedMessage)
}

func TestDecodeFailsWhenCountExceedsBuffer(t *testing.T) {
	// QDCOUNT says 1 question but no question bytes follow the header.
	raw := []byte{0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0}
	_, err := Decode(raw)
	require.ErrorIs(t, err, ErrMalformedMessage)
}

func TestDecodeEmptyQuestionSectionSucceeds(t *testing.T) {
	raw := []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	msg, err := Decode(raw)
	require.NoError(t, err)
	require.Empty(t, msg.Questions)
}

func TestMessageCloneIsIndependent(t *testing.T) {
	msg := sampleMessage()
	clone := msg.Clone()

	clone.Answers[0].TTL = 1
	clone.Answers[0].RDATA[0] = 0xff
	clone.Questions[0].Name[0] = 0xff

	require.Equal(t, uint32(300), msg.Answers[0].TTL)
	require.Equal(t, byte(93), msg.Answers[0].RDATA[0])
	require.Equal(t, byte(7), msg.Questions[0].Name[0])
}
