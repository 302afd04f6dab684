package wire

import "fmt"

// MaxLabelLength is the largest permitted length of a single label (RFC 1035).
const MaxLabelLength = 63

const pointerMarker byte = 0b11000000

// DecodeName reads the name field starting at offset in buf and returns its
// raw wire bytes - including the terminator or pointer - together with the
// number of bytes consumed. It does not dereference compression pointers: a
// pointer is returned as its opaque 2 bytes, never followed into the rest of
// the packet. This makes the decoded name correct as a cache key but not
// necessarily a resolvable domain string; see Stringify for a best-effort
// rendering used only for logging.
func DecodeName(buf []byte, offset int) ([]byte, int, error) {
	if offset < 0 || offset >= len(buf) {
		return nil, 0, fmt.Errorf("%w: name offset %d out of bounds (len %d)", ErrMalformedMessage, offset, len(buf))
	}

	first := buf[offset]

	if first&pointerMarker == pointerMarker {
		if offset+2 > len(buf) {
			return nil, 0, fmt.Errorf("%w: truncated compression pointer", ErrMalformedMessage)
		}
		return buf[offset : offset+2], 2, nil
	}

	if first == 0 {
		return buf[offset : offset+1], 1, nil
	}

	start := offset
	for {
		if offset >= len(buf) {
			return nil, 0, fmt.Errorf("%w: name runs past end of buffer", ErrMalformedMessage)
		}

		labelLen := int(buf[offset])
		if buf[offset]&pointerMarker == pointerMarker {
			return nil, 0, fmt.Errorf("%w: compression pointer not at start of name", ErrMalformedMessage)
		}
		if labelLen > MaxLabelLength {
			return nil, 0, fmt.Errorf("%w: label exceeds %d bytes", ErrMalformedMessage, MaxLabelLength)
		}

		offset++
		if labelLen == 0 {
			break
		}

		if offset+labelLen > len(buf) {
			return nil, 0, fmt.Errorf("%w: label exceeds buffer bounds", ErrMalformedMessage)
		}
		offset += labelLen
	}

	return buf[start:offset], offset - start, nil
}

// Stringify renders a decoded name's wire bytes as a dotted string for
// logging. It is not used anywhere the cache or codec make decisions - the
// raw bytes remain the only thing that matters there. A name that starts
// with a compression pointer is rendered as "(+ptr)" rather than resolved,
// since resolving it would require the packet it was compressed against. A
// pointer after one or more labels is not marked; rendering stops at it.
func Stringify(name []byte) string {
	if len(name) == 0 {
		return ""
	}
	if name[0]&pointerMarker == pointerMarker {
		return "(+ptr)"
	}
	if len(name) == 1 && name[0] == 0 {
		return "."
	}

	var out []byte
	for i := 0; i < len(name); {
		labelLen := int(name[i])
		i++
		if labelLen == 0 {
			break
		}
		if i+labelLen > len(name) {
			break
		}
		if len(out) > 0 {
			out = append(out, '.')
		}
		out = append(out, name[i:i+labelLen]...)
		i += labelLen
	}
	return string(out)
}
