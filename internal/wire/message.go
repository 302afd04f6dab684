package wire

import "fmt"

// Message is a full DNS message: a header plus its four ordered sections.
type Message struct {
	Header     Header
	Questions  []Question
	Answers    []Record
	Authority  []Record
	Additional []Record
}

// Decode parses buf into a Message. It fails with ErrMalformedMessage if any
// section read would run past the end of buf, if the header's counts
// require more entries than the buffer can hold, or if a name's label scan
// never reaches a terminator.
func Decode(buf []byte) (Message, error) {
	h, err := decodeHeader(buf)
	if err != nil {
		return Message{}, err
	}

	var msg Message
	msg.Header = h
	offset := HeaderSize

	nq := int(h.QDCOUNTValue())
	msg.Questions = make([]Question, 0, nq)
	for i := 0; i < nq; i++ {
		q, n, err := decodeQuestion(buf, offset)
		if err != nil {
			return Message{}, fmt.Errorf("decode question %d: %w", i, err)
		}
		msg.Questions = append(msg.Questions, q)
		offset += n
	}

	na := int(h.ANCOUNTValue())
	msg.Answers, offset, err = decodeRecords(buf, offset, na, "answer")
	if err != nil {
		return Message{}, err
	}

	nu := int(h.NSCOUNTValue())
	msg.Authority, offset, err = decodeRecords(buf, offset, nu, "authority")
	if err != nil {
		return Message{}, err
	}

	nd := int(h.ARCOUNTValue())
	msg.Additional, offset, err = decodeRecords(buf, offset, nd, "additional")
	if err != nil {
		return Message{}, err
	}

	return msg, nil
}

func decodeRecords(buf []byte, offset, count int, section string) ([]Record, int, error) {
	records := make([]Record, 0, count)
	for i := 0; i < count; i++ {
		r, n, err := decodeRecord(buf, offset)
		if err != nil {
			return nil, 0, fmt.Errorf("decode %s record %d: %w", section, i, err)
		}
		records = append(records, r)
		offset += n
	}
	return records, offset, nil
}

// Encode serializes msg to its wire representation. The header's section
// counts are set from the vector lengths before serializing, regardless of
// what they held on entry. The returned slice has no trailing padding.
func Encode(msg Message) ([]byte, error) {
	if len(msg.Questions) > 0xffff || len(msg.Answers) > 0xffff ||
		len(msg.Authority) > 0xffff || len(msg.Additional) > 0xffff {
		return nil, fmt.Errorf("%w: section has more than 65535 entries", ErrMalformedMessage)
	}

	msg.Header.SetQDCOUNTValue(uint16(len(msg.Questions)))
	msg.Header.SetANCOUNTValue(uint16(len(msg.Answers)))
	msg.Header.SetNSCOUNTValue(uint16(len(msg.Authority)))
	msg.Header.SetARCOUNTValue(uint16(len(msg.Additional)))

	buf := make([]byte, 0, Size(msg))
	buf = msg.Header.marshal(buf)

	for _, q := range msg.Questions {
		buf = q.marshal(buf)
	}
	for _, r := range msg.Answers {
		buf = r.marshal(buf)
	}
	for _, r := range msg.Authority {
		buf = r.marshal(buf)
	}
	for _, r := range msg.Additional {
		buf = r.marshal(buf)
	}

	return buf, nil
}

// Size returns the number of bytes Encode(msg) would produce, without
// allocating or serializing.
func Size(msg Message) int {
	n := HeaderSize
	for _, q := range msg.Questions {
		n += q.size()
	}
	for _, r := range msg.Answers {
		n += r.size()
	}
	for _, r := range msg.Authority {
		n += r.size()
	}
	for _, r := range msg.Additional {
		n += r.size()
	}
	return n
}

// Clone returns a deep copy of msg, safe to hand to a caller that must not
// observe later in-place mutation (the cache engine's aging pass, in
// particular).
func (msg Message) Clone() Message {
	out := Message{Header: msg.Header}

	out.Questions = make([]Question, len(msg.Questions))
	for i, q := range msg.Questions {
		out.Questions[i] = Question{
			Name:  append([]byte(nil), q.Name...),
			Type:  q.Type,
			Class: q.Class,
		}
	}

	cloneRecords := func(src []Record) []Record {
		dst := make([]Record, len(src))
		for i, r := range src {
			dst[i] = r.Clone()
		}
		return dst
	}
	out.Answers = cloneRecords(msg.Answers)
	out.Authority = cloneRecords(msg.Authority)
	out.Additional = cloneRecords(msg.Additional)

	return out
}
