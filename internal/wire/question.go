package wire

import "fmt"

// Question is a single entry of the question section: a name followed by a
// 2-byte type and a 2-byte class.
type Question struct {
	Name  []byte // raw wire bytes, including terminator or leading pointer
	Type  uint16
	Class uint16
}

const questionTailSize = 4 // type(2) + class(2)

func decodeQuestion(buf []byte, offset int) (Question, int, error) {
	name, n, err := DecodeName(buf, offset)
	if err != nil {
		return Question{}, 0, err
	}
	tailStart := offset + n
	if tailStart+questionTailSize > len(buf) {
		return Question{}, 0, fmt.Errorf("%w: question tail runs past buffer end", ErrMalformedMessage)
	}

	q := Question{
		Name:  name,
		Type:  getUint16(buf[tailStart : tailStart+2]),
		Class: getUint16(buf[tailStart+2 : tailStart+4]),
	}
	return q, n + questionTailSize, nil
}

func (q Question) size() int {
	return len(q.Name) + questionTailSize
}

func (q Question) marshal(buf []byte) []byte {
	buf = append(buf, q.Name...)
	var tail [questionTailSize]byte
	putUint16(tail[0:2], q.Type)
	putUint16(tail[2:4], q.Class)
	return append(buf, tail[:]...)
}
