package wire

import "errors"

// ErrMalformedMessage is returned by Decode when the buffer is too short for
// the counts its header declares, or a name's label scan runs off the end of
// the buffer before it finds a terminator.
var ErrMalformedMessage = errors.New("wire: malformed message")

// ErrNoQuestion is returned by callers that require at least one question;
// the codec itself does not raise it - a zero-question message decodes fine,
// it is simply empty.
var ErrNoQuestion = errors.New("wire: message has no question")
