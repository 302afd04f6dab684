package dispatcher

import "errors"

// ErrSocketClosed marks the listen socket having been closed on the normal
// shutdown path. It terminates the accept task but is never logged as an
// error - it is the expected outcome of a deliberate shutdown.
var ErrSocketClosed = errors.New("dispatcher: listen socket closed")
