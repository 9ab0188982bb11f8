package wire

import (
	"errors"
	"fmt"
)

// ErrBadGameID is returned when a join command's game id is not exactly three bytes.
var ErrBadGameID = errors.New("game id must be 3 bytes")

// DecodeError reports a malformed byte in a 4-byte command.
type DecodeError struct {
	Offset int  // index of the offending byte
	Value  byte // the byte itself
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("wire: byte %d (0x%02x): %s", e.Offset, e.Value, e.Reason)
}
