package eventjournal

import (
	"errors"
)

var ErrConcurrencyConflict = errors.New("concurrency error, the filtered event stream has advanced")

// MaxSequenceNumberUint is a type alias for uint, representing the maximum sequence number of a filtered event stream.
type MaxSequenceNumberUint = uint
