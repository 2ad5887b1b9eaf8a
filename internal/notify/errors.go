package notify

import "errors"

var (
	// ErrInvalidPattern indicates a content filter regex that does not compile.
	ErrInvalidPattern = errors.New("invalid filter pattern")

	// ErrMalformedMessage indicates a GC message body that is not valid protobuf.
	ErrMalformedMessage = errors.New("malformed game coordinator message")

	// ErrPublishRejected indicates the fediverse instance refused a status.
	ErrPublishRejected = errors.New("status rejected")
)
