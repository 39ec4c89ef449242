package h1

import (
	"fmt"
	"strconv"
)

// Encoder is the write-side body state machine returned by
// Transaction.Encode. It frames body bytes the way the encoded head
// promised: raw for a fixed length, size-prefixed chunks for chunked,
// raw-until-close for an HTTP/1.0 body of unknown length.
type Encoder struct {
	mode      BodyMode
	remaining uint64 // bytes still owed against the declared Content-Length
	done      bool
}

func newZeroEncoder() *Encoder    { return &Encoder{mode: BodyNone, done: true} }
func newChunkedEncoder() *Encoder { return &Encoder{mode: BodyChunked} }
func newCloseEncoder() *Encoder   { return &Encoder{mode: BodyClose} }

func newLengthEncoder(n uint64) *Encoder {
	return &Encoder{mode: BodyLength, remaining: n}
}

// Mode returns the encoder's body-delimiting strategy.
func (e *Encoder) Mode() BodyMode { return e.mode }

// ForcesClose reports whether this message's body can only be delimited
// by closing the connection, overriding whatever ShouldKeepAlive
// computed for the head. True exactly for close-delimited bodies
// (HTTP/1.0, unknown length).
func (e *Encoder) ForcesClose() bool { return e.mode == BodyClose }

// Done reports whether the body is complete: every declared byte
// written and, for chunked, the terminating chunk emitted.
func (e *Encoder) Done() bool {
	if e.mode == BodyLength {
		return e.remaining == 0
	}
	return e.done
}

// Encode appends p to dst with the body framing applied and returns the
// extended buffer. Writing more than the declared Content-Length, or
// writing through a completed or bodiless encoder, is a caller error:
// dst is returned unmodified along with the violation.
func (e *Encoder) Encode(dst, p []byte) ([]byte, error) {
	if len(p) == 0 {
		return dst, nil
	}
	switch e.mode {
	case BodyNone:
		return dst, fmt.Errorf("%w: message declared no body", ErrWriteAfterEnd)
	case BodyLength:
		if e.remaining == 0 {
			return dst, ErrWriteAfterEnd
		}
		if uint64(len(p)) > e.remaining {
			return dst, fmt.Errorf("%w: %d bytes over", ErrWriteOverflow, uint64(len(p))-e.remaining)
		}
		e.remaining -= uint64(len(p))
		return append(dst, p...), nil
	case BodyChunked:
		if e.done {
			return dst, ErrWriteAfterEnd
		}
		dst = strconv.AppendUint(dst, uint64(len(p)), 16)
		dst = appendCRLF(dst)
		dst = append(dst, p...)
		return appendCRLF(dst), nil
	case BodyClose:
		if e.done {
			return dst, ErrWriteAfterEnd
		}
		return append(dst, p...), nil
	}
	return dst, nil
}

// Finish ends the body. A chunked body gains its terminating zero-size
// chunk, exactly once; a fixed body still owing bytes is a caller
// error. Finish after Finish is also an error for the framed modes.
func (e *Encoder) Finish(dst []byte) ([]byte, error) {
	switch e.mode {
	case BodyLength:
		if e.done {
			return dst, ErrWriteAfterEnd
		}
		e.done = true
		if e.remaining > 0 {
			return dst, fmt.Errorf("%w: %d bytes missing", ErrShortBody, e.remaining)
		}
	case BodyChunked:
		if e.done {
			return dst, ErrWriteAfterEnd
		}
		e.done = true
		dst = append(dst, '0', '\r', '\n', '\r', '\n')
	case BodyClose:
		if e.done {
			return dst, ErrWriteAfterEnd
		}
		e.done = true
	}
	return dst, nil
}
