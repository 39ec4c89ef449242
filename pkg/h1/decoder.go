package h1

import (
	"fmt"

	"github.com/shapestone/shape-h1/internal/headparser"
)

// BodyMode identifies a body-delimiting strategy.
type BodyMode uint8

const (
	// BodyNone means the message has no body.
	BodyNone BodyMode = iota
	// BodyLength means the body is exactly Content-Length bytes.
	BodyLength
	// BodyChunked means the body uses the chunked transfer coding.
	BodyChunked
	// BodyClose means the body runs until the connection closes.
	BodyClose
)

// String returns a short name for the mode.
func (m BodyMode) String() string {
	switch m {
	case BodyNone:
		return "none"
	case BodyLength:
		return "length"
	case BodyChunked:
		return "chunked"
	case BodyClose:
		return "close-delimited"
	}
	return "unknown"
}

// chunkPhase enumerates the states of the chunked read machine. Each
// Decode call resumes wherever the previous buffer ran out.
type chunkPhase uint8

const (
	chunkSize    chunkPhase = iota // accumulating hex size digits
	chunkExt                       // skipping chunk extensions up to line end
	chunkSizeLF                    // saw CR after size line, expecting LF
	chunkData                      // inside chunk payload
	chunkDataCR                    // payload done, expecting CR
	chunkDataLF                    // payload done, expecting LF
	chunkTrailer                   // reading trailer lines up to blank line
	chunkEnd                       // terminal
)

// maxChunkSize caps a declared chunk so the shift-accumulate hex parse
// cannot overflow.
const maxChunkSize = 1 << 60

// maxTrailerLine bounds a single buffered trailer line.
const maxTrailerLine = 8 << 10

// Decoder is the read-side body state machine. One is created per
// incoming message by Transaction.Decoder and consumed as body bytes
// arrive; it holds no resources beyond its own state, so abandoning it
// mid-body is always safe.
type Decoder struct {
	mode      BodyMode
	remaining uint64 // bytes left in the fixed body or current chunk
	phase     chunkPhase
	sizeSeen  bool   // at least one hex digit of the current size line
	trailer   []byte // current partial trailer line
	eof       bool   // close-delimited body ended by Finish
}

func newZeroDecoder() *Decoder    { return &Decoder{mode: BodyNone} }
func newChunkedDecoder() *Decoder { return &Decoder{mode: BodyChunked} }
func newCloseDecoder() *Decoder   { return &Decoder{mode: BodyClose} }

func newLengthDecoder(n uint64) *Decoder {
	return &Decoder{mode: BodyLength, remaining: n}
}

// Mode returns the decoder's body-delimiting strategy.
func (d *Decoder) Mode() BodyMode { return d.mode }

// More reports whether the body may still produce bytes. A
// close-delimited body reads until Finish marks end of input.
func (d *Decoder) More() bool {
	switch d.mode {
	case BodyLength:
		return d.remaining > 0
	case BodyChunked:
		return d.phase != chunkEnd
	case BodyClose:
		return !d.eof
	}
	return false
}

// Decode consumes body bytes from the front of src. It returns a slice
// of decoded body data (aliasing src), the number of src bytes
// consumed, and any framing error. data never spans beyond the current
// chunk or fixed remainder; call again to cross a chunk boundary. A
// short or empty return with consumed < len(src) only happens at a
// boundary or when the body is complete; a fully consumed src with no
// data means the machine is mid-framing and needs more input.
func (d *Decoder) Decode(src []byte) (data []byte, consumed int, err error) {
	switch d.mode {
	case BodyNone:
		return nil, 0, nil
	case BodyClose:
		if d.eof {
			return nil, 0, nil
		}
		return src, len(src), nil
	case BodyLength:
		if d.remaining == 0 {
			return nil, 0, nil
		}
		take := uint64(len(src))
		if take > d.remaining {
			take = d.remaining
		}
		d.remaining -= take
		return src[:take], int(take), nil
	case BodyChunked:
		return d.decodeChunked(src)
	}
	return nil, 0, nil
}

// Finish tells the decoder the underlying input has ended. It completes
// a close-delimited body and fails a fixed or chunked body that is still
// mid-stream.
func (d *Decoder) Finish() error {
	switch d.mode {
	case BodyLength:
		if d.remaining > 0 {
			return fmt.Errorf("%w: %d bytes missing", ErrUnexpectedEOF, d.remaining)
		}
	case BodyChunked:
		if d.phase != chunkEnd {
			return fmt.Errorf("%w: chunked body not terminated", ErrUnexpectedEOF)
		}
	case BodyClose:
		d.eof = true
	}
	return nil
}

// decodeChunked advances the chunk machine byte by byte through control
// data (size lines, CRLF discipline, trailers) and in bulk through
// chunk payloads.
func (d *Decoder) decodeChunked(src []byte) (data []byte, consumed int, err error) {
	i := 0
	for i < len(src) {
		switch d.phase {
		case chunkEnd:
			// Never consume past the end of the body; the next message
			// may already be in the buffer.
			return nil, i, nil

		case chunkSize:
			c := src[i]
			switch {
			case isHexDigit(c):
				if d.remaining > maxChunkSize>>4 {
					return nil, i, errChunk("chunk size too large")
				}
				d.remaining = d.remaining<<4 | uint64(hexValue(c))
				d.sizeSeen = true
				i++
			case c == ';' || c == ' ' || c == '\t':
				if !d.sizeSeen {
					return nil, i, errChunk("chunk size line starts with %q", c)
				}
				d.phase = chunkExt
				i++
			case c == '\r':
				if !d.sizeSeen {
					return nil, i, errChunk("empty chunk size line")
				}
				d.phase = chunkSizeLF
				i++
			case c == '\n':
				if !d.sizeSeen {
					return nil, i, errChunk("empty chunk size line")
				}
				i++
				d.enterChunk()
			default:
				return nil, i, errChunk("invalid chunk size byte %q", c)
			}

		case chunkExt:
			// Chunk extensions are ignored.
			switch src[i] {
			case '\r':
				d.phase = chunkSizeLF
				i++
			case '\n':
				i++
				d.enterChunk()
			default:
				i++
			}

		case chunkSizeLF:
			if src[i] != '\n' {
				return nil, i, errChunk("chunk size line missing LF")
			}
			i++
			d.enterChunk()

		case chunkData:
			take := uint64(len(src) - i)
			if take > d.remaining {
				take = d.remaining
			}
			data = src[i : i+int(take)]
			d.remaining -= take
			i += int(take)
			if d.remaining == 0 {
				d.phase = chunkDataCR
			}
			// Yield at the chunk boundary (or buffer end); the caller
			// re-enters to parse the next size line.
			return data, i, nil

		case chunkDataCR:
			switch src[i] {
			case '\r':
				d.phase = chunkDataLF
				i++
			case '\n':
				i++
				d.resetSize()
			default:
				return nil, i, errChunk("missing CRLF after chunk data")
			}

		case chunkDataLF:
			if src[i] != '\n' {
				return nil, i, errChunk("missing LF after chunk data")
			}
			i++
			d.resetSize()

		case chunkTrailer:
			nl := -1
			for j := i; j < len(src); j++ {
				if src[j] == '\n' {
					nl = j
					break
				}
			}
			if nl < 0 {
				d.trailer = append(d.trailer, src[i:]...)
				if len(d.trailer) > maxTrailerLine {
					return nil, len(src), errChunk("trailer line too long")
				}
				return nil, len(src), nil
			}
			d.trailer = append(d.trailer, src[i:nl]...)
			i = nl + 1
			line := d.trailer
			if n := len(line); n > 0 && line[n-1] == '\r' {
				line = line[:n-1]
			}
			d.trailer = d.trailer[:0]
			if len(line) == 0 {
				d.phase = chunkEnd
				return nil, i, nil
			}
			if verr := headparser.ValidHeaderLine(line); verr != nil {
				return nil, i, errChunk("bad trailer: %v", verr)
			}
		}
	}
	return nil, i, nil
}

// enterChunk moves past a completed size line into payload or, for the
// zero-size last chunk, into the trailer section.
func (d *Decoder) enterChunk() {
	if d.remaining == 0 {
		d.phase = chunkTrailer
		return
	}
	d.phase = chunkData
}

// resetSize starts the next chunk's size line.
func (d *Decoder) resetSize() {
	d.phase = chunkSize
	d.remaining = 0
	d.sizeSeen = false
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}
