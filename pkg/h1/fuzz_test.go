package h1

import (
	"bytes"
	"testing"
)

// Seed corpora for the fuzz targets.

var requestSeeds = [][]byte{
	[]byte("GET / HTTP/1.1\r\nHost: example.com\r\n\r\n"),
	[]byte("POST /api/users HTTP/1.1\r\nHost: api.example.com\r\nContent-Type: application/json\r\nContent-Length: 15\r\n\r\n"),
	[]byte("HEAD /status HTTP/1.1\r\nHost: example.com\r\n\r\n"),
	[]byte("OPTIONS * HTTP/1.1\r\nHost: example.com\r\n\r\n"),
	[]byte("POST /upload HTTP/1.1\r\nHost: example.com\r\nTransfer-Encoding: chunked\r\n\r\n"),
	[]byte("GET / HTTP/1.0\r\n\r\n"),
	[]byte("GET / HTTP/1.1\r\nHost: example.com\r\nX-Empty:\r\n\r\n"),
	[]byte("POST /u HTTP/1.1\r\nExpect: 100-continue\r\nContent-Length: 9\r\n\r\n"),
}

var responseSeeds = [][]byte{
	[]byte("HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 5\r\n\r\n"),
	[]byte("HTTP/1.1 204 No Content\r\n\r\n"),
	[]byte("HTTP/1.1 100 Continue\r\n\r\n"),
	[]byte("HTTP/1.0 200 OK\r\nConnection: keep-alive\r\n\r\n"),
	[]byte("HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n"),
	[]byte("HTTP/1.1 200\r\n\r\n"),
}

// FuzzServerParse checks the request parser never panics and that a
// successful parse never reports consuming more bytes than it was
// given.
func FuzzServerParse(f *testing.F) {
	for _, seed := range requestSeeds {
		f.Add(seed)
	}
	f.Add([]byte(""))
	f.Add([]byte("\r\n\r\n"))
	f.Add([]byte("GET / HTTP/1.1"))
	f.Add(bytes.Repeat([]byte("X-Header: value\r\n"), 200))

	f.Fuzz(func(t *testing.T, data []byte) {
		txn := ServerTransaction{}
		head, n, err := txn.Parse(data)
		if err != nil {
			return
		}
		if head == nil {
			if n != 0 {
				t.Errorf("incomplete parse consumed %d bytes, want 0", n)
			}
			return
		}
		if n <= 0 || n > len(data) {
			t.Errorf("consumed = %d with %d input bytes", n, len(data))
		}
	})
}

// FuzzClientParse does the same for the response parser.
func FuzzClientParse(f *testing.F) {
	for _, seed := range responseSeeds {
		f.Add(seed)
	}
	f.Add([]byte("HTTP/"))
	f.Add([]byte("HTTP/1.1 99 Tiny\r\n\r\n"))

	f.Fuzz(func(t *testing.T, data []byte) {
		txn := ClientTransaction{}
		head, n, err := txn.Parse(data)
		if err != nil || head == nil {
			return
		}
		if n <= 0 || n > len(data) {
			t.Errorf("consumed = %d with %d input bytes", n, len(data))
		}
	})
}

// FuzzDecodeChunked feeds arbitrary bytes through the chunked decoder,
// checking it never panics, never reports consuming more than offered,
// and always makes progress on non-empty input until done or failed.
func FuzzDecodeChunked(f *testing.F) {
	f.Add([]byte("5\r\nHello\r\n0\r\n\r\n"))
	f.Add([]byte("0\r\n\r\n"))
	f.Add([]byte("4;ext=1\r\ndata\r\n0\r\nTrailer: v\r\n\r\n"))
	f.Add([]byte("ffffffff\r\n"))
	f.Add([]byte("\r\n"))

	f.Fuzz(func(t *testing.T, data []byte) {
		dec := newChunkedDecoder()
		src := data
		for len(src) > 0 && dec.More() {
			out, n, err := dec.Decode(src)
			if err != nil {
				return
			}
			if n > len(src) {
				t.Fatalf("consumed %d of %d bytes", n, len(src))
			}
			if n == 0 && len(out) == 0 {
				// Only legal when the machine is out of input entirely.
				t.Fatalf("no progress on %d remaining bytes", len(src))
			}
			src = src[n:]
		}
	})
}

// FuzzChunkedRoundTrip encodes the fuzzed payload as a single chunk
// sequence and requires the decoder to reproduce it exactly.
func FuzzChunkedRoundTrip(f *testing.F) {
	f.Add([]byte("hello"), []byte("world"))
	f.Add([]byte{0x00, 0xff}, []byte("\r\n"))
	f.Add([]byte("x"), []byte(""))

	f.Fuzz(func(t *testing.T, first, second []byte) {
		enc := newChunkedEncoder()
		var wire []byte
		var err error
		for _, p := range [][]byte{first, second} {
			wire, err = enc.Encode(wire, p)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
		}
		wire, err = enc.Finish(wire)
		if err != nil {
			t.Fatalf("Finish() error = %v", err)
		}

		dec := newChunkedDecoder()
		var got []byte
		src := wire
		for dec.More() {
			data, n, derr := dec.Decode(src)
			if derr != nil {
				t.Fatalf("Decode() error = %v on valid encoding %q", derr, wire)
			}
			got = append(got, data...)
			src = src[n:]
		}
		want := append(append([]byte{}, first...), second...)
		if !bytes.Equal(got, want) {
			t.Errorf("round trip: got %q, want %q", got, want)
		}
		if err := dec.Finish(); err != nil {
			t.Errorf("Finish() error = %v", err)
		}
	})
}
