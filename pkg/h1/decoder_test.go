package h1

import (
	"bytes"
	"errors"
	"testing"
)

// drain runs src through the decoder until it stops consuming, returning
// the concatenated body.
func drain(t *testing.T, dec *Decoder, src []byte) []byte {
	t.Helper()
	var body []byte
	for len(src) > 0 && dec.More() {
		data, n, err := dec.Decode(src)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		body = append(body, data...)
		if n == 0 && len(data) == 0 {
			break
		}
		src = src[n:]
	}
	return body
}

func TestDecoder_Length(t *testing.T) {
	dec := newLengthDecoder(5)
	src := []byte("helloTRAILING")

	data, n, err := dec.Decode(src)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("data = %q, want hello", data)
	}
	if n != 5 {
		t.Errorf("consumed = %d, want 5 (must not eat the next message)", n)
	}
	if dec.More() {
		t.Error("More() = true after full body, want false")
	}
	if err := dec.Finish(); err != nil {
		t.Errorf("Finish() error = %v", err)
	}
}

func TestDecoder_LengthAcrossArrivals(t *testing.T) {
	dec := newLengthDecoder(10)
	var body []byte
	remaining := 10
	for _, part := range []string{"hel", "lo wo", "rld"} {
		data, n, err := dec.Decode([]byte(part))
		if err != nil {
			t.Fatalf("Decode(%q) error = %v", part, err)
		}
		want := len(part)
		if want > remaining {
			want = remaining
		}
		if n != want {
			t.Errorf("Decode(%q) consumed %d, want %d", part, n, want)
		}
		remaining -= n
		body = append(body, data...)
	}
	if string(body) != "hello worl" {
		t.Errorf("body = %q, want %q", body, "hello worl")
	}
	if dec.More() {
		t.Error("More() = true after full body, want false")
	}
}

func TestDecoder_LengthUnexpectedEOF(t *testing.T) {
	dec := newLengthDecoder(10)
	dec.Decode([]byte("hi"))
	err := dec.Finish()
	if !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("Finish() error = %v, want ErrUnexpectedEOF", err)
	}
}

func TestDecoder_Zero(t *testing.T) {
	dec := newZeroDecoder()
	data, n, err := dec.Decode([]byte("should not be read"))
	if err != nil || len(data) != 0 || n != 0 {
		t.Errorf("Decode() = (%q, %d, %v), want nothing", data, n, err)
	}
	if dec.More() {
		t.Error("More() = true, want false")
	}
}

func TestDecoder_CloseDelimited(t *testing.T) {
	dec := newCloseDecoder()

	data, n, err := dec.Decode([]byte("first"))
	if err != nil || string(data) != "first" || n != 5 {
		t.Fatalf("Decode() = (%q, %d, %v)", data, n, err)
	}
	data, _, _ = dec.Decode([]byte(" second"))
	if string(data) != " second" {
		t.Fatalf("Decode() = %q, want remainder", data)
	}
	if !dec.More() {
		t.Error("More() = false before EOF, want true")
	}
	if err := dec.Finish(); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if dec.More() {
		t.Error("More() = true after EOF, want false")
	}
}

func TestDecoder_Chunked(t *testing.T) {
	dec := newChunkedDecoder()
	src := []byte("5\r\nHello\r\n7\r\n, World\r\n0\r\n\r\n")

	body := drain(t, dec, src)
	if string(body) != "Hello, World" {
		t.Errorf("body = %q, want Hello, World", body)
	}
	if dec.More() {
		t.Error("More() = true after last chunk, want false")
	}
	if err := dec.Finish(); err != nil {
		t.Errorf("Finish() error = %v", err)
	}
}

func TestDecoder_ChunkedDoesNotOverrun(t *testing.T) {
	dec := newChunkedDecoder()
	src := []byte("3\r\nabc\r\n0\r\n\r\nGET / HTTP/1.1\r\n")

	var consumed int
	rest := src
	for dec.More() {
		data, n, err := dec.Decode(rest)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		_ = data
		consumed += n
		rest = rest[n:]
	}
	wantConsumed := len("3\r\nabc\r\n0\r\n\r\n")
	if consumed != wantConsumed {
		t.Errorf("consumed = %d, want %d (next request must stay buffered)", consumed, wantConsumed)
	}
}

func TestDecoder_ChunkedByteAtATime(t *testing.T) {
	dec := newChunkedDecoder()
	src := []byte("a\r\n0123456789\r\n2;ext=1\r\nok\r\n0\r\nTrailer-One: v\r\n\r\n")

	var body []byte
	for _, b := range src {
		if !dec.More() {
			break
		}
		data, n, err := dec.Decode([]byte{b})
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if n != 1 {
			t.Fatalf("single byte not consumed (n = %d)", n)
		}
		body = append(body, data...)
	}
	if string(body) != "0123456789ok" {
		t.Errorf("body = %q, want 0123456789ok", body)
	}
	if dec.More() {
		t.Error("More() = true after terminator, want false")
	}
}

func TestDecoder_ChunkedExtensionsIgnored(t *testing.T) {
	dec := newChunkedDecoder()
	src := []byte("4;name=value;other\r\ndata\r\n0\r\n\r\n")
	body := drain(t, dec, src)
	if string(body) != "data" {
		t.Errorf("body = %q, want data", body)
	}
}

func TestDecoder_ChunkedUppercaseHex(t *testing.T) {
	dec := newChunkedDecoder()
	payload := bytes.Repeat([]byte("x"), 0x1A)
	src := append([]byte("1A\r\n"), payload...)
	src = append(src, []byte("\r\n0\r\n\r\n")...)
	body := drain(t, dec, src)
	if !bytes.Equal(body, payload) {
		t.Errorf("body length = %d, want %d", len(body), len(payload))
	}
}

func TestDecoder_ChunkedBadSyntax(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"non-hex size", "zz\r\ndata\r\n0\r\n\r\n"},
		{"empty size line", "\r\ndata\r\n0\r\n\r\n"},
		{"missing crlf after data", "3\r\nabcX\r\n0\r\n\r\n"},
		{"bad size terminator", "3\rX\nabc\r\n0\r\n\r\n"},
		{"trailer without colon", "3\r\nabc\r\n0\r\nBadTrailer\r\n\r\n"},
		{"trailer space before colon", "3\r\nabc\r\n0\r\nName : v\r\n\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := newChunkedDecoder()
			src := []byte(tt.src)
			var err error
			for len(src) > 0 && dec.More() && err == nil {
				var n int
				_, n, err = dec.Decode(src)
				src = src[n:]
			}
			if !errors.Is(err, ErrChunkSyntax) {
				t.Errorf("error = %v, want ErrChunkSyntax", err)
			}
		})
	}
}

func TestDecoder_ChunkedUnexpectedEOF(t *testing.T) {
	dec := newChunkedDecoder()
	src := []byte("5\r\nHel")
	drain(t, dec, src)
	if err := dec.Finish(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("Finish() error = %v, want ErrUnexpectedEOF", err)
	}
}

func TestDecoder_ChunkedOversizeChunk(t *testing.T) {
	dec := newChunkedDecoder()
	_, _, err := dec.Decode([]byte("fffffffffffffffff\r\n"))
	if !errors.Is(err, ErrChunkSyntax) {
		t.Errorf("error = %v, want ErrChunkSyntax for oversized chunk", err)
	}
}
