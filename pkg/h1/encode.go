package h1

import "strconv"

// reconcileBody reconciles the caller's declared intent to write a body
// with whatever body-length headers the head already carries, mutating
// the headers as needed, and returns the matching write-side encoder.
//
// No body: length headers are stripped, except that a response in a
// HEAD exchange keeps a caller-supplied Content-Length for the client's
// information (no body is written either way). With a body: an explicit
// Content-Length wins and any Transfer-Encoding is stripped, since a
// head carrying both signals is ambiguous to receivers; otherwise
// HTTP/1.1 gets chunked framing (the Transfer-Encoding header is
// injected if absent) and HTTP/1.0, which has no chunked coding, falls
// back to delimiting by connection close.
func reconcileBody(h *Headers, hasBody bool, version Version, headResponse bool) *Encoder {
	if !hasBody {
		if !headResponse {
			h.Del("Content-Length")
		}
		h.Del("Transfer-Encoding")
		return newZeroEncoder()
	}

	length, hasLength, err := h.contentLength()
	if err != nil {
		// An unusable caller-supplied value cannot frame anything;
		// drop it and fall through to version-appropriate framing.
		h.Del("Content-Length")
		hasLength = false
	}
	if hasLength {
		h.Del("Transfer-Encoding")
		return newLengthEncoder(length)
	}

	if version == HTTP11 {
		if h.finalTransferCoding() != "chunked" {
			h.Add("Transfer-Encoding", "chunked")
		}
		return newChunkedEncoder()
	}

	// HTTP/1.0 cannot express chunked framing.
	h.Del("Transfer-Encoding")
	return newCloseEncoder()
}

// appendRequestLine appends "METHOD TARGET VERSION\r\n" to dst.
func appendRequestLine(dst []byte, v Version, line RequestLine) []byte {
	dst = append(dst, line.Method...)
	dst = append(dst, ' ')
	dst = append(dst, line.URI...)
	dst = append(dst, ' ')
	dst = append(dst, v.String()...)
	return appendCRLF(dst)
}

// appendStatusLine appends "VERSION CODE REASON\r\n" to dst.
func appendStatusLine(dst []byte, v Version, status StatusCode) []byte {
	dst = append(dst, v.String()...)
	dst = append(dst, ' ')
	dst = strconv.AppendInt(dst, int64(status), 10)
	if reason := status.Reason(); reason != "" {
		dst = append(dst, ' ')
		dst = append(dst, reason...)
	}
	return appendCRLF(dst)
}

// appendHeaderFields appends all headers in "Key: Value\r\n" format,
// preserving insertion order.
func appendHeaderFields(dst []byte, headers Headers) []byte {
	for _, h := range headers {
		dst = append(dst, h.Key...)
		dst = append(dst, ':', ' ')
		dst = append(dst, h.Value...)
		dst = appendCRLF(dst)
	}
	return dst
}

// appendCRLF appends \r\n to dst.
func appendCRLF(dst []byte) []byte {
	return append(dst, '\r', '\n')
}

var reasonPhrases = map[int]string{
	100: "Continue",
	101: "Switching Protocols",
	200: "OK",
	201: "Created",
	202: "Accepted",
	203: "Non-Authoritative Information",
	204: "No Content",
	205: "Reset Content",
	206: "Partial Content",
	300: "Multiple Choices",
	301: "Moved Permanently",
	302: "Found",
	303: "See Other",
	304: "Not Modified",
	307: "Temporary Redirect",
	308: "Permanent Redirect",
	400: "Bad Request",
	401: "Unauthorized",
	402: "Payment Required",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	406: "Not Acceptable",
	407: "Proxy Authentication Required",
	408: "Request Timeout",
	409: "Conflict",
	410: "Gone",
	411: "Length Required",
	412: "Precondition Failed",
	413: "Content Too Large",
	414: "URI Too Long",
	415: "Unsupported Media Type",
	416: "Range Not Satisfiable",
	417: "Expectation Failed",
	421: "Misdirected Request",
	426: "Upgrade Required",
	428: "Precondition Required",
	429: "Too Many Requests",
	431: "Request Header Fields Too Large",
	500: "Internal Server Error",
	501: "Not Implemented",
	502: "Bad Gateway",
	503: "Service Unavailable",
	504: "Gateway Timeout",
	505: "HTTP Version Not Supported",
}
