package headparser

// Canonical strings for the tokens that dominate scanned heads. A map
// lookup keyed by string(b) does not allocate its temporary string, so
// scanning a known method or header name costs no allocation; unknown
// tokens fall back to a fresh copy of the input bytes.

var methods = map[string]string{
	"GET": "GET", "HEAD": "HEAD", "POST": "POST",
	"PUT": "PUT", "DELETE": "DELETE", "CONNECT": "CONNECT",
	"OPTIONS": "OPTIONS", "TRACE": "TRACE", "PATCH": "PATCH",
}

var headerNames = map[string]string{
	"Accept":              "Accept",
	"Accept-Encoding":     "Accept-Encoding",
	"Authorization":       "Authorization",
	"Cache-Control":       "Cache-Control",
	"Connection":          "Connection",
	"Content-Encoding":    "Content-Encoding",
	"Content-Length":      "Content-Length",
	"Content-Type":        "Content-Type",
	"Cookie":              "Cookie",
	"Date":                "Date",
	"ETag":                "ETag",
	"Expect":              "Expect",
	"Host":                "Host",
	"Keep-Alive":          "Keep-Alive",
	"Location":            "Location",
	"Proxy-Authorization": "Proxy-Authorization",
	"Server":              "Server",
	"Set-Cookie":          "Set-Cookie",
	"TE":                  "TE",
	"Trailer":             "Trailer",
	"Transfer-Encoding":   "Transfer-Encoding",
	"Upgrade":             "Upgrade",
	"User-Agent":          "User-Agent",
	"Via":                 "Via",
	"X-Forwarded-For":     "X-Forwarded-For",
}

var reasons = map[string]string{
	"OK":                    "OK",
	"Created":               "Created",
	"Accepted":              "Accepted",
	"No Content":            "No Content",
	"Moved Permanently":     "Moved Permanently",
	"Found":                 "Found",
	"Not Modified":          "Not Modified",
	"Bad Request":           "Bad Request",
	"Unauthorized":          "Unauthorized",
	"Forbidden":             "Forbidden",
	"Not Found":             "Not Found",
	"Internal Server Error": "Internal Server Error",
	"Bad Gateway":           "Bad Gateway",
	"Service Unavailable":   "Service Unavailable",
}

func internMethod(b []byte) string {
	if s, ok := methods[string(b)]; ok {
		return s
	}
	return string(b)
}

func internHeaderName(b []byte) string {
	if s, ok := headerNames[string(b)]; ok {
		return s
	}
	return string(b)
}

func internReason(b []byte) string {
	if s, ok := reasons[string(b)]; ok {
		return s
	}
	return string(b)
}
