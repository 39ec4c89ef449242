package h1

import (
	"log/slog"
	"strings"
)

// ShouldKeepAlive reports whether the connection that carried head may be
// reused for another exchange.
//
// HTTP/1.0 connections close by default and persist only when the
// Connection header opts in with a "keep-alive" token. HTTP/1.1
// connections persist by default and close only when the Connection
// header carries a "close" token.
func ShouldKeepAlive[S any](head *MessageHead[S]) bool {
	hasConn := head.Headers.Has("Connection")
	keep := true
	switch {
	case head.Version == HTTP10 && !hasConn:
		keep = false
	case head.Version == HTTP10 && !head.Headers.hasToken("Connection", "keep-alive"):
		keep = false
	case head.Version == HTTP11 && head.Headers.hasToken("Connection", "close"):
		keep = false
	}
	slog.Debug("h1: keep-alive decision",
		"version", head.Version.String(),
		"connection", head.Headers.Get("Connection"),
		"keepAlive", keep)
	return keep
}

// ExpectingContinue reports whether the sender of head wants a
// "100 Continue" acknowledgment before transmitting its body. Only an
// HTTP/1.1 head with Expect: 100-continue qualifies; the Expect header
// on an HTTP/1.0 message never does, regardless of its value.
func ExpectingContinue[S any](head *MessageHead[S]) bool {
	expect := strings.TrimSpace(head.Headers.Get("Expect"))
	ret := head.Version == HTTP11 && strings.EqualFold(expect, "100-continue")
	slog.Debug("h1: continue-expectation decision",
		"version", head.Version.String(),
		"expect", expect,
		"expecting", ret)
	return ret
}
