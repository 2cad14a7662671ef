// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package clientinfo describes the submitting client of an HTTP request.
package clientinfo

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
)

// ErrNoAddress is returned when no header or peer address parses as an IP.
var ErrNoAddress = errors.New("no client address")

// Request implements the wizard's client contract from an inbound request.
type Request struct {
	r *http.Request
}

func FromRequest(r *http.Request) Request {
	return Request{r: r}
}

// IPAddress returns the originating address. It checks X-Forwarded-For,
// then X-Real-IP, then the peer address. Values that are not IPs are skipped.
func (c Request) IPAddress(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if ip := IP(c.r); ip != "" {
		return ip, nil
	}
	return "", ErrNoAddress
}

func (c Request) UserAgent() string {
	return c.r.UserAgent()
}

// IP extracts the client IP from r, or "" when none can be determined.
func IP(r *http.Request) string {
	// First entry of the load balancer chain
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := parse(first); ip != "" {
			return ip
		}
	}

	// nginx
	if ip := parse(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}

	addr := r.RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	return parse(addr)
}

func parse(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
