// Package network builds the HTTP clients used for metadata APIs and manifests.
package network

import (
	"net"
	"net/http"
	"time"
)

// Options configure a client. Zero durations disable the respective timeout.
type Options struct {
	// ConnectTimeout bounds dialing and the TLS handshake.
	ConnectTimeout time.Duration
	// ReadTimeout bounds the wait for response headers.
	ReadTimeout time.Duration
	// Timeout bounds the whole exchange.
	Timeout time.Duration
	// Headers are set on every request that does not already carry them.
	Headers map[string]string
	// LogBodies logs response bodies at debug level.
	LogBodies bool
	// Fingerprint presents a Chrome TLS ClientHello on https requests.
	Fingerprint bool
	// RateLimit caps requests per second. Zero means unlimited.
	RateLimit float64
	// Burst is the number of requests allowed above RateLimit at once.
	Burst int
}

// Client is the shared client for manifest requests.
var Client = New(Options{
	ConnectTimeout: 15 * time.Second,
	ReadTimeout:    30 * time.Second,
	Timeout:        time.Minute,
})

// New builds a client from opts.
func New(opts Options) *http.Client {
	var rt http.RoundTripper = newTransport(opts)

	if opts.Fingerprint {
		rt = newFingerprintTransport(opts, rt)
	}

	rt = &loggingTransport{next: rt, bodies: opts.LogBodies}

	if opts.RateLimit > 0 {
		rt = newRateLimitTransport(rt, opts.RateLimit, opts.Burst)
	}

	if len(opts.Headers) > 0 {
		rt = &headerTransport{next: rt, headers: opts.Headers}
	}

	return &http.Client{
		Timeout:   opts.Timeout,
		Transport: rt,
	}
}

func newTransport(opts Options) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = opts.ReadTimeout
	t.ExpectContinueTimeout = time.Second

	if opts.ConnectTimeout > 0 {
		dialer := &net.Dialer{Timeout: opts.ConnectTimeout, KeepAlive: 30 * time.Second}
		t.DialContext = dialer.DialContext
		t.TLSHandshakeTimeout = opts.ConnectTimeout
	}

	return t
}
