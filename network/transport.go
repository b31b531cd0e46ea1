package network

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/vidmeta/vidmeta/log"
	"golang.org/x/time/rate"
)

type rateLimitTransport struct {
	next    http.RoundTripper
	limiter *rate.Limiter
}

func newRateLimitTransport(next http.RoundTripper, perSecond float64, burst int) *rateLimitTransport {
	if burst < 1 {
		burst = 1
	}
	return &rateLimitTransport{next: next, limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// RoundTrip waits for a token, giving up when the request context ends.
func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.next.RoundTrip(req)
}

type headerTransport struct {
	next    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	return t.next.RoundTrip(req)
}

type loggingTransport struct {
	next   http.RoundTripper
	bodies bool
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !log.Enabled() {
		return t.next.RoundTrip(req)
	}

	start := time.Now()
	logger := log.WithFields(log.Fields{
		"method": req.Method,
		"url":    req.URL.Redacted(),
	})

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		logger.Errorf("request failed after %s: %s", time.Since(start), err)
		return nil, err
	}

	logger.Infof("%s in %s", resp.Status, time.Since(start))

	if t.bodies && resp.Body != nil {
		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, err
		}
		logger.Debugf("body: %s", body)
		resp.Body = io.NopCloser(bytes.NewReader(body))
	}

	return resp, nil
}
