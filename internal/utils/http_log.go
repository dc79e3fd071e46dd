package utils

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// maxLoggedBodyLength caps how much of a request or response body one dump
// entry carries. Multimodal payloads can embed megabytes of base64 media;
// the truncation suffix records the original size.
const maxLoggedBodyLength = 16 * 1024

// LoggingTransport is an http.RoundTripper that dumps request and response
// bodies through slog. It exists for debugging and audit: the host enables
// it per model when it wants to see exactly what goes over the wire.
//
// Bodies may contain prompt text and base64 media; do not enable this in
// production logging pipelines.
type LoggingTransport struct {
	// Base is the wrapped transport. Nil falls back to
	// http.DefaultTransport.
	Base http.RoundTripper
	// Logger receives the dump entries. Nil falls back to slog.Default().
	Logger *slog.Logger
}

// NewLoggingClient returns an *http.Client whose transport logs every
// request and response body.
func NewLoggingClient(logger *slog.Logger) *http.Client {
	return &http.Client{
		Transport: &LoggingTransport{Logger: logger},
	}
}

func (transport *LoggingTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	base := transport.Base
	if base == nil {
		base = http.DefaultTransport
	}
	logger := transport.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var requestBody []byte
	if request.Body != nil {
		requestBody, _ = io.ReadAll(request.Body)
		request.Body = io.NopCloser(bytes.NewReader(requestBody))
	}

	logger.Debug("http request",
		slog.String("method", request.Method),
		slog.String("url", request.URL.String()),
		slog.String("body", TruncateString(string(requestBody), maxLoggedBodyLength)),
	)

	start := time.Now()
	response, err := base.RoundTrip(request)
	if err != nil {
		logger.Debug("http request failed",
			slog.String("url", request.URL.String()),
			slog.String("error", err.Error()),
		)
		return response, err
	}

	// Buffer the response so the caller can still read it. Streamed
	// responses are dumped in full once the caller has drained them, so we
	// read eagerly here; this trades streaming latency for visibility,
	// which is acceptable for a debug transport.
	responseBody, readErr := io.ReadAll(response.Body)
	CloseWithLog(response.Body)
	if readErr != nil {
		return response, readErr
	}
	response.Body = io.NopCloser(bytes.NewReader(responseBody))

	logger.Debug("http response",
		slog.String("url", request.URL.String()),
		slog.Int("status", response.StatusCode),
		slog.Duration("duration", time.Since(start)),
		slog.String("body", TruncateString(string(responseBody), maxLoggedBodyLength)),
	)

	return response, nil
}
