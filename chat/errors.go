package chat

import "fmt"

// UnsupportedFeatureError is returned when the caller requests a capability
// the target model declares it does not support, such as a system prompt on
// a model that forbids one. It is raised before any network call is made.
type UnsupportedFeatureError struct {
	Feature string
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("chatwire: model does not support %s", e.Feature)
}

// ConfigurationError is returned when the caller supplies an invalid option
// value, such as a temperature outside its declared bounds or a logit bias
// structure that is not valid JSON. It is raised before any network call.
type ConfigurationError struct {
	Option string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("chatwire: invalid option %q: %s", e.Option, e.Reason)
}

// TransportFailureError is returned for a non-success status or a
// connection-level failure from the remote endpoint. It carries the status
// code and raw body when available. This layer performs no retry; the call
// is aborted and any partially accumulated streaming state is discarded.
type TransportFailureError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportFailureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("chatwire: transport failure: %v", e.Err)
	}
	return fmt.Sprintf("chatwire: non-2xx status %d: %s", e.StatusCode, e.Body)
}

func (e *TransportFailureError) Unwrap() error {
	return e.Err
}

// MalformedPayloadError is returned when the remote response cannot be
// parsed into the expected shape. Unparseable streamed tool-call arguments
// are the one exception: the aggregator degrades them to an empty structured
// value instead of failing the call.
type MalformedPayloadError struct {
	Reason string
	Err    error
}

func (e *MalformedPayloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("chatwire: malformed payload: %s: %v", e.Reason, e.Err)
	}
	return "chatwire: malformed payload: " + e.Reason
}

func (e *MalformedPayloadError) Unwrap() error {
	return e.Err
}
