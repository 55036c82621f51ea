package ai

import "errors"

// Sentinel errors for the gateway and generators. Callers classify with
// errors.Is; the wrapped message carries provider detail where available.
var (
	// ErrConfig means strict mode is on but no usable API key is configured.
	ErrConfig = errors.New("ai: no usable api key configured")

	// ErrAuth means the provider rejected the configured credential.
	ErrAuth = errors.New("ai: authentication failed, verify the api key")

	// ErrRateLimit is always surfaced to the caller, never masked by mock
	// fallback: the caller must be told to slow down.
	ErrRateLimit = errors.New("ai: api rate limit exceeded, try again later")

	// ErrUpstream covers network failures, timeouts, server errors and
	// malformed provider envelopes.
	ErrUpstream = errors.New("ai: upstream provider error")

	// ErrParse means the payload was not valid JSON after fence stripping.
	ErrParse = errors.New("ai: response is not valid json")

	// ErrGeneration means a generator's post-processing or validation failed.
	ErrGeneration = errors.New("ai: generation failed")
)
