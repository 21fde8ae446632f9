package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Search Errors.

	// ErrNetworkFailure indicates the search service could not be reached,
	// answered with a non-2xx status, or did not answer before the timeout.
	ErrNetworkFailure = errors.New("search service unreachable")

	// ErrMalformedResponse indicates the search service answered with a body
	// that could not be decoded into results.
	ErrMalformedResponse = errors.New("malformed search response")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Suggestions, summaries and highlighting are disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// Action Errors.

	// ErrUnknownCommand indicates a palette command with no handler.
	// Dispatch treats it as a logged no-op.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrNotLocal indicates an action that needs a local file was asked
	// to act on a remote result.
	ErrNotLocal = errors.New("result is not a local file")

	// ErrFileTooLarge indicates a file exceeds the bridge read limit.
	ErrFileTooLarge = errors.New("file too large")

	// Integration Errors.

	// ErrAuthFailure indicates an integration sign-in did not produce a token.
	ErrAuthFailure = errors.New("authentication failed")

	// ErrNotAuthenticated indicates an integration has no usable credential.
	ErrNotAuthenticated = errors.New("integration not authenticated")

	// ErrUnsupportedIntegration indicates the operation is not available
	// for the requested integration.
	ErrUnsupportedIntegration = errors.New("unsupported integration")

	// ErrMissingClientConfig indicates OAuth client id or secret is not set.
	ErrMissingClientConfig = errors.New("oauth client not configured")
)
