package errors

import (
	"errors"
	"net/http"
)

// FromStatusCode maps a non-200 HTTP status to the matching error type.
// The body is kept for diagnostics on generic API errors.
func FromStatusCode(status int, endpoint, body string) error {
	switch status {
	case http.StatusUnauthorized:
		return NewAuthError("")
	case http.StatusPaymentRequired:
		return NewPaymentError("")
	case http.StatusTooManyRequests:
		return NewRateLimitError("")
	default:
		return NewAPIErrorWithBody(status, endpoint, "request failed", body)
	}
}

// IsMissingCredential reports whether err indicates no configured API key
func IsMissingCredential(err error) bool {
	return errors.Is(err, ErrMissingCredential)
}

// IsAuthError reports whether err is an authentication failure
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr) || errors.Is(err, ErrAuthFailed)
}

// IsPaymentError reports whether err is a payment-required failure
func IsPaymentError(err error) bool {
	var payErr *PaymentError
	return errors.As(err, &payErr) || errors.Is(err, ErrPaymentRequired)
}

// IsRateLimitError reports whether err is a rate-limit failure
func IsRateLimitError(err error) bool {
	var rlErr *RateLimitError
	return errors.As(err, &rlErr) || errors.Is(err, ErrRateLimited)
}

// IsNetworkError reports whether err is a transport failure
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsTimeoutError reports whether err is a timeout
func IsTimeoutError(err error) bool {
	var toErr *TimeoutError
	if errors.As(err, &toErr) {
		return true
	}
	// Transport-level timeouts surface as wrapped net errors
	var netErr *NetworkError
	if errors.As(err, &netErr) && netErr.Err != nil {
		type timeouter interface{ Timeout() bool }
		var te timeouter
		if errors.As(netErr.Err, &te) {
			return te.Timeout()
		}
	}
	return false
}

// IsParseError reports whether err is a malformed-response failure
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr) || errors.Is(err, ErrInvalidResponse)
}

// GetHTTPStatus extracts the HTTP status from an error, or 0 when the error
// carries none
func GetHTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	if IsAuthError(err) {
		return http.StatusUnauthorized
	}
	if IsPaymentError(err) {
		return http.StatusPaymentRequired
	}
	if IsRateLimitError(err) {
		return http.StatusTooManyRequests
	}
	return 0
}

// GetResponseBody extracts the upstream response body from an error, if any
func GetResponseBody(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Body
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Body
	}
	return ""
}
