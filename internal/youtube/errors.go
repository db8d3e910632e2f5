package youtube

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"
)

// ErrorKind classifies upstream Data API failures into the categories the
// UI knows how to present.
type ErrorKind string

const (
	ErrInvalidKey       ErrorKind = "INVALID_KEY"
	ErrQuotaExceeded    ErrorKind = "QUOTA_EXCEEDED"
	ErrNetwork          ErrorKind = "NETWORK_ERROR"
	ErrNotFound         ErrorKind = "NOT_FOUND"
	ErrPermissionDenied ErrorKind = "PERMISSION_DENIED"
	ErrUnknown          ErrorKind = "UNKNOWN"
)

// APIError carries the classified kind plus a user-facing message and a
// suggested resolution. Classification happens once, at this boundary.
type APIError struct {
	Kind       ErrorKind
	Message    string
	Resolution string
	cause      error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("youtube api: %s: %v", e.Kind, e.cause)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// HTTPStatus maps the error kind to the status the API layer should return.
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case ErrInvalidKey:
		return 401
	case ErrPermissionDenied:
		return 403
	case ErrNotFound:
		return 404
	case ErrQuotaExceeded:
		return 429
	case ErrNetwork:
		return 502
	default:
		return 500
	}
}

var kindDetails = map[ErrorKind]struct{ message, resolution string }{
	ErrInvalidKey: {
		"The YouTube API key is invalid.",
		"Check the API key in your settings and make sure the YouTube Data API is enabled for it.",
	},
	ErrQuotaExceeded: {
		"The daily YouTube API quota has been exhausted.",
		"Wait until the quota resets (midnight Pacific time) or register a different API key.",
	},
	ErrNetwork: {
		"Could not reach the YouTube API.",
		"Check your network connection and try again.",
	},
	ErrNotFound: {
		"The requested video or channel was not found.",
		"Verify the id and try again.",
	},
	ErrPermissionDenied: {
		"The YouTube API rejected the request.",
		"The API key may be restricted to other referrers or APIs.",
	},
	ErrUnknown: {
		"An unexpected YouTube API error occurred.",
		"Try again; if the problem persists, check the server logs.",
	},
}

// Classify wraps an upstream error with its taxonomy kind. Structured
// googleapi reasons are authoritative; message substring matching is the
// isolated last resort for errors the SDK did not structure.
func Classify(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	kind := classifyKind(err)
	d := kindDetails[kind]
	return &APIError{Kind: kind, Message: d.message, Resolution: d.resolution, cause: err}
}

func classifyKind(err error) ErrorKind {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		for _, item := range gerr.Errors {
			switch item.Reason {
			case "quotaExceeded", "dailyLimitExceeded", "rateLimitExceeded":
				return ErrQuotaExceeded
			case "keyInvalid", "keyExpired":
				return ErrInvalidKey
			case "forbidden", "accessNotConfigured", "ipRefererBlocked":
				return ErrPermissionDenied
			case "videoNotFound", "channelNotFound", "notFound", "playlistNotFound":
				return ErrNotFound
			}
		}
		switch gerr.Code {
		case 400, 401:
			return ErrInvalidKey
		case 403:
			return ErrPermissionDenied
		case 404:
			return ErrNotFound
		case 429:
			return ErrQuotaExceeded
		}
		return ErrUnknown
	}

	return classifyByMessage(err.Error())
}

// classifyByMessage is the substring fallback for unstructured errors. Keep
// all string matching here so it can be replaced in one place.
func classifyByMessage(msg string) ErrorKind {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "quota"):
		return ErrQuotaExceeded
	case strings.Contains(lower, "api key") || strings.Contains(lower, "keyinvalid"):
		return ErrInvalidKey
	case strings.Contains(lower, "forbidden") || strings.Contains(lower, "permission"):
		return ErrPermissionDenied
	case strings.Contains(lower, "not found"):
		return ErrNotFound
	case strings.Contains(lower, "connection"),
		strings.Contains(lower, "timeout"),
		strings.Contains(lower, "no such host"),
		strings.Contains(lower, "network"):
		return ErrNetwork
	default:
		return ErrUnknown
	}
}
