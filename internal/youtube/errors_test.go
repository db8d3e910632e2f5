package youtube

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/api/googleapi"
)

func TestClassify_StructuredReasons(t *testing.T) {
	tests := []struct {
		reason string
		code   int
		want   ErrorKind
	}{
		{"quotaExceeded", 403, ErrQuotaExceeded},
		{"dailyLimitExceeded", 403, ErrQuotaExceeded},
		{"rateLimitExceeded", 403, ErrQuotaExceeded},
		{"keyInvalid", 400, ErrInvalidKey},
		{"forbidden", 403, ErrPermissionDenied},
		{"accessNotConfigured", 403, ErrPermissionDenied},
		{"videoNotFound", 404, ErrNotFound},
		{"playlistNotFound", 404, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			err := &googleapi.Error{
				Code:   tt.code,
				Errors: []googleapi.ErrorItem{{Reason: tt.reason}},
			}
			got := Classify(err)
			if got.Kind != tt.want {
				t.Errorf("Classify(reason=%s) = %s, want %s", tt.reason, got.Kind, tt.want)
			}
		})
	}
}

func TestClassify_StructuredReasonBeatsStatusCode(t *testing.T) {
	// quotaExceeded arrives with HTTP 403; the reason must win over the
	// generic 403 → PERMISSION_DENIED mapping.
	err := &googleapi.Error{
		Code:   403,
		Errors: []googleapi.ErrorItem{{Reason: "quotaExceeded"}},
	}
	if got := Classify(err); got.Kind != ErrQuotaExceeded {
		t.Errorf("got %s, want QUOTA_EXCEEDED", got.Kind)
	}
}

func TestClassify_StatusCodeFallback(t *testing.T) {
	tests := []struct {
		code int
		want ErrorKind
	}{
		{401, ErrInvalidKey},
		{403, ErrPermissionDenied},
		{404, ErrNotFound},
		{429, ErrQuotaExceeded},
		{500, ErrUnknown},
	}
	for _, tt := range tests {
		err := &googleapi.Error{Code: tt.code}
		if got := Classify(err); got.Kind != tt.want {
			t.Errorf("Classify(code=%d) = %s, want %s", tt.code, got.Kind, tt.want)
		}
	}
}

func TestClassify_SubstringFallback(t *testing.T) {
	tests := []struct {
		msg  string
		want ErrorKind
	}{
		{"request failed: quota exceeded for project", ErrQuotaExceeded},
		{"the provided API key is not valid", ErrInvalidKey},
		{"dial tcp: connection refused", ErrNetwork},
		{"context deadline exceeded (timeout)", ErrNetwork},
		{"lookup youtube.googleapis.com: no such host", ErrNetwork},
		{"resource not found", ErrNotFound},
		{"something something permission", ErrPermissionDenied},
		{"totally novel failure", ErrUnknown},
	}
	for _, tt := range tests {
		if got := Classify(errors.New(tt.msg)); got.Kind != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.msg, got.Kind, tt.want)
		}
	}
}

func TestClassify_Idempotent(t *testing.T) {
	inner := Classify(&googleapi.Error{Code: 429})
	outer := Classify(fmt.Errorf("page 3: %w", inner))
	if outer.Kind != ErrQuotaExceeded {
		t.Errorf("re-classifying a wrapped APIError changed kind to %s", outer.Kind)
	}
}

func TestAPIError_CarriesMessageAndResolution(t *testing.T) {
	got := Classify(&googleapi.Error{Code: 429})
	if got.Message == "" || got.Resolution == "" {
		t.Error("every classified error must carry a message and a resolution")
	}
}

func TestAPIError_HTTPStatus(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want int
	}{
		{ErrInvalidKey, 401},
		{ErrPermissionDenied, 403},
		{ErrNotFound, 404},
		{ErrQuotaExceeded, 429},
		{ErrNetwork, 502},
		{ErrUnknown, 500},
	}
	for _, tt := range tests {
		e := &APIError{Kind: tt.kind}
		if got := e.HTTPStatus(); got != tt.want {
			t.Errorf("%s.HTTPStatus() = %d, want %d", tt.kind, got, tt.want)
		}
	}
}
