package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusAndCodeResolution(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation",
			err:        Validation("subject cannot be empty"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "validation_error",
		},
		{
			name:       "not_found",
			err:        NotFound("artwork not found: %s", "abc"),
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name:       "persistence",
			err:        Persistence(errors.New("connection refused")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "persistence_error",
		},
		{
			name:       "external_service",
			err:        ExternalService(errors.New("model refused")),
			wantStatus: http.StatusBadGateway,
			wantCode:   "external_service_error",
		},
		{
			name:       "wrapped",
			err:        fmt.Errorf("expand subject: %w", NotFound("artwork not found")),
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name:       "plain_error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StatusOf(tc.err); got != tc.wantStatus {
				t.Fatalf("StatusOf=%d, want %d", got, tc.wantStatus)
			}
			if got := CodeOf(tc.err); got != tc.wantCode {
				t.Fatalf("CodeOf=%q, want %q", got, tc.wantCode)
			}
		})
	}
}

func TestUnwrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Persistence(fmt.Errorf("insert artwork: %w", cause))
	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to reach the cause through the api error")
	}
}
