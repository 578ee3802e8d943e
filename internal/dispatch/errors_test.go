package dispatch

import (
	"fmt"
	"strings"
	"testing"

	"google.golang.org/api/googleapi"

	"github.com/evert/drive-actions-mcp/internal/export"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantNil     bool
		wantKind    Kind
		wantStatus  int
		wantContain string
	}{
		{
			name:    "nil error returns nil",
			err:     nil,
			wantNil: true,
		},
		{
			name:        "400 bad request",
			err:         &googleapi.Error{Code: 400, Message: "invalid field"},
			wantKind:    KindInvalidRequest,
			wantStatus:  400,
			wantContain: "bad request",
		},
		{
			name:       "401 auth expired",
			err:        &googleapi.Error{Code: 401, Message: "token expired"},
			wantKind:   KindForbidden,
			wantStatus: 401,
		},
		{
			name:        "403 permission denied",
			err:         &googleapi.Error{Code: 403, Message: "insufficient scope"},
			wantKind:    KindForbidden,
			wantStatus:  403,
			wantContain: "permission denied",
		},
		{
			name:        "404 not found",
			err:         &googleapi.Error{Code: 404, Message: "file not found"},
			wantKind:    KindNotFound,
			wantStatus:  404,
			wantContain: "file_id",
		},
		{
			name:        "429 rate limit",
			err:         &googleapi.Error{Code: 429, Message: "quota exceeded"},
			wantKind:    KindTransient,
			wantStatus:  429,
			wantContain: "rate limit",
		},
		{
			name:       "500 server error",
			err:        &googleapi.Error{Code: 500, Message: "internal"},
			wantKind:   KindTransient,
			wantStatus: 500,
		},
		{
			name:       "503 server error",
			err:        &googleapi.Error{Code: 503, Message: "unavailable"},
			wantKind:   KindTransient,
			wantStatus: 503,
		},
		{
			name:        "unexpected google error code",
			err:         &googleapi.Error{Code: 418, Message: "teapot"},
			wantKind:    KindUnknown,
			wantStatus:  418,
			wantContain: "Drive API error (418)",
		},
		{
			name:        "unsupported export format",
			err:         &export.UnsupportedFormatError{SourceMimeType: export.MimeDocument, Requested: "text/csv"},
			wantKind:    KindUnsupportedFormat,
			wantContain: "text/csv",
		},
		{
			name:        "plain error is unknown",
			err:         fmt.Errorf("connection refused"),
			wantKind:    KindUnknown,
			wantContain: "connection refused",
		},
		{
			name:     "wrapped google error",
			err:      fmt.Errorf("deleting file: %w", &googleapi.Error{Code: 404, Message: "gone"}),
			wantKind: KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if tt.wantNil {
				if got != nil {
					t.Errorf("expected nil, got %v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected non-nil failure")
			}
			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", got.Kind, tt.wantKind)
			}
			if got.HTTPStatus != tt.wantStatus {
				t.Errorf("HTTPStatus = %d, want %d", got.HTTPStatus, tt.wantStatus)
			}
			if tt.wantContain != "" && !strings.Contains(got.Message, tt.wantContain) {
				t.Errorf("message %q should contain %q", got.Message, tt.wantContain)
			}
		})
	}
}

func TestFailureError(t *testing.T) {
	f := &Failure{Kind: KindNotFound, Message: "no such file"}
	if got := f.Error(); got != "not-found: no such file" {
		t.Errorf("Error() = %q", got)
	}
}
