package drive

import (
	"strings"
	"testing"

	"github.com/evert/drive-actions-mcp/internal/dispatch"
	"github.com/evert/drive-actions-mcp/internal/pkg/response"
)

func TestFormatFileType(t *testing.T) {
	tests := []struct {
		mime string
		want string
	}{
		{"application/vnd.google-apps.document", "Google Doc"},
		{"application/vnd.google-apps.spreadsheet", "Google Sheet"},
		{"application/vnd.google-apps.presentation", "Google Slides"},
		{"application/vnd.google-apps.folder", "Folder"},
		{"application/vnd.google-apps.drawing", "Google Drawing"},
		{"application/pdf", "PDF"},
		{"image/png", "Image"},
		{"video/mp4", "Video"},
		{"audio/mp3", "Audio"},
		{"text/plain", "text/plain"},
	}

	for _, tt := range tests {
		got := formatFileType(tt.mime)
		if got != tt.want {
			t.Errorf("formatFileType(%q) = %q, want %q", tt.mime, got, tt.want)
		}
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, ""},
		{500, "500 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
	}

	for _, tt := range tests {
		got := formatSize(tt.bytes)
		if got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestWriteFileList(t *testing.T) {
	rb := response.New()
	writeFileList(rb, []dispatch.FileSummary{
		{
			ID:           "f1",
			Name:         "report.pdf",
			MimeType:     "application/pdf",
			Size:         2048,
			ModifiedTime: "2026-01-02T03:04:05Z",
			WebViewLink:  "https://drive.google.com/file/d/f1/view",
		},
		{
			ID:       "f2",
			Name:     "notes",
			MimeType: "application/vnd.google-apps.document",
		},
	})

	out := rb.Build()
	for _, want := range []string{
		"report.pdf (PDF)",
		"Size: 2.0 KB | Modified: 2026-01-02T03:04:05Z",
		"ID: f1",
		"https://drive.google.com/file/d/f1/view",
		"notes (Google Doc)",
		"ID: f2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
