package drive

import (
	"strings"

	"github.com/evert/drive-actions-mcp/internal/dispatch"
	"github.com/evert/drive-actions-mcp/internal/export"
	"github.com/evert/drive-actions-mcp/internal/pkg/format"
	"github.com/evert/drive-actions-mcp/internal/pkg/response"
)

// formatFileType returns a human-readable file type from a MIME type.
func formatFileType(mimeType string) string {
	switch mimeType {
	case export.MimeDocument:
		return "Google Doc"
	case export.MimeSpreadsheet:
		return "Google Sheet"
	case export.MimePresentation:
		return "Google Slides"
	case export.MimeFolder:
		return "Folder"
	case export.MimeDrawing:
		return "Google Drawing"
	case "application/pdf":
		return "PDF"
	default:
		if strings.HasPrefix(mimeType, "image/") {
			return "Image"
		}
		if strings.HasPrefix(mimeType, "video/") {
			return "Video"
		}
		if strings.HasPrefix(mimeType, "audio/") {
			return "Audio"
		}
		return mimeType
	}
}

// formatSize returns a human-readable file size.
func formatSize(bytes int64) string {
	return format.ByteSize(bytes)
}

// writeFileList appends one item per file summary to the response.
func writeFileList(rb *response.Builder, files []dispatch.FileSummary) {
	for _, f := range files {
		rb.Item("%s (%s)", f.Name, formatFileType(f.MimeType))
		size := formatSize(f.Size)
		if size != "" {
			rb.Line("    Size: %s | Modified: %s", size, f.ModifiedTime)
		} else if f.ModifiedTime != "" {
			rb.Line("    Modified: %s", f.ModifiedTime)
		}
		rb.Line("    ID: %s", f.ID)
		if f.WebViewLink != "" {
			rb.Line("    Link: %s", f.WebViewLink)
		}
	}
}
