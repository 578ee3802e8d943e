// Package export handles export-format negotiation for Google Workspace
// native files. Native files (Docs, Sheets, Slides, Drawings) have no raw
// byte representation and must be converted to a standard format before
// download. Which formats are valid depends on the source type, and the
// default format is a deployment choice, not a vendor constant.
package export

import (
	"fmt"
	"strings"
)

// Google Workspace native MIME types.
const (
	MimeDocument     = "application/vnd.google-apps.document"
	MimeSpreadsheet  = "application/vnd.google-apps.spreadsheet"
	MimePresentation = "application/vnd.google-apps.presentation"
	MimeDrawing      = "application/vnd.google-apps.drawing"
	MimeFolder       = "application/vnd.google-apps.folder"
)

// IsNativeType returns true if the MIME type is a Google Workspace native type.
func IsNativeType(mimeType string) bool {
	return strings.HasPrefix(mimeType, "application/vnd.google-apps.")
}

// supportedExports lists the export MIME types the Drive API accepts for
// each native source type.
var supportedExports = map[string][]string{
	MimeDocument: {
		"application/pdf",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.oasis.opendocument.text",
		"application/rtf",
		"application/epub+zip",
		"text/plain",
		"text/html",
		"text/markdown",
	},
	MimeSpreadsheet: {
		"application/pdf",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.oasis.opendocument.spreadsheet",
		"text/csv",
		"text/tab-separated-values",
	},
	MimePresentation: {
		"application/pdf",
		"application/vnd.openxmlformats-officedocument.presentationml.presentation",
		"application/vnd.oasis.opendocument.presentation",
		"text/plain",
	},
	MimeDrawing: {
		"application/pdf",
		"image/png",
		"image/jpeg",
		"image/svg+xml",
	},
}

// Defaults maps each exportable native type to the export MIME type used
// when the caller does not request one.
type Defaults struct {
	Document     string
	Spreadsheet  string
	Presentation string
	Drawing      string
}

// DownloadDefaults returns the built-in defaults for file downloads, where
// a self-contained document format is the most useful result.
func DownloadDefaults() Defaults {
	return Defaults{
		Document:     "application/pdf",
		Spreadsheet:  "application/pdf",
		Presentation: "application/pdf",
		Drawing:      "image/png",
	}
}

// ContentDefaults returns the built-in defaults for content retrieval,
// where a text representation is the most useful result.
func ContentDefaults() Defaults {
	return Defaults{
		Document:     "text/plain",
		Spreadsheet:  "text/csv",
		Presentation: "text/plain",
		Drawing:      "image/png",
	}
}

// For returns the default export MIME type for the given native source type,
// or empty if the type is not exportable (e.g. folders).
func (d Defaults) For(nativeMimeType string) string {
	switch nativeMimeType {
	case MimeDocument:
		return d.Document
	case MimeSpreadsheet:
		return d.Spreadsheet
	case MimePresentation:
		return d.Presentation
	case MimeDrawing:
		return d.Drawing
	default:
		return ""
	}
}

// UnsupportedFormatError reports a requested export format the Drive API
// cannot produce for the given source type.
type UnsupportedFormatError struct {
	SourceMimeType string
	Requested      string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Requested == "" {
		return fmt.Sprintf("no export format available for %q", e.SourceMimeType)
	}
	return fmt.Sprintf("export format %q is not supported for %q", e.Requested, e.SourceMimeType)
}

// Negotiate resolves the export MIME type for a native file. If requested is
// empty the per-type default is used. A requested format outside the
// supported matrix for the source type is rejected without an API call.
func Negotiate(sourceMimeType, requested string, defaults Defaults) (string, error) {
	formats, ok := supportedExports[sourceMimeType]
	if !ok {
		return "", &UnsupportedFormatError{SourceMimeType: sourceMimeType, Requested: requested}
	}

	if requested == "" {
		requested = defaults.For(sourceMimeType)
	}
	for _, f := range formats {
		if f == requested {
			return requested, nil
		}
	}
	return "", &UnsupportedFormatError{SourceMimeType: sourceMimeType, Requested: requested}
}

// extensions maps export MIME types to download filename extensions.
var extensions = map[string]string{
	"application/pdf": ".pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   ".docx",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         ".xlsx",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": ".pptx",
	"application/vnd.oasis.opendocument.text":                                   ".odt",
	"application/vnd.oasis.opendocument.spreadsheet":                            ".ods",
	"application/vnd.oasis.opendocument.presentation":                           ".odp",
	"application/rtf":           ".rtf",
	"application/epub+zip":      ".epub",
	"text/plain":                ".txt",
	"text/html":                 ".html",
	"text/markdown":             ".md",
	"text/csv":                  ".csv",
	"text/tab-separated-values": ".tsv",
	"image/png":                 ".png",
	"image/jpeg":                ".jpg",
	"image/svg+xml":             ".svg",
}

// ExtensionFor returns the filename extension for an export MIME type,
// or empty if none is known.
func ExtensionFor(exportMimeType string) string {
	return extensions[exportMimeType]
}

// IsTextual reports whether content of the given MIME type can be presented
// inline as text.
func IsTextual(mimeType string) bool {
	return strings.HasPrefix(mimeType, "text/") || mimeType == "application/json"
}
