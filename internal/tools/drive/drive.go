package drive

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/evert/drive-actions-mcp/internal/dispatch"
	"github.com/evert/drive-actions-mcp/internal/pkg/ptr"
	"github.com/evert/drive-actions-mcp/internal/services"
)

var serviceIcons = []mcp.Icon{{
	Source:   "https://www.gstatic.com/images/branding/product/1x/drive_2020q4_48dp.png",
	MIMEType: "image/png",
	Sizes:    []string{"48x48"},
}}

// Deps carries what the tool handlers need: an authenticated-client source
// and the action dispatcher.
type Deps struct {
	Factory      *services.Factory
	Dispatcher   *dispatch.Dispatcher
	DefaultEmail string
}

// IncludeFunc decides whether a tool is registered, based on its name and
// annotations.
type IncludeFunc func(name string, annotations *mcp.ToolAnnotations) bool

// Register registers the Drive action tools with the MCP server. Tools
// rejected by include are skipped.
func Register(server *mcp.Server, deps Deps, include IncludeFunc) {
	add := func(tool *mcp.Tool, register func(*mcp.Tool)) {
		if include != nil && !include(tool.Name, tool.Annotations) {
			return
		}
		register(tool)
	}

	add(&mcp.Tool{
		Name:        "search_files",
		Icons:       serviceIcons,
		Description: "Search for files in Google Drive by full-text query. Returns file summaries including IDs for further operations.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "Search Drive Files",
			ReadOnlyHint:  true,
			OpenWorldHint: ptr.Bool(true),
		},
	}, func(t *mcp.Tool) { mcp.AddTool(server, t, createSearchFilesHandler(deps)) })

	add(&mcp.Tool{
		Name:        "list_files",
		Icons:       serviceIcons,
		Description: "List files in Google Drive, optionally within a specific folder.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "List Drive Files",
			ReadOnlyHint:  true,
			OpenWorldHint: ptr.Bool(true),
		},
	}, func(t *mcp.Tool) { mcp.AddTool(server, t, createListFilesHandler(deps)) })

	add(&mcp.Tool{
		Name:        "get_file_details",
		Icons:       serviceIcons,
		Description: "Get full metadata for one Google Drive file: name, type, size, timestamps, description, and link.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "Get Drive File Details",
			ReadOnlyHint:  true,
			OpenWorldHint: ptr.Bool(true),
		},
	}, func(t *mcp.Tool) { mcp.AddTool(server, t, createGetFileDetailsHandler(deps)) })

	add(&mcp.Tool{
		Name:        "download_file",
		Icons:       serviceIcons,
		Description: "Download a Google Drive file's bytes. Native Google Docs/Sheets/Slides are exported to the requested MIME type, or a configured default format.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "Download Drive File",
			ReadOnlyHint:  true,
			OpenWorldHint: ptr.Bool(true),
		},
	}, func(t *mcp.Tool) { mcp.AddTool(server, t, createDownloadFileHandler(deps)) })

	add(&mcp.Tool{
		Name:        "get_file_content",
		Icons:       serviceIcons,
		Description: "Get the content of a Google Drive file without saving it. Native Google files are exported to a text-oriented format by default.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "Get Drive File Content",
			ReadOnlyHint:  true,
			OpenWorldHint: ptr.Bool(true),
		},
	}, func(t *mcp.Tool) { mcp.AddTool(server, t, createGetFileContentHandler(deps)) })

	add(&mcp.Tool{
		Name:        "upload_file",
		Icons:       serviceIcons,
		Description: "Upload a local file to Google Drive, optionally into a specific folder.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "Upload File to Drive",
			OpenWorldHint: ptr.Bool(true),
		},
	}, func(t *mcp.Tool) { mcp.AddTool(server, t, createUploadFileHandler(deps)) })

	add(&mcp.Tool{
		Name:        "delete_file",
		Icons:       serviceIcons,
		Description: "Permanently delete a file from Google Drive.",
		Annotations: &mcp.ToolAnnotations{
			Title:           "Delete Drive File",
			DestructiveHint: ptr.Bool(true),
			OpenWorldHint:   ptr.Bool(true),
		},
	}, func(t *mcp.Tool) { mcp.AddTool(server, t, createDeleteFileHandler(deps)) })
}
