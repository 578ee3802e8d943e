package drive

import (
	"context"
	"fmt"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/drive/v3"

	"github.com/evert/drive-actions-mcp/internal/dispatch"
	"github.com/evert/drive-actions-mcp/internal/export"
	"github.com/evert/drive-actions-mcp/internal/pkg/response"
)

// driveFor resolves the effective user email and returns their Drive handle.
func driveFor(ctx context.Context, deps Deps, userEmail string) (*drive.Service, error) {
	email := userEmail
	if email == "" {
		email = deps.DefaultEmail
	}
	if email == "" {
		return nil, fmt.Errorf("no user email — pass user_google_email or set USER_GOOGLE_EMAIL")
	}
	return deps.Factory.Drive(ctx, email)
}

// run executes one action through the dispatcher and unwraps the result.
// Failures come back as errors so the host sees a structured tool error.
func run[P any](ctx context.Context, deps Deps, userEmail string, action dispatch.Action, params dispatch.Params) (P, error) {
	var zero P

	srv, err := driveFor(ctx, deps, userEmail)
	if err != nil {
		return zero, err
	}

	res := deps.Dispatcher.Execute(ctx, action, params, srv)
	if res.Status != dispatch.StatusSuccess {
		return zero, res.Failure
	}

	payload, ok := res.Payload.(P)
	if !ok {
		return zero, fmt.Errorf("unexpected payload type %T for %s", res.Payload, action)
	}
	return payload, nil
}

// --- search_files ---

type SearchFilesInput struct {
	UserEmail string `json:"user_google_email,omitempty" jsonschema_description:"The user's Google email address (defaults to the configured account)"`
	Query     string `json:"query" jsonschema:"required" jsonschema_description:"Full-text search query"`
	PageSize  int    `json:"page_size,omitempty" jsonschema_description:"Maximum number of results to return (default 10)"`
}

func createSearchFilesHandler(deps Deps) mcp.ToolHandlerFor[SearchFilesInput, dispatch.FileList] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchFilesInput) (*mcp.CallToolResult, dispatch.FileList, error) {
		params := dispatch.Params{dispatch.ParamQuery: input.Query}
		if input.PageSize > 0 {
			params[dispatch.ParamPageSize] = strconv.Itoa(input.PageSize)
		}

		list, err := run[dispatch.FileList](ctx, deps, input.UserEmail, dispatch.ActionSearchFiles, params)
		if err != nil {
			return nil, dispatch.FileList{}, err
		}

		rb := response.New()
		rb.Header("Drive Search Results")
		rb.KeyValue("Query", input.Query)
		rb.KeyValue("Results", list.ResultCount)
		if list.NextPageToken != "" {
			rb.KeyValue("Next page token", list.NextPageToken)
		}
		rb.Separator()
		writeFileList(rb, list.Files)

		return rb.TextResult(), list, nil
	}
}

// --- list_files ---

type ListFilesInput struct {
	UserEmail string `json:"user_google_email,omitempty" jsonschema_description:"The user's Google email address (defaults to the configured account)"`
	FolderID  string `json:"folder_id,omitempty" jsonschema_description:"Folder ID to list (default: root)"`
	PageSize  int    `json:"page_size,omitempty" jsonschema_description:"Maximum number of results to return (default 10)"`
}

func createListFilesHandler(deps Deps) mcp.ToolHandlerFor[ListFilesInput, dispatch.FileList] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListFilesInput) (*mcp.CallToolResult, dispatch.FileList, error) {
		params := dispatch.Params{}
		if input.FolderID != "" {
			params[dispatch.ParamFolderID] = input.FolderID
		}
		if input.PageSize > 0 {
			params[dispatch.ParamPageSize] = strconv.Itoa(input.PageSize)
		}

		list, err := run[dispatch.FileList](ctx, deps, input.UserEmail, dispatch.ActionListFiles, params)
		if err != nil {
			return nil, dispatch.FileList{}, err
		}

		folder := input.FolderID
		if folder == "" {
			folder = "root"
		}

		rb := response.New()
		rb.Header("Drive Files")
		rb.KeyValue("Folder", folder)
		rb.KeyValue("Count", list.ResultCount)
		if list.NextPageToken != "" {
			rb.KeyValue("Next page token", list.NextPageToken)
		}
		rb.Blank()
		writeFileList(rb, list.Files)

		return rb.TextResult(), list, nil
	}
}

// --- get_file_details ---

type GetFileDetailsInput struct {
	UserEmail string `json:"user_google_email,omitempty" jsonschema_description:"The user's Google email address (defaults to the configured account)"`
	FileID    string `json:"file_id" jsonschema:"required" jsonschema_description:"The Google Drive file ID"`
}

func createGetFileDetailsHandler(deps Deps) mcp.ToolHandlerFor[GetFileDetailsInput, dispatch.FileDetails] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetFileDetailsInput) (*mcp.CallToolResult, dispatch.FileDetails, error) {
		params := dispatch.Params{dispatch.ParamFileID: input.FileID}

		details, err := run[dispatch.FileDetails](ctx, deps, input.UserEmail, dispatch.ActionGetFileDetails, params)
		if err != nil {
			return nil, dispatch.FileDetails{}, err
		}

		rb := response.New()
		rb.Header("Drive File Details")
		rb.KeyValue("Name", details.Name)
		rb.KeyValue("Type", formatFileType(details.MimeType))
		rb.KeyValue("ID", details.ID)
		if size := formatSize(details.Size); size != "" {
			rb.KeyValue("Size", size)
		}
		if details.CreatedTime != "" {
			rb.KeyValue("Created", details.CreatedTime)
		}
		if details.ModifiedTime != "" {
			rb.KeyValue("Modified", details.ModifiedTime)
		}
		if details.Description != "" {
			rb.KeyValue("Description", details.Description)
		}
		if details.WebViewLink != "" {
			rb.KeyValue("Link", details.WebViewLink)
		}
		if details.Trashed {
			rb.KeyValue("Trashed", true)
		}

		return rb.TextResult(), details, nil
	}
}

// --- download_file ---

type DownloadFileInput struct {
	UserEmail string `json:"user_google_email,omitempty" jsonschema_description:"The user's Google email address (defaults to the configured account)"`
	FileID    string `json:"file_id" jsonschema:"required" jsonschema_description:"The Google Drive file ID"`
	MimeType  string `json:"mime_type,omitempty" jsonschema_description:"Export MIME type for native Google files (default from server configuration)"`
}

func createDownloadFileHandler(deps Deps) mcp.ToolHandlerFor[DownloadFileInput, dispatch.FileDownload] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input DownloadFileInput) (*mcp.CallToolResult, dispatch.FileDownload, error) {
		params := dispatch.Params{dispatch.ParamFileID: input.FileID}
		if input.MimeType != "" {
			params[dispatch.ParamMimeType] = input.MimeType
		}

		dl, err := run[dispatch.FileDownload](ctx, deps, input.UserEmail, dispatch.ActionDownloadFile, params)
		if err != nil {
			return nil, dispatch.FileDownload{}, err
		}

		rb := response.New()
		rb.Header("Drive File Download")
		rb.KeyValue("Filename", dl.Filename)
		rb.KeyValue("Type", formatFileType(dl.MimeType))
		rb.KeyValue("Size", formatSize(int64(len(dl.Content))))

		return rb.TextResult(), dl, nil
	}
}

// --- get_file_content ---

type GetFileContentInput struct {
	UserEmail string `json:"user_google_email,omitempty" jsonschema_description:"The user's Google email address (defaults to the configured account)"`
	FileID    string `json:"file_id" jsonschema:"required" jsonschema_description:"The Google Drive file ID"`
	MimeType  string `json:"mime_type,omitempty" jsonschema_description:"Export MIME type for native Google files (default from server configuration)"`
}

func createGetFileContentHandler(deps Deps) mcp.ToolHandlerFor[GetFileContentInput, dispatch.FileContent] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetFileContentInput) (*mcp.CallToolResult, dispatch.FileContent, error) {
		params := dispatch.Params{dispatch.ParamFileID: input.FileID}
		if input.MimeType != "" {
			params[dispatch.ParamMimeType] = input.MimeType
		}

		content, err := run[dispatch.FileContent](ctx, deps, input.UserEmail, dispatch.ActionGetFileContent, params)
		if err != nil {
			return nil, dispatch.FileContent{}, err
		}

		rb := response.New()
		rb.Header("Drive File Content")
		rb.KeyValue("Type", formatFileType(content.MimeType))
		rb.KeyValue("Size", formatSize(int64(len(content.Content))))
		rb.Blank()
		if export.IsTextual(content.MimeType) {
			rb.Section("Content")
			rb.Raw(string(content.Content))
		} else {
			rb.Line("(binary content, %d bytes — returned in the structured payload)", len(content.Content))
		}

		return rb.TextResult(), content, nil
	}
}

// --- upload_file ---

type UploadFileInput struct {
	UserEmail string `json:"user_google_email,omitempty" jsonschema_description:"The user's Google email address (defaults to the configured account)"`
	FilePath  string `json:"file_path" jsonschema:"required" jsonschema_description:"Path to the local file to upload"`
	FolderID  string `json:"folder_id,omitempty" jsonschema_description:"Destination folder ID (default: My Drive root)"`
}

func createUploadFileHandler(deps Deps) mcp.ToolHandlerFor[UploadFileInput, dispatch.FileUpload] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input UploadFileInput) (*mcp.CallToolResult, dispatch.FileUpload, error) {
		params := dispatch.Params{dispatch.ParamFilePath: input.FilePath}
		if input.FolderID != "" {
			params[dispatch.ParamFolderID] = input.FolderID
		}

		up, err := run[dispatch.FileUpload](ctx, deps, input.UserEmail, dispatch.ActionUploadFile, params)
		if err != nil {
			return nil, dispatch.FileUpload{}, err
		}

		rb := response.New()
		rb.Header("File Uploaded")
		rb.KeyValue("Name", up.Name)
		rb.KeyValue("ID", up.FileID)
		if input.FolderID != "" {
			rb.KeyValue("Folder", input.FolderID)
		}

		return rb.TextResult(), up, nil
	}
}

// --- delete_file ---

type DeleteFileInput struct {
	UserEmail string `json:"user_google_email,omitempty" jsonschema_description:"The user's Google email address (defaults to the configured account)"`
	FileID    string `json:"file_id" jsonschema:"required" jsonschema_description:"The Google Drive file ID to delete"`
}

func createDeleteFileHandler(deps Deps) mcp.ToolHandlerFor[DeleteFileInput, dispatch.FileDeletion] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input DeleteFileInput) (*mcp.CallToolResult, dispatch.FileDeletion, error) {
		params := dispatch.Params{dispatch.ParamFileID: input.FileID}

		del, err := run[dispatch.FileDeletion](ctx, deps, input.UserEmail, dispatch.ActionDeleteFile, params)
		if err != nil {
			return nil, dispatch.FileDeletion{}, err
		}

		rb := response.New()
		rb.Header("File Deleted")
		rb.KeyValue("ID", del.FileID)
		rb.KeyValue("Deleted", del.Deleted)

		return rb.TextResult(), del, nil
	}
}
