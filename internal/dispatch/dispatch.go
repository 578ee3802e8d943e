package dispatch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/evert/drive-actions-mcp/internal/export"
	"github.com/evert/drive-actions-mcp/internal/pkg/validate"
)

// MaxTransferBytes bounds how much file content is read into memory per
// download/content invocation. Larger files are truncated at this limit.
const MaxTransferBytes = 100 << 20 // 100 MB

const defaultPageSize = 10

// Config holds the dispatcher's configuration points. The export defaults
// are deployment choices surfaced through server configuration.
type Config struct {
	DownloadDefaults export.Defaults
	ContentDefaults  export.Defaults
	SearchPageSize   int64
}

// Dispatcher executes Drive actions. It holds only configuration; all
// per-invocation state lives on the stack, so a single Dispatcher is safe
// for concurrent use.
type Dispatcher struct {
	downloadDefaults export.Defaults
	contentDefaults  export.Defaults
	pageSize         int64
}

// New creates a Dispatcher. Zero-value config fields fall back to built-in
// defaults.
func New(cfg Config) *Dispatcher {
	d := &Dispatcher{
		downloadDefaults: cfg.DownloadDefaults,
		contentDefaults:  cfg.ContentDefaults,
		pageSize:         cfg.SearchPageSize,
	}
	if d.downloadDefaults == (export.Defaults{}) {
		d.downloadDefaults = export.DownloadDefaults()
	}
	if d.contentDefaults == (export.Defaults{}) {
		d.contentDefaults = export.ContentDefaults()
	}
	if d.pageSize <= 0 {
		d.pageSize = defaultPageSize
	}
	return d
}

// ExecuteNamed resolves a wire action name and executes it. An unrecognized
// name yields an invalid-request failure without touching the API.
func (d *Dispatcher) ExecuteNamed(ctx context.Context, name string, params Params, srv *drive.Service) Result {
	action, err := ParseAction(name)
	if err != nil {
		return failure(invalidRequest("%v", err))
	}
	return d.Execute(ctx, action, params, srv)
}

// Execute runs one action against the given authenticated Drive service.
// The service handle is owned by the caller; the dispatcher never stores it.
func (d *Dispatcher) Execute(ctx context.Context, action Action, params Params, srv *drive.Service) Result {
	if srv == nil {
		return failure(invalidRequest("no authenticated Drive client supplied"))
	}
	if missing := missingParams(action, params); len(missing) > 0 {
		return failure(invalidRequest("missing required parameter(s) for %s: %s",
			action, strings.Join(missing, ", ")))
	}

	switch action {
	case ActionSearchFiles:
		return d.searchFiles(ctx, params, srv)
	case ActionListFiles:
		return d.listFiles(ctx, params, srv)
	case ActionGetFileDetails:
		return d.getFileDetails(ctx, params, srv)
	case ActionDownloadFile:
		return d.downloadFile(ctx, params, srv)
	case ActionGetFileContent:
		return d.getFileContent(ctx, params, srv)
	case ActionUploadFile:
		return d.uploadFile(ctx, params, srv)
	case ActionDeleteFile:
		return d.deleteFile(ctx, params, srv)
	default:
		return failure(invalidRequest("unrecognized action %q", action))
	}
}

func (d *Dispatcher) searchFiles(ctx context.Context, params Params, srv *drive.Service) Result {
	pageSize, f := d.resolvePageSize(params)
	if f != nil {
		return failure(f)
	}

	// Drive query strings delimit values with single quotes.
	escaped := strings.ReplaceAll(params[ParamQuery], `'`, `\'`)
	q := fmt.Sprintf("fullText contains '%s'", escaped)

	result, err := srv.Files.List().
		Q(q).
		PageSize(pageSize).
		Fields("nextPageToken, files(id, name, mimeType, size, modifiedTime, webViewLink)").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return failure(Classify(err))
	}

	return success(toFileList(result))
}

func (d *Dispatcher) listFiles(ctx context.Context, params Params, srv *drive.Service) Result {
	pageSize, f := d.resolvePageSize(params)
	if f != nil {
		return failure(f)
	}

	folderID := params[ParamFolderID]
	if folderID == "" {
		folderID = "root"
	}
	if err := validate.DriveID(folderID); err != nil {
		return failure(invalidRequest("%v", err))
	}

	result, err := srv.Files.List().
		Q(fmt.Sprintf("'%s' in parents and trashed=false", folderID)).
		PageSize(pageSize).
		Fields("nextPageToken, files(id, name, mimeType, size, modifiedTime, webViewLink)").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		OrderBy("folder,name").
		Context(ctx).
		Do()
	if err != nil {
		return failure(Classify(err))
	}

	return success(toFileList(result))
}

func (d *Dispatcher) getFileDetails(ctx context.Context, params Params, srv *drive.Service) Result {
	file, err := srv.Files.Get(params[ParamFileID]).
		Fields("id, name, mimeType, size, createdTime, modifiedTime, description, webViewLink, trashed").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return failure(Classify(err))
	}

	return success(FileDetails{
		ID:           file.Id,
		Name:         file.Name,
		MimeType:     file.MimeType,
		Size:         file.Size,
		CreatedTime:  file.CreatedTime,
		ModifiedTime: file.ModifiedTime,
		Description:  file.Description,
		WebViewLink:  file.WebViewLink,
		Trashed:      file.Trashed,
	})
}

func (d *Dispatcher) downloadFile(ctx context.Context, params Params, srv *drive.Service) Result {
	data, mimeType, filename, f := d.fetch(ctx, srv, params[ParamFileID], params[ParamMimeType], d.downloadDefaults)
	if f != nil {
		return failure(f)
	}
	return success(FileDownload{Content: data, MimeType: mimeType, Filename: filename})
}

func (d *Dispatcher) getFileContent(ctx context.Context, params Params, srv *drive.Service) Result {
	data, mimeType, _, f := d.fetch(ctx, srv, params[ParamFileID], params[ParamMimeType], d.contentDefaults)
	if f != nil {
		return failure(f)
	}
	return success(FileContent{Content: data, MimeType: mimeType})
}

// fetch retrieves a file's bytes. Native Google files are exported to the
// negotiated format; everything else is downloaded as-is. The returned
// filename carries the export extension when a conversion happened.
func (d *Dispatcher) fetch(ctx context.Context, srv *drive.Service, fileID, requestedMime string, defaults export.Defaults) ([]byte, string, string, *Failure) {
	file, err := srv.Files.Get(fileID).
		Fields("id, name, mimeType").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, "", "", Classify(err)
	}

	if export.IsNativeType(file.MimeType) {
		exportMime, err := export.Negotiate(file.MimeType, requestedMime, defaults)
		if err != nil {
			return nil, "", "", Classify(err)
		}

		resp, err := srv.Files.Export(fileID, exportMime).Context(ctx).Download()
		if err != nil {
			return nil, "", "", Classify(err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, MaxTransferBytes))
		if err != nil {
			return nil, "", "", Classify(fmt.Errorf("reading exported content: %w", err))
		}
		return data, exportMime, file.Name + export.ExtensionFor(exportMime), nil
	}

	resp, err := srv.Files.Get(fileID).
		SupportsAllDrives(true).
		Context(ctx).
		Download()
	if err != nil {
		return nil, "", "", Classify(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxTransferBytes))
	if err != nil {
		return nil, "", "", Classify(fmt.Errorf("reading file content: %w", err))
	}
	return data, file.MimeType, file.Name, nil
}

func (d *Dispatcher) uploadFile(ctx context.Context, params Params, srv *drive.Service) Result {
	path := params[ParamFilePath]
	f, err := os.Open(path)
	if err != nil {
		return failure(invalidRequest("cannot open file %q: %v", path, err))
	}
	defer f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	meta := &drive.File{Name: filepath.Base(path)}
	if folderID := params[ParamFolderID]; folderID != "" {
		meta.Parents = []string{folderID}
	}

	created, err := srv.Files.Create(meta).
		Media(f, googleapi.ContentType(contentType)).
		Fields("id, name").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return failure(Classify(err))
	}

	return success(FileUpload{FileID: created.Id, Name: created.Name})
}

func (d *Dispatcher) deleteFile(ctx context.Context, params Params, srv *drive.Service) Result {
	fileID := params[ParamFileID]
	err := srv.Files.Delete(fileID).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return failure(Classify(err))
	}

	return success(FileDeletion{FileID: fileID, Deleted: true})
}

func (d *Dispatcher) resolvePageSize(params Params) (int64, *Failure) {
	raw := params[ParamPageSize]
	if raw == "" {
		return d.pageSize, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, invalidRequest("invalid page_size %q — expected a positive integer", raw)
	}
	return n, nil
}

func toFileList(result *drive.FileList) FileList {
	files := make([]FileSummary, 0, len(result.Files))
	for _, f := range result.Files {
		files = append(files, FileSummary{
			ID:           f.Id,
			Name:         f.Name,
			MimeType:     f.MimeType,
			Size:         f.Size,
			ModifiedTime: f.ModifiedTime,
			WebViewLink:  f.WebViewLink,
		})
	}
	return FileList{
		Files:         files,
		ResultCount:   len(files),
		NextPageToken: result.NextPageToken,
	}
}
