package dispatch

// Status is the outcome of an action invocation.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Result is the uniform shape returned to the host for every action.
// Exactly one of Payload and Failure is set. Results are constructed fresh
// per invocation and carry no state between calls.
type Result struct {
	Status  Status
	Payload any
	Failure *Failure
}

func success(payload any) Result {
	return Result{Status: StatusSuccess, Payload: payload}
}

func failure(f *Failure) Result {
	return Result{Status: StatusFailure, Failure: f}
}

// FileSummary is a compact representation of a Drive file, returned by
// search_files and list_files.
type FileSummary struct {
	ID           string `json:"file_id"`
	Name         string `json:"name"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size,omitempty"`
	ModifiedTime string `json:"modified_time,omitempty"`
	WebViewLink  string `json:"web_view_link,omitempty"`
}

// FileList is the payload for search_files and list_files.
type FileList struct {
	Files         []FileSummary `json:"files"`
	ResultCount   int           `json:"result_count"`
	NextPageToken string        `json:"next_page_token,omitempty"`
}

// FileDetails is the payload for get_file_details.
type FileDetails struct {
	ID           string `json:"file_id"`
	Name         string `json:"name"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size,omitempty"`
	CreatedTime  string `json:"created_time,omitempty"`
	ModifiedTime string `json:"modified_time,omitempty"`
	Description  string `json:"description,omitempty"`
	WebViewLink  string `json:"web_view_link,omitempty"`
	Trashed      bool   `json:"trashed,omitempty"`
}

// FileDownload is the payload for download_file. Filename carries the
// extension of the export format when the source was a native Google type.
type FileDownload struct {
	Content  []byte `json:"content"`
	MimeType string `json:"mime_type"`
	Filename string `json:"filename"`
}

// FileContent is the payload for get_file_content.
type FileContent struct {
	Content  []byte `json:"content"`
	MimeType string `json:"mime_type"`
}

// FileUpload is the payload for upload_file.
type FileUpload struct {
	FileID string `json:"file_id"`
	Name   string `json:"name"`
}

// FileDeletion is the payload for delete_file.
type FileDeletion struct {
	FileID  string `json:"file_id"`
	Deleted bool   `json:"deleted"`
}
