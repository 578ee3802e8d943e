// Package dispatch maps named Drive actions onto Google Drive API calls.
// Each invocation is stateless: the caller supplies an already-authenticated
// Drive service handle, the dispatcher performs one remote round-trip and
// returns a uniform Result. Nothing is cached or retried here.
package dispatch

import "fmt"

// Action is the closed set of operations the dispatcher supports.
// Unrecognized action names never reach the API: ParseAction rejects them.
type Action int

const (
	ActionSearchFiles Action = iota
	ActionListFiles
	ActionGetFileDetails
	ActionDownloadFile
	ActionGetFileContent
	ActionUploadFile
	ActionDeleteFile
)

var actionNames = map[Action]string{
	ActionSearchFiles:    "search_files",
	ActionListFiles:      "list_files",
	ActionGetFileDetails: "get_file_details",
	ActionDownloadFile:   "download_file",
	ActionGetFileContent: "get_file_content",
	ActionUploadFile:     "upload_file",
	ActionDeleteFile:     "delete_file",
}

// String returns the wire name of the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction resolves a wire name to an Action. Unrecognized names fail.
func ParseAction(name string) (Action, error) {
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unrecognized action %q", name)
}

// Actions returns all supported actions in a stable order.
func Actions() []Action {
	return []Action{
		ActionSearchFiles,
		ActionListFiles,
		ActionGetFileDetails,
		ActionDownloadFile,
		ActionGetFileContent,
		ActionUploadFile,
		ActionDeleteFile,
	}
}

// Parameter names accepted in Params. These match the host's parameter
// mapping contract exactly.
const (
	ParamQuery    = "query"
	ParamFileID   = "file_id"
	ParamMimeType = "mime_type"
	ParamFilePath = "file_path"
	ParamFolderID = "folder_id"
	ParamPageSize = "page_size"
)

// Params is the string-keyed parameter mapping supplied by the host.
type Params map[string]string

// requiredParams lists the parameters each action must carry. Checked before
// any network call is made.
var requiredParams = map[Action][]string{
	ActionSearchFiles:    {ParamQuery},
	ActionListFiles:      {},
	ActionGetFileDetails: {ParamFileID},
	ActionDownloadFile:   {ParamFileID},
	ActionGetFileContent: {ParamFileID},
	ActionUploadFile:     {ParamFilePath},
	ActionDeleteFile:     {ParamFileID},
}

// RequiredParams returns the required parameter names for an action.
func RequiredParams(a Action) []string {
	return requiredParams[a]
}

// missingParams returns the required parameters absent or empty in p.
func missingParams(a Action, p Params) []string {
	var missing []string
	for _, name := range requiredParams[a] {
		if p[name] == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
