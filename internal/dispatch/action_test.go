package dispatch

import "testing"

func TestParseAction(t *testing.T) {
	for _, a := range Actions() {
		parsed, err := ParseAction(a.String())
		if err != nil {
			t.Errorf("ParseAction(%q): %v", a.String(), err)
			continue
		}
		if parsed != a {
			t.Errorf("ParseAction(%q) = %v, want %v", a.String(), parsed, a)
		}
	}
}

func TestParseAction_Unrecognized(t *testing.T) {
	for _, name := range []string{"", "rename_file", "SEARCH_FILES", "search files"} {
		if _, err := ParseAction(name); err == nil {
			t.Errorf("ParseAction(%q): expected error", name)
		}
	}
}

func TestRequiredParams(t *testing.T) {
	tests := []struct {
		action Action
		want   []string
	}{
		{ActionSearchFiles, []string{ParamQuery}},
		{ActionListFiles, nil},
		{ActionGetFileDetails, []string{ParamFileID}},
		{ActionDownloadFile, []string{ParamFileID}},
		{ActionGetFileContent, []string{ParamFileID}},
		{ActionUploadFile, []string{ParamFilePath}},
		{ActionDeleteFile, []string{ParamFileID}},
	}

	for _, tt := range tests {
		got := RequiredParams(tt.action)
		if len(got) != len(tt.want) {
			t.Errorf("RequiredParams(%s) = %v, want %v", tt.action, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("RequiredParams(%s) = %v, want %v", tt.action, got, tt.want)
			}
		}
	}
}

func TestMissingParams(t *testing.T) {
	missing := missingParams(ActionSearchFiles, Params{})
	if len(missing) != 1 || missing[0] != ParamQuery {
		t.Errorf("missingParams = %v, want [query]", missing)
	}

	// An empty value counts as missing.
	missing = missingParams(ActionDeleteFile, Params{ParamFileID: ""})
	if len(missing) != 1 || missing[0] != ParamFileID {
		t.Errorf("missingParams = %v, want [file_id]", missing)
	}

	if missing := missingParams(ActionListFiles, Params{}); len(missing) != 0 {
		t.Errorf("missingParams = %v, want none for list_files", missing)
	}
}
