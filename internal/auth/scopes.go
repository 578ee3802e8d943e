package auth

// BaseScopes are always required for user identity.
var BaseScopes = []string{
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
	"openid",
}

// DriveScope grants full Drive access, required for upload and delete.
const DriveScope = "https://www.googleapis.com/auth/drive"

// DriveReadOnlyScope covers search, metadata, download, and content actions.
const DriveReadOnlyScope = "https://www.googleapis.com/auth/drive.readonly"

// Scopes returns the OAuth scopes to request. Read-only mode drops the
// write scope so upload_file and delete_file cannot be granted.
func Scopes(readOnly bool) []string {
	scopes := make([]string, 0, len(BaseScopes)+1)
	scopes = append(scopes, BaseScopes...)
	if readOnly {
		return append(scopes, DriveReadOnlyScope)
	}
	return append(scopes, DriveScope)
}
