package config

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/evert/drive-actions-mcp/internal/export"
)

// Config holds all server configuration loaded from environment variables and CLI flags.
type Config struct {
	OAuth struct {
		ClientID     string
		ClientSecret string
		RedirectURL  string
	}
	Server struct {
		Transport string
		Port      int
		Host      string
		BaseURI   string
	}
	EnabledActions  []string
	ReadOnly        bool
	LogLevel        string
	CredentialsDir  string
	DefaultEmail    string
	PolicyPath      string
	SearchPageSize  int64
	DownloadExports export.Defaults
	ContentExports  export.Defaults
}

// Load reads configuration from environment variables and CLI flags.
// CLI flags take precedence over environment variables.
func Load() (*Config, error) {
	cfg := &Config{}

	// Environment variables
	cfg.OAuth.ClientID = os.Getenv("GOOGLE_OAUTH_CLIENT_ID")
	cfg.OAuth.ClientSecret = os.Getenv("GOOGLE_OAUTH_CLIENT_SECRET")
	cfg.DefaultEmail = os.Getenv("USER_GOOGLE_EMAIL")

	cfg.CredentialsDir = os.Getenv("DRIVE_ACTIONS_CREDENTIALS_DIR")
	if cfg.CredentialsDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfg.CredentialsDir = filepath.Join(home, ".drive_actions_mcp", "credentials")
	}

	// Enabled actions (comma-separated, empty = all)
	if actionsEnv := os.Getenv("ENABLED_ACTIONS"); actionsEnv != "" {
		cfg.EnabledActions = splitList(actionsEnv)
	}

	cfg.Server.Host = envOrDefault("DRIVE_ACTIONS_HOST", "0.0.0.0")
	cfg.Server.BaseURI = envOrDefault("DRIVE_ACTIONS_BASE_URI", "http://localhost")
	cfg.Server.Transport = envOrDefault("MCP_TRANSPORT", "stdio")
	cfg.LogLevel = envOrDefault("LOG_LEVEL", "info")
	cfg.PolicyPath = envOrDefault("DRIVE_ACTIONS_POLICY", "")
	cfg.ReadOnly = envBool("DRIVE_ACTIONS_READ_ONLY")

	// Default export formats per native type. The Drive API has no single
	// canonical default, so these are deployment configuration points.
	cfg.DownloadExports = exportDefaultsFromEnv("DRIVE_EXPORT_DOWNLOAD", export.DownloadDefaults())
	cfg.ContentExports = exportDefaultsFromEnv("DRIVE_EXPORT_CONTENT", export.ContentDefaults())

	if pageSizeStr := os.Getenv("DRIVE_SEARCH_PAGE_SIZE"); pageSizeStr != "" {
		n, err := strconv.ParseInt(pageSizeStr, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid DRIVE_SEARCH_PAGE_SIZE %q", pageSizeStr)
		}
		cfg.SearchPageSize = n
	}

	// Port
	portStr := os.Getenv("MCP_PORT")
	if portStr == "" {
		portStr = os.Getenv("PORT")
	}
	if portStr == "" {
		portStr = "8000"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid port %q: %w", portStr, err)
	}
	cfg.Server.Port = port

	// CLI flags override env vars
	flag.StringVar(&cfg.Server.Transport, "transport", cfg.Server.Transport, "Transport mode: stdio or streamable-http")
	var actionsFlag string
	flag.StringVar(&actionsFlag, "actions", "", "Actions to enable (comma-separated): search_files,list_files,get_file_details,download_file,get_file_content,upload_file,delete_file")
	flag.StringVar(&cfg.PolicyPath, "action-policy", cfg.PolicyPath, "Path to the action policy YAML file")
	flag.BoolVar(&cfg.ReadOnly, "read-only", cfg.ReadOnly, "Request only the read-only Drive scope, disable write actions")
	flag.Parse()

	// CLI --actions flag overrides (not appends to) the ENABLED_ACTIONS env var.
	if actionsFlag != "" {
		cfg.EnabledActions = splitList(actionsFlag)
	}

	// Validate required fields
	if cfg.OAuth.ClientID == "" {
		return nil, fmt.Errorf("GOOGLE_OAUTH_CLIENT_ID environment variable is required")
	}
	if cfg.OAuth.ClientSecret == "" {
		return nil, fmt.Errorf("GOOGLE_OAUTH_CLIENT_SECRET environment variable is required")
	}

	// Build OAuth redirect URL
	// If the base URI already includes a port, use it as-is; otherwise append the server port.
	parsedURI, parseErr := url.Parse(cfg.Server.BaseURI)
	if parseErr == nil && parsedURI.Port() != "" {
		cfg.OAuth.RedirectURL = cfg.Server.BaseURI + "/oauth/callback"
	} else {
		cfg.OAuth.RedirectURL = fmt.Sprintf("%s:%d/oauth/callback", cfg.Server.BaseURI, cfg.Server.Port)
	}

	return cfg, nil
}

// exportDefaultsFromEnv overlays per-type env overrides onto built-in defaults.
func exportDefaultsFromEnv(prefix string, base export.Defaults) export.Defaults {
	base.Document = envOrDefault(prefix+"_DOCUMENT", base.Document)
	base.Spreadsheet = envOrDefault(prefix+"_SPREADSHEET", base.Spreadsheet)
	base.Presentation = envOrDefault(prefix+"_PRESENTATION", base.Presentation)
	base.Drawing = envOrDefault(prefix+"_DRAWING", base.Drawing)
	return base
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "true" || v == "1" || v == "yes"
}
