package registry

import (
	"fmt"
	"log/slog"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/evert/drive-actions-mcp/internal/auth"
	"github.com/evert/drive-actions-mcp/internal/config"
	"github.com/evert/drive-actions-mcp/internal/dispatch"
	"github.com/evert/drive-actions-mcp/internal/services"
	authtools "github.com/evert/drive-actions-mcp/internal/tools/auth"
	"github.com/evert/drive-actions-mcp/internal/tools/drive"
)

// toolNameRE enforces SEP-986: tool names must match ^[a-zA-Z0-9_-]{1,64}$
var toolNameRE = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// ValidateToolName checks that a tool name complies with SEP-986.
func ValidateToolName(name string) error {
	if !toolNameRE.MatchString(name) {
		return fmt.Errorf("tool name %q does not match SEP-986 pattern ^[a-zA-Z0-9_-]{1,64}$", name)
	}
	return nil
}

// ShouldIncludeAction decides whether an action tool is registered, applying
// the action policy, the enabled-actions list, and read-only mode.
func ShouldIncludeAction(name string, cfg *config.Config, policy map[string]config.ActionInfo, annotations *mcp.ToolAnnotations) bool {
	info, ok := policy[name]
	if !ok {
		slog.Warn("action not found in policy, skipping", "action", name)
		return false
	}

	if len(cfg.EnabledActions) > 0 {
		found := false
		for _, a := range cfg.EnabledActions {
			if a == name {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	// Read-only mode excludes write actions. The annotations are the
	// authoritative signal; the policy mode is a config-level override.
	if cfg.ReadOnly {
		if info.Mode == "write" {
			return false
		}
		if annotations != nil && !annotations.ReadOnlyHint {
			return false
		}
	}

	return true
}

// RegisterAll registers the Drive action tools and the auth tool with the
// server, applying policy, action, and read-only filters.
func RegisterAll(server *mcp.Server, dispatcher *dispatch.Dispatcher, factory *services.Factory, cfg *config.Config, policy map[string]config.ActionInfo, oauthMgr *auth.OAuthManager) {
	slog.Info("registering action tools",
		"actions", cfg.EnabledActions,
		"readOnly", cfg.ReadOnly,
	)

	deps := drive.Deps{
		Factory:      factory,
		Dispatcher:   dispatcher,
		DefaultEmail: cfg.DefaultEmail,
	}

	registered := 0
	drive.Register(server, deps, func(name string, annotations *mcp.ToolAnnotations) bool {
		if err := ValidateToolName(name); err != nil {
			slog.Error("invalid tool name, skipping", "tool", name, "error", err)
			return false
		}
		if !ShouldIncludeAction(name, cfg, policy, annotations) {
			return false
		}
		registered++
		slog.Info("registered action", "action", name)
		return true
	})

	authtools.Register(server, oauthMgr)
	slog.Info("registered action tools", "count", registered)
}
