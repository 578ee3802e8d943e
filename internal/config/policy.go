package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ActionInfo describes an action's access mode.
type ActionInfo struct {
	Mode string // "read" or "write"
}

// ActionPolicy groups action names by access mode, as loaded from the
// policy YAML file.
type ActionPolicy struct {
	Actions struct {
		Read  []string `yaml:"read"`
		Write []string `yaml:"write"`
	} `yaml:"actions"`
}

// DefaultPolicy returns the built-in action policy used when no policy file
// is configured.
func DefaultPolicy() map[string]ActionInfo {
	return map[string]ActionInfo{
		"search_files":     {Mode: "read"},
		"list_files":       {Mode: "read"},
		"get_file_details": {Mode: "read"},
		"download_file":    {Mode: "read"},
		"get_file_content": {Mode: "read"},
		"upload_file":      {Mode: "write"},
		"delete_file":      {Mode: "write"},
	}
}

// LoadPolicy reads and parses the action policy YAML file, returning a map
// of action name -> ActionInfo for fast lookup during tool filtering.
func LoadPolicy(path string) (map[string]ActionInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading action policy %s: %w", path, err)
	}

	var p ActionPolicy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing action policy %s: %w", path, err)
	}

	actions := make(map[string]ActionInfo)
	for _, name := range p.Actions.Read {
		actions[name] = ActionInfo{Mode: "read"}
	}
	for _, name := range p.Actions.Write {
		actions[name] = ActionInfo{Mode: "write"}
	}
	if len(actions) == 0 {
		return nil, fmt.Errorf("action policy %s lists no actions", path)
	}

	return actions, nil
}
