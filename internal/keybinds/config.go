package keybinds

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/jsonc"
)

// Config represents the user's keybinding configuration.
// Each section maps an action to a comma-separated key list, e.g.
// "navigate_up": "up,k". Comments are allowed in the file.
type Config struct {
	Version        string            `json:"version"`
	Global         map[string]string `json:"global,omitempty"`
	MainMenu       map[string]string `json:"main_menu,omitempty"`
	DatabaseList   map[string]string `json:"database_list,omitempty"`
	CollectionList map[string]string `json:"collection_list,omitempty"`
	GraphList      map[string]string `json:"graph_list,omitempty"`
	Viewer         map[string]string `json:"viewer,omitempty"`
	SampleInput    map[string]string `json:"sample_input,omitempty"`
	TextInput      map[string]string `json:"text_input,omitempty"`
	Help           map[string]string `json:"help,omitempty"`
	History        map[string]string `json:"history,omitempty"`
	Modal          map[string]string `json:"modal,omitempty"`
}

func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:         c.Global,
		ContextMainMenu:       c.MainMenu,
		ContextDatabaseList:   c.DatabaseList,
		ContextCollectionList: c.CollectionList,
		ContextGraphList:      c.GraphList,
		ContextViewer:         c.Viewer,
		ContextSampleInput:    c.SampleInput,
		ContextTextInput:      c.TextInput,
		ContextHelp:           c.Help,
		ContextHistory:        c.History,
		ContextModal:          c.Modal,
	}
}

// LoadConfig loads keybinding configuration from a JSON (with comments) file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}

	return &config, nil
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SplitKeys parses a comma-separated key list
func SplitKeys(keys string) []string {
	var out []string
	for _, k := range strings.Split(keys, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	// A lone "," is the comma key itself
	if len(out) == 0 && strings.TrimSpace(keys) == "," {
		out = []string{","}
	}
	return out
}

// ApplyConfig applies user configuration to a registry.
// A configured action replaces all default keys of that action in its context.
func ApplyConfig(registry *Registry, config *Config) error {
	for context, bindings := range config.sections() {
		for actionStr, keys := range bindings {
			action := Action(actionStr)
			if err := ValidateAction(actionStr); err != nil {
				return fmt.Errorf("context %s: %w", context, err)
			}
			parsed := SplitKeys(keys)
			for _, key := range parsed {
				if err := ValidateKey(key); err != nil {
					return fmt.Errorf("context %s, action %s: %w", context, action, err)
				}
			}
			registry.Unbind(context, action)
			registry.RegisterMultiple(context, parsed, action)
		}
	}

	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if _, err := os.Stat(configPath); err == nil {
		config, err := LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load keybinds.json: %w", err)
		}

		if err := ApplyConfig(registry, config); err != nil {
			return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
		}
	}

	return registry, nil
}

// ExportRegistry converts a registry into a config with one entry per action
func ExportRegistry(registry *Registry) *Config {
	config := &Config{Version: "1.0"}
	sections := map[Context]*map[string]string{
		ContextGlobal:         &config.Global,
		ContextMainMenu:       &config.MainMenu,
		ContextDatabaseList:   &config.DatabaseList,
		ContextCollectionList: &config.CollectionList,
		ContextGraphList:      &config.GraphList,
		ContextViewer:         &config.Viewer,
		ContextSampleInput:    &config.SampleInput,
		ContextTextInput:      &config.TextInput,
		ContextHelp:           &config.Help,
		ContextHistory:        &config.History,
		ContextModal:          &config.Modal,
	}

	for context, section := range sections {
		bindings := registry.contextBindings(context)
		if len(bindings) == 0 {
			continue
		}

		*section = make(map[string]string)
		for _, action := range bindings {
			(*section)[string(action)] = strings.Join(keysFor(bindings, action), ",")
		}
	}

	return config
}

// ExportDefaults exports default keybindings as a config file
// Useful for users to see what can be customized
func ExportDefaults() *Config {
	return ExportRegistry(NewDefaultRegistry())
}
