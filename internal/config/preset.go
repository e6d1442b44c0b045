// Package config loads and validates scaffold presets: the declarative
// description of which plugins to invoke, with which options, for one
// generation run.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/scaffold/internal/errors"
	"git.home.luguber.info/inful/scaffold/internal/plugin"
)

// DefaultPresetFile is the preset filename looked up when none is given.
const DefaultPresetFile = "scaffold.yaml"

// Preset describes one generation run.
type Preset struct {
	Name    string         `yaml:"name"`
	Bare    bool           `yaml:"bare,omitempty"`
	Plugins []PresetPlugin `yaml:"plugins"`
}

// PresetPlugin selects one plugin, optionally with options.
type PresetPlugin struct {
	ID      string         `yaml:"id"`
	Options map[string]any `yaml:"options,omitempty"`
}

// Load loads a preset from the specified file. Environment variables in the
// YAML content are expanded, so presets can reference tokens and paths from
// the process environment or a .env file.
func Load(path string) (*Preset, error) {
	loadEnvFiles()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.PresetNotFound(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.PresetInvalid(path, err)
	}

	expanded := os.ExpandEnv(string(data))

	var preset Preset
	if err := yaml.Unmarshal([]byte(expanded), &preset); err != nil {
		return nil, errors.PresetInvalid(path, err)
	}

	preset.applyDefaults()
	if err := preset.Validate(); err != nil {
		return nil, err
	}
	return &preset, nil
}

// applyDefaults fills in what the preset leaves out: a project name and the
// core service plugin, which every scaffolded project invokes first.
func (p *Preset) applyDefaults() {
	if p.Name == "" {
		p.Name = "scaffold-app"
	}
	for _, pp := range p.Plugins {
		if pp.ID == plugin.ServicePluginID {
			return
		}
	}
	p.Plugins = append([]PresetPlugin{{ID: plugin.ServicePluginID}}, p.Plugins...)
}

// Validate checks the preset for empty and duplicate plugin entries.
func (p *Preset) Validate() error {
	seen := make(map[string]bool, len(p.Plugins))
	for i, pp := range p.Plugins {
		if pp.ID == "" {
			return errors.ValidationFailed(fmt.Sprintf("plugins[%d].id", i), "must not be empty")
		}
		if seen[pp.ID] {
			return errors.ValidationFailed(fmt.Sprintf("plugins[%d].id", i), "duplicate plugin "+pp.ID)
		}
		seen[pp.ID] = true
	}
	return nil
}

// Resolve maps the preset's plugin entries to registered plugins, in preset
// order. Entries may use short-form IDs. The service plugin entry carries the
// preset-level project name and bare flag in its options.
func (p *Preset) Resolve(registry *plugin.Registry) ([]*plugin.Plugin, error) {
	out := make([]*plugin.Plugin, 0, len(p.Plugins))
	for _, pp := range p.Plugins {
		registered, ok := registry.Resolve(pp.ID)
		if !ok {
			return nil, errors.PluginNotFound(pp.ID)
		}
		options := pp.Options
		if registered.ID == plugin.ServicePluginID {
			options = p.serviceOptions(options)
		}
		out = append(out, &plugin.Plugin{
			ID:      registered.ID,
			Apply:   registered.Apply,
			Hooks:   registered.Hooks,
			Options: options,
		})
	}
	return out, nil
}

func (p *Preset) serviceOptions(options map[string]any) map[string]any {
	merged := make(map[string]any, len(options)+2)
	for k, v := range options {
		merged[k] = v
	}
	if _, ok := merged["projectName"]; !ok {
		merged["projectName"] = p.Name
	}
	if _, ok := merged["bare"]; !ok && p.Bare {
		merged["bare"] = true
	}
	return merged
}

// Init creates a new preset file with example content.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("preset file already exists: %s (use --force to overwrite)", path)
	}

	example := Preset{
		Name: "my-app",
		Plugins: []PresetPlugin{
			{ID: plugin.ServicePluginID},
			{ID: "@scaffold/cli-plugin-babel"},
			{
				ID:      "@scaffold/cli-plugin-eslint",
				Options: map[string]any{"config": "prettier", "lintOn": "save"},
			},
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal preset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preset file: %w", err)
	}
	return nil
}

// loadEnvFiles loads .env then .env.local, stopping at the first file that
// parses. Existing process environment variables are never overwritten.
func loadEnvFiles() {
	for _, path := range []string{".env", ".env.local"} {
		if err := godotenv.Load(path); err == nil {
			slog.Debug("loaded environment variables", "file", path)
			return
		}
	}
}
