package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AnalysisConfig holds the language tables, path-classification patterns
// and contributor alias rules used by the statistics pipeline.
type AnalysisConfig struct {
	Extensions            map[string]string   `yaml:"extensions"`
	Filenames             map[string]string   `yaml:"filenames"`
	ProductionDirectories []string            `yaml:"production_directories"`
	TestDirectories       []string            `yaml:"test_directories"`
	Aliases               map[string][]string `yaml:"aliases"`
	IncludeUsers          []string            `yaml:"include_users"`
	ExcludeUsers          []string            `yaml:"exclude_users"`
}

// DefaultAnalysisConfig returns the built-in language and directory tables
func DefaultAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		Extensions: map[string]string{
			// Web development
			"js":     "JavaScript",
			"mjs":    "JavaScript",
			"jsx":    "JavaScript",
			"ts":     "TypeScript",
			"tsx":    "TypeScript",
			"html":   "HTML",
			"css":    "CSS",
			"scss":   "SCSS",
			"vue":    "Vue",
			"svelte": "Svelte",

			// Backend languages
			"java":  "Java",
			"py":    "Python",
			"rb":    "Ruby",
			"php":   "PHP",
			"go":    "Go",
			"rs":    "Rust",
			"cpp":   "C++",
			"c":     "C",
			"cs":    "C#",
			"kt":    "Kotlin",
			"scala": "Scala",

			// Scripting
			"sh":   "Shell",
			"bash": "Bash",
			"ps1":  "PowerShell",

			// Data and config
			"sql":      "SQL",
			"json":     "JSON",
			"yaml":     "YAML",
			"yml":      "YAML",
			"xml":      "XML",
			"toml":     "TOML",
			"md":       "Markdown",
			"mdc":      "Markdown",
			"markdown": "Markdown",

			// Mobile
			"swift": "Swift",
			"dart":  "Dart",
		},
		Filenames: map[string]string{
			// DevOps and build files
			"dockerfile":  "Docker",
			"makefile":    "Makefile",
			"jenkinsfile": "Jenkins",
			"vagrantfile": "Vagrant",

			// Ruby ecosystem files
			"rakefile": "Ruby",
			"gemfile":  "Ruby",
			"podfile":  "Ruby",
			"fastfile": "Ruby",
			"brewfile": "Ruby",
		},
		ProductionDirectories: []string{"src", "lib", "app", "source", "main"},
		TestDirectories:       []string{"test", "tests", "__tests__", "spec", "specs", "cypress", "e2e"},
		Aliases:               map[string][]string{},
		IncludeUsers:          []string{},
		ExcludeUsers:          []string{},
	}
}

// LoadAnalysisConfig reads a YAML config file and merges it over the
// defaults. File values win; empty lists keep the defaults.
func LoadAnalysisConfig(path string) (*AnalysisConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileConfig AnalysisConfig
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return DefaultAnalysisConfig().MergeWith(&fileConfig), nil
}

// MergeWith returns a new config with the other config's values layered
// over this one. Map entries are overlaid key by key; list fields replace
// the base only when non-empty.
func (c *AnalysisConfig) MergeWith(other *AnalysisConfig) *AnalysisConfig {
	merged := &AnalysisConfig{
		Extensions:            mergeStringMaps(c.Extensions, other.Extensions),
		Filenames:             mergeStringMaps(c.Filenames, other.Filenames),
		ProductionDirectories: c.ProductionDirectories,
		TestDirectories:       c.TestDirectories,
		Aliases:               mergeAliasMaps(c.Aliases, other.Aliases),
		IncludeUsers:          c.IncludeUsers,
		ExcludeUsers:          c.ExcludeUsers,
	}

	if len(other.ProductionDirectories) > 0 {
		merged.ProductionDirectories = other.ProductionDirectories
	}
	if len(other.TestDirectories) > 0 {
		merged.TestDirectories = other.TestDirectories
	}
	if len(other.IncludeUsers) > 0 {
		merged.IncludeUsers = other.IncludeUsers
	}
	if len(other.ExcludeUsers) > 0 {
		merged.ExcludeUsers = other.ExcludeUsers
	}

	return merged
}

func mergeStringMaps(base, override map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}

func mergeAliasMaps(base, override map[string][]string) map[string][]string {
	merged := make(map[string][]string, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}
