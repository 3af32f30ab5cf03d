// Package config loads ganttflow conversion profiles.
// Lookup order: <input>.ganttflow.yaml (file-specific), .ganttflow.yaml
// (directory), ~/.ganttflow/<name>.yaml (global). Flags given on the
// command line override profile values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile holds saved conversion settings for an input.
type Profile struct {
	Version int `yaml:"version"`

	Title            string `yaml:"title"`
	Width            int    `yaml:"width"`
	CombineThreshold *int   `yaml:"combine_threshold"` // seconds; nil keeps the CLI default

	HTML      bool  `yaml:"html"`
	Timeline  *bool `yaml:"timeline"`
	Histogram *bool `yaml:"histogram"`
	LineGraph *bool `yaml:"line_graph"`

	// Synonyms extends the header synonym table, keyed by canonical
	// field name (task_name, start, end, duration, status).
	Synonyms map[string][]string `yaml:"synonyms"`

	// Path records where the profile was loaded from.
	Path string `yaml:"-"`
}

// ErrNotFound is returned when no profile exists for an input.
var ErrNotFound = errors.New("config: no profile found")

const (
	profileSuffix = ".ganttflow.yaml"
	globalDirName = ".ganttflow"
)

// Load finds and parses the profile for an input path. A non-empty
// name skips the local lookups and loads ~/.ganttflow/<name>.yaml.
func Load(inputPath, name string) (*Profile, error) {
	for _, candidate := range candidates(inputPath, name) {
		p, err := load(candidate)
		if err == nil {
			return p, nil
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return nil, ErrNotFound
}

// List returns the names of saved global profiles.
func List() ([]string, error) {
	dir, err := globalDir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	return names, nil
}

func candidates(inputPath, name string) []string {
	if name != "" {
		if dir, err := globalDir(); err == nil {
			return []string{filepath.Join(dir, name+".yaml")}
		}
		return nil
	}

	var paths []string
	if inputPath != "" && inputPath != "-" {
		paths = append(paths, inputPath+profileSuffix)
		paths = append(paths, filepath.Join(filepath.Dir(inputPath), profileSuffix))
	} else {
		paths = append(paths, profileSuffix)
	}
	if dir, err := globalDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "default.yaml"))
	}
	return paths
}

func load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	p.Path = path
	return &p, nil
}

func globalDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, globalDirName), nil
}
