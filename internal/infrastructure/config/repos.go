package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ReposConfig holds the named revision repositories (read/write).
type ReposConfig struct {
	Repos map[string]RepoEntry `yaml:"repos,omitempty"`
}

// RepoEntry holds configuration for a specific repository.
type RepoEntry struct {
	Path        string `yaml:"path"`
	Description string `yaml:"description,omitempty"`
}

// LoadRepos loads the repository registry from the .wbdm directory.
func LoadRepos(basePath string) (*ReposConfig, error) {
	data, err := os.ReadFile(ReposFilePath(basePath))
	if os.IsNotExist(err) {
		// Return empty config if file doesn't exist
		return &ReposConfig{
			Repos: make(map[string]RepoEntry),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading repos file: %w", err)
	}

	var cfg ReposConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing repos file: %w", err)
	}

	if cfg.Repos == nil {
		cfg.Repos = make(map[string]RepoEntry)
	}

	return &cfg, nil
}

// Save writes the registry to the repos file.
func (r *ReposConfig) Save(basePath string) error {
	if err := os.MkdirAll(ConfigDir(basePath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling repos config: %w", err)
	}

	if err := os.WriteFile(ReposFilePath(basePath), data, 0600); err != nil {
		return fmt.Errorf("writing repos file: %w", err)
	}

	return nil
}

// Add adds a repository to the registry.
func (r *ReposConfig) Add(name string, entry RepoEntry) {
	if r.Repos == nil {
		r.Repos = make(map[string]RepoEntry)
	}
	r.Repos[name] = entry
}

// Remove removes a repository from the registry.
func (r *ReposConfig) Remove(name string) {
	if r.Repos != nil {
		delete(r.Repos, name)
	}
}

// Names returns the registered repository names in sorted order.
func (r *ReposConfig) Names() []string {
	names := make([]string, 0, len(r.Repos))
	for name := range r.Repos {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Get returns the configuration for a specific repository.
func (r *ReposConfig) Get(name string) (*RepoEntry, error) {
	if len(r.Repos) == 0 {
		return nil, errors.New("no repositories configured")
	}

	entry, ok := r.Repos[name]
	if !ok {
		names := r.Names()
		if len(names) > 5 {
			names = append(names[:5], "...")
		}
		return nil, fmt.Errorf("repository %q not found (available: %s)", name, strings.Join(names, ", "))
	}

	return &entry, nil
}

// GetPath returns the SQLite path of a repository.
func (r *ReposConfig) GetPath(name string) (string, error) {
	entry, err := r.Get(name)
	if err != nil {
		return "", err
	}
	return entry.Path, nil
}

// Exists checks if a repository exists in the registry.
func (r *ReposConfig) Exists(name string) bool {
	if r.Repos == nil {
		return false
	}
	_, ok := r.Repos[name]
	return ok
}

// ReposExists checks if a repos file exists in the given path.
func ReposExists(basePath string) bool {
	_, err := os.Stat(ReposFilePath(basePath))
	return err == nil
}
