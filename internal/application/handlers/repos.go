package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/benestar/wikibase-datamodel/internal/domain/ports"
	"github.com/benestar/wikibase-datamodel/internal/infrastructure/config"
)

// StoreOpener opens the revision store at a database path.
type StoreOpener func(path string) (ports.RevisionStore, error)

// RepoInfo describes a registered revision repository.
type RepoInfo struct {
	Name        string
	Path        string
	Description string
}

// RepoHandler manages the repository registry in .wbdm/repos.yaml.
type RepoHandler struct {
	open StoreOpener
}

// NewRepoHandler creates a new repo handler.
func NewRepoHandler(open StoreOpener) *RepoHandler {
	return &RepoHandler{
		open: open,
	}
}

// Create registers a new repository under basePath and creates its schema.
func (h *RepoHandler) Create(ctx context.Context, basePath, name, description string) (*RepoInfo, error) {
	repos, err := config.LoadRepos(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading repos: %w", err)
	}
	if repos.Exists(name) {
		return nil, fmt.Errorf("repository %q already exists", name)
	}

	dir := config.RepoDir(basePath, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating repository directory: %w", err)
	}

	path := config.SQLitePathForRepo(basePath, name)
	if err := h.ensureSchema(ctx, path); err != nil {
		return nil, err
	}

	entry := config.RepoEntry{Path: path, Description: description}
	repos.Add(name, entry)
	if err := repos.Save(basePath); err != nil {
		return nil, fmt.Errorf("saving repos: %w", err)
	}

	return &RepoInfo{Name: name, Path: path, Description: description}, nil
}

func (h *RepoHandler) ensureSchema(ctx context.Context, path string) error {
	store, err := h.open(path)
	if err != nil {
		return fmt.Errorf("opening revision store: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// List returns the registered repositories sorted by name.
func (h *RepoHandler) List(basePath string) ([]RepoInfo, error) {
	repos, err := config.LoadRepos(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading repos: %w", err)
	}

	infos := make([]RepoInfo, 0, len(repos.Repos))
	for _, name := range repos.Names() {
		entry := repos.Repos[name]
		infos = append(infos, RepoInfo{Name: name, Path: entry.Path, Description: entry.Description})
	}
	return infos, nil
}

// Remove unregisters a repository. With purge set its database directory is
// deleted as well.
func (h *RepoHandler) Remove(basePath, name string, purge bool) error {
	repos, err := config.LoadRepos(basePath)
	if err != nil {
		return fmt.Errorf("loading repos: %w", err)
	}

	entry, err := repos.Get(name)
	if err != nil {
		return err
	}

	repos.Remove(name)
	if err := repos.Save(basePath); err != nil {
		return fmt.Errorf("saving repos: %w", err)
	}

	if purge {
		if err := os.RemoveAll(filepath.Dir(entry.Path)); err != nil {
			return fmt.Errorf("removing repository data: %w", err)
		}
	}
	return nil
}
