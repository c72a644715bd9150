package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/benestar/wikibase-datamodel/internal/application/handlers"
	"github.com/benestar/wikibase-datamodel/internal/domain/ports"
	"github.com/benestar/wikibase-datamodel/internal/domain/services"
	"github.com/benestar/wikibase-datamodel/internal/infrastructure/config"
	"github.com/benestar/wikibase-datamodel/internal/infrastructure/logging"
	"github.com/benestar/wikibase-datamodel/internal/infrastructure/relationaldb/sqlite"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	DiffHandler     *handlers.DiffHandler
	RevisionHandler *handlers.RevisionHandler
	ImportHandler   *handlers.ImportHandler
}

// baseDeps holds what every command needs, with or without a repository.
type baseDeps struct {
	cwd    string
	cfg    *config.Config
	logger *zap.SugaredLogger
}

func loadBase() (*baseDeps, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if globalNoColor {
		cfg.Output.NoColor = true
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	return &baseDeps{cwd: cwd, cfg: cfg, logger: logger}, nil
}

// openStore opens the SQLite revision store at path.
func openStore(path string) (ports.RevisionStore, error) {
	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: path})
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// withFileDeps builds the dependencies of commands that only work on files.
func withFileDeps(fn func(*Deps) error) error {
	base, err := loadBase()
	if err != nil {
		return err
	}
	defer base.logger.Sync() //nolint:errcheck // stderr sync fails on some terminals

	return fn(&Deps{
		Config:      base.cfg,
		Logger:      base.logger,
		DiffHandler: handlers.NewDiffHandler(services.NewEntityDiffService(base.logger)),
	})
}

// withDeps loads config, opens the selected repository and builds all
// handlers, then calls the provided function. It handles cleanup
// automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	base, err := loadBase()
	if err != nil {
		return err
	}
	defer base.logger.Sync() //nolint:errcheck // stderr sync fails on some terminals

	path := base.cfg.SQLite.Path
	if path == "" {
		repos, err := config.LoadRepos(base.cwd)
		if err != nil {
			return fmt.Errorf("loading repos: %w", err)
		}
		path, err = repos.GetPath(globalRepo)
		if err != nil {
			return fmt.Errorf("%w (run 'wbdm init' or 'wbdm repos create')", err)
		}
	}

	store, err := openStore(path)
	if err != nil {
		return fmt.Errorf("opening revision store: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	logger := base.logger.With(logging.FieldRepo, globalRepo)
	differ := services.NewEntityDiffService(logger)
	revisions := services.NewRevisionService(store, differ, logger)
	importer := services.NewImportService(store, revisions, logger)

	logger.Debugw("Opened revision store", logging.FieldPath, path)

	return fn(&Deps{
		Config:          base.cfg,
		Logger:          logger,
		DiffHandler:     handlers.NewDiffHandler(differ),
		RevisionHandler: handlers.NewRevisionHandler(revisions),
		ImportHandler:   handlers.NewImportHandler(importer),
	})
}

// newRepoHandler builds the handler managing the repository registry.
func newRepoHandler() *handlers.RepoHandler {
	return handlers.NewRepoHandler(openStore)
}
