package contextref

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// GitSourceConfig configures a git-synced context asset source.
type GitSourceConfig struct {
	// Repository is the remote URL to clone context assets from.
	Repository string `yaml:"repository"`

	// Branch is the branch to track. Default: "main".
	Branch string `yaml:"branch"`

	// Path is the directory inside the repository that holds asset
	// collections. Empty means the repository root.
	Path string `yaml:"path"`

	// LocalPath is where the repository is cloned. Defaults to a directory
	// under the system temp dir.
	LocalPath string `yaml:"local_path"`

	// Depth enables shallow clones when greater than zero.
	Depth int `yaml:"depth"`

	// Token is an access token for private repositories, if needed.
	Token string `yaml:"token"`

	// SyncTimeout bounds each clone or pull operation.
	SyncTimeout time.Duration `yaml:"sync_timeout"`
}

// AssetStore is the writable side of a context store that a GitSource syncs
// into. Both SQLiteResolver and MemoryResolver satisfy it; SQLiteResolver is
// the usual target.
type AssetStore interface {
	Put(ctx context.Context, path, content string) error
}

// GitSource keeps a local clone of a context asset repository and loads its
// files into an AssetStore. The repository layout maps directly onto reference
// paths: a file at <path>/<collection>/<asset-id> becomes
// plp://<collection>/<asset-id>.
type GitSource struct {
	config GitSourceConfig
	repo   *gogit.Repository
	mu     sync.Mutex
	logger *slog.Logger
}

// NewGitSource creates a git-backed context asset source.
func NewGitSource(config GitSourceConfig) (*GitSource, error) {
	if config.Repository == "" {
		return nil, fmt.Errorf("repository URL cannot be empty")
	}
	if config.Branch == "" {
		config.Branch = "main"
	}
	if config.LocalPath == "" {
		config.LocalPath = filepath.Join(os.TempDir(), "echo-context-assets")
	}
	if config.SyncTimeout <= 0 {
		config.SyncTimeout = 60 * time.Second
	}

	return &GitSource{
		config: config,
		logger: slog.Default().With("component", "context-git-source"),
	}, nil
}

// Clone initializes the local clone. If a clone already exists at LocalPath it
// is opened instead.
func (g *GitSource) Clone(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	gitDir := filepath.Join(g.config.LocalPath, ".git")
	if _, err := os.Stat(gitDir); err == nil {
		repo, err := gogit.PlainOpen(g.config.LocalPath)
		if err != nil {
			return fmt.Errorf("failed to open existing repo: %w", err)
		}
		g.repo = repo
		return nil
	}

	if err := os.MkdirAll(g.config.LocalPath, 0755); err != nil {
		return fmt.Errorf("failed to create clone directory: %w", err)
	}

	cloneOpts := &gogit.CloneOptions{
		URL:           g.config.Repository,
		ReferenceName: plumbing.NewBranchReferenceName(g.config.Branch),
		SingleBranch:  g.config.Depth > 0,
		Depth:         g.config.Depth,
		Auth:          g.auth(),
	}

	cloneCtx, cancel := context.WithTimeout(ctx, g.config.SyncTimeout)
	defer cancel()

	repo, err := gogit.PlainCloneContext(cloneCtx, g.config.LocalPath, false, cloneOpts)
	if err != nil {
		return fmt.Errorf("failed to clone context repository: %w", err)
	}

	g.repo = repo
	g.logger.Info("context repository cloned",
		"repository", g.config.Repository,
		"branch", g.config.Branch,
		"local_path", g.config.LocalPath,
	)
	return nil
}

// Pull fetches the latest changes. Returns true if the clone advanced.
func (g *GitSource) Pull(ctx context.Context) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.repo == nil {
		return false, fmt.Errorf("repository not initialized, call Clone() first")
	}

	ref, err := g.repo.Head()
	if err != nil {
		return false, fmt.Errorf("failed to get HEAD: %w", err)
	}
	before := ref.Hash()

	worktree, err := g.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("failed to get worktree: %w", err)
	}

	pullCtx, cancel := context.WithTimeout(ctx, g.config.SyncTimeout)
	defer cancel()

	err = worktree.PullContext(pullCtx, &gogit.PullOptions{
		RemoteName: "origin",
		Auth:       g.auth(),
	})
	if err != nil && err != gogit.NoErrAlreadyUpToDate {
		return false, fmt.Errorf("failed to pull context repository: %w", err)
	}

	ref, err = g.repo.Head()
	if err != nil {
		return false, fmt.Errorf("failed to get new HEAD: %w", err)
	}
	return ref.Hash() != before, nil
}

// Sync walks the asset directory of the local clone and loads every file into
// the store. File names become asset-ids relative to their collection
// directory; hidden files and files that would produce invalid paths are
// skipped with a warning.
func (g *GitSource) Sync(ctx context.Context, store AssetStore) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.repo == nil {
		return 0, fmt.Errorf("repository not initialized, call Clone() first")
	}

	root := filepath.Join(g.config.LocalPath, g.config.Path)
	if _, err := os.Stat(root); err != nil {
		return 0, fmt.Errorf("asset path does not exist: %w", err)
	}

	loaded := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		refPath := Scheme + filepath.ToSlash(rel)
		if err := ValidatePath(refPath); err != nil {
			g.logger.Warn("skipping asset with unmappable path",
				"file", rel,
				"error", err,
			)
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read asset %s: %w", rel, err)
		}

		if err := store.Put(ctx, refPath, string(content)); err != nil {
			return fmt.Errorf("failed to store asset %s: %w", refPath, err)
		}
		loaded++
		return nil
	})
	if err != nil {
		return loaded, err
	}

	g.logger.Info("context assets synced", "count", loaded)
	return loaded, nil
}

// CurrentCommit returns the SHA of the current HEAD.
func (g *GitSource) CurrentCommit() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.repo == nil {
		return "", fmt.Errorf("repository not initialized")
	}
	ref, err := g.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	return ref.Hash().String(), nil
}

func (g *GitSource) auth() *githttp.BasicAuth {
	if g.config.Token == "" {
		return nil
	}
	// go-git treats the token as the password; the username only has to be
	// non-empty.
	return &githttp.BasicAuth{Username: "token", Password: g.config.Token}
}
