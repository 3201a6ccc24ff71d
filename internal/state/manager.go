package state

import (
	"errors"
	"fmt"
	"sync"

	"github.com/juliankahlert/pulse/internal/clients/git"
	"github.com/juliankahlert/pulse/internal/clients/system"
	"github.com/juliankahlert/pulse/internal/logger"
	"github.com/juliankahlert/pulse/internal/prompt"
	"github.com/juliankahlert/pulse/internal/types"
)

// ErrFieldUnavailable means a value required by every prompt could not be
// obtained. The render is aborted.
var ErrFieldUnavailable = errors.New("prompt field unavailable")

// Config holds configuration for the Manager
type Config struct {
	GitChecker git.Checker     // Injectable git operations
	System     system.Provider // Injectable OS lookups
	Logger     *logger.Logger
}

// Manager gathers the prompt fields from the environment
type Manager struct {
	config Config
	mu     sync.Mutex

	repoDir string
	repo    *git.Lazy
}

// NewManager creates a new Manager with the given configuration
func NewManager(config Config) *Manager {
	// Use real clients if not provided
	if config.GitChecker == nil {
		config.GitChecker = git.NewRealChecker()
	}
	if config.System == nil {
		config.System = system.NewRealProvider()
	}
	if config.Logger == nil {
		config.Logger = logger.Nop()
	}

	return &Manager{config: config}
}

// DeriveFields collects every value the prompt needs. Username, hostname and
// working directory are required; failing to read any of them returns
// ErrFieldUnavailable. Not being inside a repository is not an error.
func (m *Manager) DeriveFields() (types.Fields, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sys := m.config.System

	user, err := sys.Username()
	if err != nil {
		return types.Fields{}, fmt.Errorf("%w: username: %v", ErrFieldUnavailable, err)
	}
	host, err := sys.Hostname()
	if err != nil {
		return types.Fields{}, fmt.Errorf("%w: hostname: %v", ErrFieldUnavailable, err)
	}
	cwd, err := sys.WorkingDir()
	if err != nil {
		return types.Fields{}, fmt.Errorf("%w: working directory: %v", ErrFieldUnavailable, err)
	}

	home, err := sys.HomeDir()
	if err != nil {
		m.config.Logger.Debug("home directory unavailable, not abbreviating", "error", err)
		home = ""
	}

	fields := types.Fields{
		User:      user,
		Host:      host,
		Identity:  user,
		Dir:       abbreviateHome(cwd, home),
		Superuser: sys.IsSuperuser(),
		ExitCode:  sys.ExitCode(),
	}

	info, err := m.repoFor(cwd).Get()
	switch {
	case errors.Is(err, git.ErrNotRepository):
		m.config.Logger.Debug("not in a repository", "dir", cwd)
	case err != nil:
		m.config.Logger.Warn("repository discovery failed", "dir", cwd, "error", err)
	default:
		fields.Repo = &types.RepoContext{
			Name:     info.Name,
			Branch:   info.Branch,
			Segments: prompt.SplitPath(info.Prefix),
		}
		if info.Email != "" {
			fields.Identity = info.Email
		}
		m.config.Logger.Debug("repository discovered",
			"repo", info.Name, "branch", info.Branch, "prefix", info.Prefix)
	}

	return fields, nil
}

// TerminalWidth returns the terminal's column count, or prompt.DefaultWidth
// when it cannot be determined.
func (m *Manager) TerminalWidth() int {
	if w, ok := m.config.System.TerminalWidth(); ok {
		return w
	}
	m.config.Logger.Debug("terminal width unknown, using default", "width", prompt.DefaultWidth)
	return prompt.DefaultWidth
}

// repoFor returns the memoized discovery for dir. Discovery is redone only
// when the working directory changes between calls.
func (m *Manager) repoFor(dir string) *git.Lazy {
	if m.repo == nil || m.repoDir != dir {
		m.repoDir = dir
		m.repo = git.NewLazy(m.config.GitChecker, dir)
	}
	return m.repo
}
