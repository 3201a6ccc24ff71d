package git

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/juliankahlert/pulse/internal/types"
)

// ErrNotRepository means the directory is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// unknownBranch is shown when HEAD resolves to neither a branch nor a commit.
const unknownBranch = "unknown"

// Checker defines the interface for git operations
type Checker interface {
	Discover(dir string) (types.RepoInfo, error)
}

// RealChecker implements Checker using actual git commands
type RealChecker struct {
	Binary string // git executable, "git" when empty
}

// NewRealChecker creates a new RealChecker
func NewRealChecker() *RealChecker {
	return &RealChecker{Binary: "git"}
}

// Discover finds the work tree containing dir and reads the branch and the
// configured user email. Any failure to locate a work tree (including a
// missing git binary) is reported as ErrNotRepository.
func (r *RealChecker) Discover(dir string) (types.RepoInfo, error) {
	out, err := r.git(dir, "rev-parse", "--show-toplevel", "--show-prefix")
	if err != nil {
		return types.RepoInfo{}, fmt.Errorf("%w: %v", ErrNotRepository, err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	workDir := strings.TrimSpace(lines[0])
	if workDir == "" {
		return types.RepoInfo{}, ErrNotRepository
	}
	var prefix string
	if len(lines) > 1 {
		prefix = strings.TrimSuffix(strings.TrimSpace(lines[1]), "/")
	}

	return types.RepoInfo{
		Name:    filepath.Base(workDir),
		Branch:  r.branch(dir),
		Email:   r.userEmail(dir),
		WorkDir: workDir,
		Prefix:  prefix,
	}, nil
}

// branch returns the short branch name, or the abbreviated commit hash when
// HEAD is detached.
func (r *RealChecker) branch(dir string) string {
	if out, err := r.git(dir, "symbolic-ref", "--quiet", "--short", "HEAD"); err == nil {
		if name := strings.TrimSpace(out); name != "" {
			return name
		}
	}
	if out, err := r.git(dir, "rev-parse", "--short=7", "HEAD"); err == nil {
		if hash := strings.TrimSpace(out); hash != "" {
			return hash
		}
	}
	return unknownBranch
}

// userEmail gets user.email from the effective git config
func (r *RealChecker) userEmail(dir string) string {
	out, err := r.git(dir, "config", "--get", "user.email")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

func (r *RealChecker) git(dir string, args ...string) (string, error) {
	bin := r.Binary
	if bin == "" {
		bin = "git"
	}
	cmd := exec.Command(bin, args...)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return string(output), nil
}

// Lazy memoizes discovery for one directory. The first Get runs the
// checker; later calls return the same result.
type Lazy struct {
	get func() (types.RepoInfo, error)
}

// NewLazy creates a Lazy that discovers dir with c on first use.
func NewLazy(c Checker, dir string) *Lazy {
	return &Lazy{get: sync.OnceValues(func() (types.RepoInfo, error) {
		return c.Discover(dir)
	})}
}

// Get returns the memoized discovery result.
func (l *Lazy) Get() (types.RepoInfo, error) {
	return l.get()
}

// MockChecker implements Checker for testing
type MockChecker struct {
	Repos map[string]types.RepoInfo // Keyed by directory
	Calls int
}

// NewMockChecker creates a new MockChecker
func NewMockChecker() *MockChecker {
	return &MockChecker{Repos: make(map[string]types.RepoInfo)}
}

// Discover returns the repository registered for dir
func (m *MockChecker) Discover(dir string) (types.RepoInfo, error) {
	m.Calls++
	info, ok := m.Repos[dir]
	if !ok {
		return types.RepoInfo{}, ErrNotRepository
	}
	return info, nil
}

// SetRepo registers repository information for a directory
func (m *MockChecker) SetRepo(dir string, info types.RepoInfo) {
	m.Repos[dir] = info
}
