package system

import (
	"fmt"
	"os"
	"os/user"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Provider defines the interface for operating-system lookups
type Provider interface {
	Username() (string, error)
	Hostname() (string, error)
	HomeDir() (string, error)
	WorkingDir() (string, error)
	IsSuperuser() bool
	ExitCode() string
	TerminalWidth() (int, bool)
}

// exitCodeVars are consulted in order for the previous command's status.
var exitCodeVars = []string{"PIPESTATUS", "LAST_EXIT_CODE"}

// RealProvider implements Provider using the running process and its environment
type RealProvider struct {
	Getenv func(string) string
}

// NewRealProvider creates a new RealProvider
func NewRealProvider() *RealProvider {
	return &RealProvider{Getenv: os.Getenv}
}

// Username returns the login name of the current user
func (r *RealProvider) Username() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("looking up current user: %w", err)
	}
	if u.Username == "" {
		return "", fmt.Errorf("current user %s has no name", u.Uid)
	}
	return u.Username, nil
}

// Hostname returns the kernel host name
func (r *RealProvider) Hostname() (string, error) {
	h, err := os.Hostname()
	if err != nil {
		return "", err
	}
	if h == "" {
		return "", fmt.Errorf("empty hostname")
	}
	return h, nil
}

func (r *RealProvider) HomeDir() (string, error) {
	return os.UserHomeDir()
}

func (r *RealProvider) WorkingDir() (string, error) {
	return os.Getwd()
}

// IsSuperuser reports whether the process runs as uid 0
func (r *RealProvider) IsSuperuser() bool {
	return os.Getuid() == 0
}

// ExitCode returns the previous command's exit status exported by the shell
// hook, or "0" when none is set.
func (r *RealProvider) ExitCode() string {
	for _, name := range exitCodeVars {
		if v := r.Getenv(name); v != "" {
			return v
		}
	}
	return "0"
}

// TerminalWidth returns the column count of the controlling terminal. The
// prompt's stdout is a pipe when the shell evaluates it, so stderr and stdin
// are tried first, then /dev/tty, then $COLUMNS.
func (r *RealProvider) TerminalWidth() (int, bool) {
	for _, f := range []*os.File{os.Stderr, os.Stdin, os.Stdout} {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w, true
		}
	}

	if tty, err := os.Open("/dev/tty"); err == nil {
		w, _, err := term.GetSize(int(tty.Fd()))
		tty.Close()
		if err == nil && w > 0 {
			return w, true
		}
	}

	if cols, err := strconv.Atoi(strings.TrimSpace(r.Getenv("COLUMNS"))); err == nil && cols > 0 {
		return cols, true
	}
	return 0, false
}

// MockProvider implements Provider for testing
type MockProvider struct {
	User      string
	Host      string
	Home      string
	Cwd       string
	Superuser bool
	Exit      string
	Width     int // 0 means unknown

	ShouldFail map[string]bool // Keyed by method name, e.g. "Username"
}

// NewMockProvider creates a new MockProvider with plausible defaults
func NewMockProvider() *MockProvider {
	return &MockProvider{
		User:       "dev",
		Host:       "box",
		Home:       "/home/dev",
		Cwd:        "/home/dev",
		Exit:       "0",
		ShouldFail: make(map[string]bool),
	}
}

func (m *MockProvider) fail(method string) error {
	if m.ShouldFail[method] {
		return fmt.Errorf("mock %s failure", method)
	}
	return nil
}

func (m *MockProvider) Username() (string, error) {
	if err := m.fail("Username"); err != nil {
		return "", err
	}
	return m.User, nil
}

func (m *MockProvider) Hostname() (string, error) {
	if err := m.fail("Hostname"); err != nil {
		return "", err
	}
	return m.Host, nil
}

func (m *MockProvider) HomeDir() (string, error) {
	if err := m.fail("HomeDir"); err != nil {
		return "", err
	}
	return m.Home, nil
}

func (m *MockProvider) WorkingDir() (string, error) {
	if err := m.fail("WorkingDir"); err != nil {
		return "", err
	}
	return m.Cwd, nil
}

func (m *MockProvider) IsSuperuser() bool {
	return m.Superuser
}

func (m *MockProvider) ExitCode() string {
	return m.Exit
}

func (m *MockProvider) TerminalWidth() (int, bool) {
	return m.Width, m.Width > 0
}

// SetShouldFail makes the named method return an error
func (m *MockProvider) SetShouldFail(method string, shouldFail bool) {
	m.ShouldFail[method] = shouldFail
}
