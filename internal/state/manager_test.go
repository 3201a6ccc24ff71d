package state

import (
	"errors"
	"reflect"
	"testing"

	"github.com/juliankahlert/pulse/internal/clients/git"
	"github.com/juliankahlert/pulse/internal/clients/system"
	"github.com/juliankahlert/pulse/internal/prompt"
	"github.com/juliankahlert/pulse/internal/types"
)

func newTestManager() (*Manager, *git.MockChecker, *system.MockProvider) {
	checker := git.NewMockChecker()
	sys := system.NewMockProvider()
	sys.User = "alice"
	sys.Host = "box"
	sys.Home = "/home/alice"
	sys.Cwd = "/home/alice/projects/x"

	manager := NewManager(Config{
		GitChecker: checker,
		System:     sys,
	})
	return manager, checker, sys
}

func TestManager_DeriveFields_OutsideRepository(t *testing.T) {
	manager, _, sys := newTestManager()
	sys.Exit = "42"

	fields, err := manager.DeriveFields()
	if err != nil {
		t.Fatalf("DeriveFields() error = %v", err)
	}

	want := types.Fields{
		User:     "alice",
		Host:     "box",
		Identity: "alice",
		Dir:      "~/projects/x",
		ExitCode: "42",
	}
	if !reflect.DeepEqual(fields, want) {
		t.Errorf("DeriveFields() = %+v, want %+v", fields, want)
	}
	if fields.InRepo() {
		t.Error("InRepo() = true outside a repository")
	}
}

func TestManager_DeriveFields_InRepository(t *testing.T) {
	manager, checker, sys := newTestManager()
	sys.Cwd = "/srv/code/myproject/src/main/rust"
	sys.Superuser = true
	checker.SetRepo(sys.Cwd, types.RepoInfo{
		Name:    "myproject",
		Branch:  "main",
		Email:   "alice@example.com",
		WorkDir: "/srv/code/myproject",
		Prefix:  "src/main/rust",
	})

	fields, err := manager.DeriveFields()
	if err != nil {
		t.Fatalf("DeriveFields() error = %v", err)
	}

	if fields.Identity != "alice@example.com" {
		t.Errorf("Identity = %q, want the configured email", fields.Identity)
	}
	if fields.Dir != "/srv/code/myproject/src/main/rust" {
		t.Errorf("Dir = %q", fields.Dir)
	}
	if !fields.Superuser {
		t.Error("Superuser = false, want true")
	}
	want := &types.RepoContext{Name: "myproject", Branch: "main", Segments: []string{"src", "main", "rust"}}
	if !reflect.DeepEqual(fields.Repo, want) {
		t.Errorf("Repo = %+v, want %+v", fields.Repo, want)
	}
}

func TestManager_DeriveFields_IdentityFallsBackToUser(t *testing.T) {
	manager, checker, sys := newTestManager()
	checker.SetRepo(sys.Cwd, types.RepoInfo{Name: "x", Branch: "dev"})

	fields, err := manager.DeriveFields()
	if err != nil {
		t.Fatalf("DeriveFields() error = %v", err)
	}
	if fields.Identity != "alice" {
		t.Errorf("Identity = %q, want alice", fields.Identity)
	}
	if fields.Repo == nil || len(fields.Repo.Segments) != 0 {
		t.Errorf("Repo = %+v, want no segments at the repository root", fields.Repo)
	}
}

func TestManager_DeriveFields_UnavailableField(t *testing.T) {
	for _, method := range []string{"Username", "Hostname", "WorkingDir"} {
		t.Run(method, func(t *testing.T) {
			manager, _, sys := newTestManager()
			sys.SetShouldFail(method, true)

			_, err := manager.DeriveFields()
			if !errors.Is(err, ErrFieldUnavailable) {
				t.Errorf("DeriveFields() error = %v, want ErrFieldUnavailable", err)
			}
		})
	}
}

func TestManager_DeriveFields_MissingHomeIsNotFatal(t *testing.T) {
	manager, _, sys := newTestManager()
	sys.SetShouldFail("HomeDir", true)

	fields, err := manager.DeriveFields()
	if err != nil {
		t.Fatalf("DeriveFields() error = %v", err)
	}
	if fields.Dir != "/home/alice/projects/x" {
		t.Errorf("Dir = %q, want the unabbreviated path", fields.Dir)
	}
}

func TestManager_DiscoversRepositoryOncePerDirectory(t *testing.T) {
	manager, checker, sys := newTestManager()

	for i := 0; i < 3; i++ {
		if _, err := manager.DeriveFields(); err != nil {
			t.Fatalf("DeriveFields() error = %v", err)
		}
	}
	if checker.Calls != 1 {
		t.Errorf("Discover called %d times, want 1", checker.Calls)
	}

	sys.Cwd = "/tmp"
	if _, err := manager.DeriveFields(); err != nil {
		t.Fatalf("DeriveFields() error = %v", err)
	}
	if checker.Calls != 2 {
		t.Errorf("Discover called %d times after cd, want 2", checker.Calls)
	}
}

func TestManager_TerminalWidth(t *testing.T) {
	manager, _, sys := newTestManager()

	if got := manager.TerminalWidth(); got != prompt.DefaultWidth {
		t.Errorf("TerminalWidth() = %d, want default %d", got, prompt.DefaultWidth)
	}

	sys.Width = 57
	if got := manager.TerminalWidth(); got != 57 {
		t.Errorf("TerminalWidth() = %d, want 57", got)
	}
}

func TestAbbreviateHome(t *testing.T) {
	tests := []struct {
		dir  string
		home string
		want string
	}{
		{"/home/alice", "/home/alice", "~"},
		{"/home/alice/", "/home/alice", "~"},
		{"/home/alice/projects/x", "/home/alice", "~/projects/x"},
		{"/home/alice2/x", "/home/alice", "/home/alice2/x"},
		{"/etc", "/home/alice", "/etc"},
		{"/home/alice/x", "", "/home/alice/x"},
		{"/x", "/", "/x"},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			if got := abbreviateHome(tt.dir, tt.home); got != tt.want {
				t.Errorf("abbreviateHome(%q, %q) = %q, want %q", tt.dir, tt.home, got, tt.want)
			}
		})
	}
}
