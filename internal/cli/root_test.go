package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/juliankahlert/pulse/internal/config"
	"github.com/juliankahlert/pulse/internal/install"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	// Keep the user's own config out of the layering
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCmd_Help(t *testing.T) {
	output, err := executeRoot(t, "--help")
	if err != nil {
		t.Fatalf("Execute() with --help error = %v", err)
	}

	expectedStrings := []string{
		"pulse prints a shell prompt",
		"Available Commands:",
		"preview",
		"--config",
		"--inline",
		"--install",
		"--generate-completions",
	}

	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("Help output missing expected string: %q", expected)
		}
	}
}

func TestRootCmd_InvalidCommand(t *testing.T) {
	if _, err := executeRoot(t, "invalid-command"); err == nil {
		t.Error("Expected error for invalid command")
	}
}

func TestRootCmd_Version(t *testing.T) {
	output, err := executeRoot(t, "--version")
	if err != nil {
		t.Fatalf("Execute() with --version error = %v", err)
	}
	if !strings.Contains(output, Version) {
		t.Errorf("version output %q missing %q", output, Version)
	}
}

func TestRootCmd_PrintsPrompt(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Setenv("LAST_EXIT_CODE", "7")
	t.Setenv("PIPESTATUS", "")
	cfg := writeConfig(t, "mode: DualLine\n")

	output, err := executeRoot(t, "--config", cfg)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	lines := strings.Split(output, "\n")
	if len(lines) != 2 {
		t.Fatalf("prompt has %d lines, want 2: %q", len(lines), output)
	}
	if !strings.HasPrefix(lines[1], "└─ 7 ") {
		t.Errorf("second line = %q, want exit code 7", lines[1])
	}
	if !strings.HasSuffix(output, "$ ") && !strings.HasSuffix(output, "# ") {
		t.Errorf("prompt %q does not end with a glyph", output)
	}
	if strings.Contains(output, "\x1b[") {
		t.Errorf("NO_COLOR prompt contains escape sequences: %q", output)
	}
}

func TestRootCmd_Inline(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	output, err := executeRoot(t, "--inline", "--config", writeConfig(t, "mode: DualLine\n"))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.Contains(output, "\n") {
		t.Errorf("--inline prompt spans lines: %q", output)
	}
}

func TestRootCmd_ConfigErrors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, err := executeRoot(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, config.ErrNotFound) {
		t.Errorf("missing --config: error = %v, want ErrNotFound", err)
	}

	output, err := executeRoot(t, "--config", writeConfig(t, "mode: Sideways\n"))
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("invalid --config: error = %v, want ErrInvalid", err)
	}
	if output != "" {
		t.Errorf("failed render wrote %q to stdout", output)
	}
}

func TestRootCmd_GenerateCompletions(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{"bash", "bash completion V2 for pulse"},
		{"zsh", "#compdef pulse"},
		{"fish", "fish completion for pulse"},
		{"powershell", "powershell completion for pulse"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			output, err := executeRoot(t, "--generate-completions", tt.shell)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if !strings.Contains(output, tt.want) {
				t.Errorf("completion output missing %q", tt.want)
			}
		})
	}

	if _, err := executeRoot(t, "--generate-completions", "tcsh"); !errors.Is(err, errUnknownShell) {
		t.Errorf("tcsh: error = %v, want errUnknownShell", err)
	}
}

func TestRootCmd_Install(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SHELL", "/usr/bin/zsh")

	output, err := executeRoot(t, "--install")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	rc := filepath.Join(home, ".zshrc")
	if !strings.Contains(output, rc) {
		t.Errorf("install output %q does not name %s", output, rc)
	}

	data, err := os.ReadFile(rc)
	if err != nil {
		t.Fatalf("reading %s: %v", rc, err)
	}
	if !strings.Contains(string(data), install.Marker) {
		t.Errorf("%s missing pulse block:\n%s", rc, data)
	}

	output, err = executeRoot(t, "--install")
	if err != nil {
		t.Fatalf("second install error = %v", err)
	}
	if !strings.Contains(output, "Replaced") {
		t.Errorf("second install output = %q, want replacement notice", output)
	}
}

func TestRootCmd_InstallAndCompletionsExclusive(t *testing.T) {
	if _, err := executeRoot(t, "--install", "--generate-completions", "bash"); err == nil {
		t.Error("--install with --generate-completions should fail")
	}
}

func TestPreviewCmd_Registered(t *testing.T) {
	rootCmd := NewRootCmd()
	found, _, err := rootCmd.Find([]string{"preview"})
	if err != nil || found.Name() != "preview" {
		t.Errorf("preview command not found: %v", err)
	}
	found, _, err = rootCmd.Find([]string{"tui"})
	if err != nil || found.Name() != "preview" {
		t.Errorf("tui alias not found: %v", err)
	}
}
