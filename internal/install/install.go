// Package install writes the pulse prompt hook into a shell startup file.
package install

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/juliankahlert/pulse/internal/utils"
)

// Marker starts every block written by Install. A block ends at the next
// blank line.
const Marker = "# Pulse - PS1 prompt engine"

// Shell identifies the startup-file dialect to write.
type Shell string

const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
)

// DetectShell maps a $SHELL value to a Shell. Anything that is not zsh is
// treated as bash.
func DetectShell(shellEnv string) Shell {
	if strings.HasSuffix(shellEnv, "zsh") {
		return ShellZsh
	}
	return ShellBash
}

// RCFile returns the startup file for shell under home.
func RCFile(shell Shell, home string) string {
	if shell == ShellZsh {
		return filepath.Join(home, ".zshrc")
	}
	return filepath.Join(home, ".bashrc")
}

// Block returns the lines installed for shell, marker first. command is run
// by the shell to produce the prompt.
func Block(shell Shell, command string) []string {
	ps1 := "PS1=" + utils.ShellQuote("$("+commandWord(command)+")")

	if shell == ShellZsh {
		return []string{
			Marker,
			"setopt PROMPT_SUBST",
			"autoload -Uz add-zsh-hook",
			"_pulse_precmd() { export LAST_EXIT_CODE=$?; }",
			"add-zsh-hook precmd _pulse_precmd",
			ps1,
		}
	}
	return []string{
		Marker,
		"export PROMPT_COMMAND='export LAST_EXIT_CODE=$?'",
		"export " + ps1,
	}
}

// commandWord double-quotes command when it contains characters the shell
// would split or expand.
func commandWord(command string) string {
	if strings.ContainsAny(command, " \t\"$`\\") {
		r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`")
		return `"` + r.Replace(command) + `"`
	}
	return command
}

// RemoveBlock deletes every pulse block from content: the marker line, the
// lines after it up to and including the next blank line, and one blank line
// directly before the marker. It reports whether anything was removed.
func RemoveBlock(content string) (string, bool) {
	lines := strings.Split(content, "\n")
	kept := make([]string, 0, len(lines))
	removed := false
	skipping := false

	for _, line := range lines {
		if strings.Contains(line, Marker) {
			if n := len(kept); n > 0 && kept[n-1] == "" {
				kept = kept[:n-1]
			}
			skipping = true
			removed = true
			continue
		}
		if skipping {
			if strings.TrimSpace(line) == "" {
				skipping = false
			}
			continue
		}
		kept = append(kept, line)
	}

	if !removed {
		return content, false
	}
	out := strings.Join(kept, "\n")
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, true
}

// Options controls Install
type Options struct {
	Shell   Shell
	Home    string
	Command string // prompt command, "pulse" when empty
}

// Result describes what Install changed
type Result struct {
	RCFile   string
	Replaced bool // An earlier pulse block was removed first
}

// Install replaces any existing pulse block in the shell's startup file with
// a fresh one. The file is created when missing.
func Install(opts Options) (Result, error) {
	if opts.Home == "" {
		return Result{}, fmt.Errorf("home directory is not set")
	}
	if opts.Command == "" {
		opts.Command = utils.BinaryName
	}

	res := Result{RCFile: RCFile(opts.Shell, opts.Home)}

	perm := fs.FileMode(0o644)
	var content string
	info, err := os.Stat(res.RCFile)
	switch {
	case err == nil:
		perm = info.Mode().Perm()
		data, err := os.ReadFile(res.RCFile)
		if err != nil {
			return res, fmt.Errorf("failed to read %s: %w", res.RCFile, err)
		}
		content = string(data)
	case !errors.Is(err, fs.ErrNotExist):
		return res, fmt.Errorf("failed to stat %s: %w", res.RCFile, err)
	}

	content, res.Replaced = RemoveBlock(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += "\n" + strings.Join(Block(opts.Shell, opts.Command), "\n") + "\n"

	if err := os.WriteFile(res.RCFile, []byte(content), perm); err != nil {
		return res, fmt.Errorf("failed to write %s: %w", res.RCFile, err)
	}
	return res, nil
}
