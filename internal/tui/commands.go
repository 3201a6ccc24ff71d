package tui

import (
	"fmt"
	"path/filepath"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// startEventChannelListener creates a command that listens for file events
func (m Model) startEventChannelListener() tea.Cmd {
	return func() tea.Msg {
		// This will block until an event is received
		return <-m.eventChan
	}
}

// setupFileWatching watches the directories holding the config files.
// Editors often replace a file instead of writing it, which drops a watch
// on the file itself, so events are matched by name inside the directory.
func (m Model) setupFileWatching() tea.Cmd {
	files := m.files
	eventChan := m.eventChan
	log := m.log

	return func() tea.Msg {
		if len(files) == 0 {
			return nil
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return errorMsg{err: fmt.Errorf("failed to create file watcher: %w", err)}
		}

		watched := 0
		var dirs []string
		for _, f := range files {
			dir := filepath.Dir(f)
			if slices.Contains(dirs, dir) {
				continue
			}
			dirs = append(dirs, dir)
			if err := watcher.Add(dir); err != nil {
				// Directory does not exist yet
				log.Debug("not watching config directory", "dir", dir, "error", err)
				continue
			}
			log.Debug("watching config directory", "dir", dir)
			watched++
		}
		if watched == 0 {
			watcher.Close()
			return nil
		}

		go func() {
			var pending *time.Timer
			for {
				select {
				case event, ok := <-watcher.Events:
					if !ok {
						return
					}
					if !isConfigEvent(event, files) {
						continue
					}
					log.Debug("config file event", "op", event.Op.String(), "file", event.Name)

					if pending != nil {
						pending.Stop()
					}
					pending = time.AfterFunc(reloadDebounce, func() {
						select {
						case eventChan <- configChangedMsg{}:
						default: // Channel full, skip this event
						}
					})

				case err, ok := <-watcher.Errors:
					if !ok {
						return
					}
					select {
					case eventChan <- errorMsg{err: fmt.Errorf("file watcher error: %w", err), watcher: true}:
					default: // Channel full, skip this event
					}
				}
			}
		}()

		// Return the watcher setup message so the model can store it
		return fileWatcherSetupMsg{watcher: watcher}
	}
}

// isConfigEvent reports whether event changed one of files
func isConfigEvent(event fsnotify.Event, files []string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	name := filepath.Clean(event.Name)
	for _, f := range files {
		if filepath.Clean(f) == name {
			return true
		}
	}
	return false
}

// reloadConfig reads the configuration again
func (m Model) reloadConfig() tea.Cmd {
	load := m.loadConfig
	return func() tea.Msg {
		cfg, err := load()
		if err != nil {
			return errorMsg{err: fmt.Errorf("failed to reload config: %w", err)}
		}
		return configLoadedMsg{cfg: cfg}
	}
}

// refreshFields reads the prompt fields again
func (m Model) refreshFields() tea.Cmd {
	source := m.fields
	return func() tea.Msg {
		fields, err := source.DeriveFields()
		if err != nil {
			return errorMsg{err: fmt.Errorf("failed to refresh fields: %w", err)}
		}
		return fieldsLoadedMsg{fields: fields}
	}
}
