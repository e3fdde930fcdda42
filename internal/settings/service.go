// Package settings keeps the report settings in sync with the config file,
// reloading them whenever the file changes on disk.
package settings

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/reportbot/internal/config"
)

const debounceInterval = 100 * time.Millisecond

// Event is emitted after every reload attempt.
type Event struct {
	Settings config.ReportSettings
	Error    error
}

// Service serves the current report settings.
type Service struct {
	mu            sync.RWMutex
	current       config.ReportSettings
	filePath      string
	log           *slog.Logger
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	debounceTimer *time.Timer
	closeOnce     sync.Once
}

// New returns a service seeded with initial. When path is set and its
// directory exists, the file is watched and re-resolved on every change.
func New(path string, initial config.ReportSettings, log *slog.Logger) (*Service, error) {
	s := &Service{
		current:   initial,
		filePath:  path,
		log:       log,
		eventChan: make(chan Event, 16),
		stopChan:  make(chan struct{}),
	}

	if path == "" {
		return s, nil
	}

	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		log.Info("config directory not found, settings will not be reloaded", "dir", dir)
		return s, nil
	}

	if err := s.startWatcher(dir); err != nil {
		return nil, fmt.Errorf("failed to start file watcher: %w", err)
	}

	return s, nil
}

// Current returns a copy of the current settings.
func (s *Service) Current() config.ReportSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return config.ReportSettings{
		Services:     slices.Clone(s.current.Services),
		Strict:       s.current.Strict,
		AllowedChats: slices.Clone(s.current.AllowedChats),
	}
}

// Allowed reports whether chatID may request a report.
func (s *Service) Allowed(chatID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.current.AllowedChats) == 0 {
		return true
	}
	return slices.Contains(s.current.AllowedChats, chatID)
}

// Events returns the reload event channel.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Reload re-reads the config file. On error the previous settings stay.
func (s *Service) Reload() error {
	file, err := config.LoadFile(s.filePath)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", s.filePath, err)
	}

	next, err := config.ResolveReport(file)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	return nil
}

// startWatcher watches the directory so that editors replacing the file
// (write to temp, rename) are noticed too.
func (s *Service) startWatcher(dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	if err := watcher.Add(dir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			s.log.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	go s.watchLoop()
	return nil
}

// watchLoop handles file system events with debouncing.
func (s *Service) watchLoop() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filepath.Base(s.filePath) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				s.mu.Lock()
				if s.debounceTimer != nil {
					s.debounceTimer.Stop()
				}
				s.debounceTimer = time.AfterFunc(debounceInterval, s.handleFileChange)
				s.mu.Unlock()
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn("config watcher error", "error", err)
			s.sendEvent(Event{Error: err})

		case <-s.stopChan:
			return
		}
	}
}

// handleFileChange reloads settings after an external change.
func (s *Service) handleFileChange() {
	select {
	case <-s.stopChan:
		return
	default:
	}

	if err := s.Reload(); err != nil {
		s.log.Warn("keeping previous report settings", "path", s.filePath, "error", err)
		s.sendEvent(Event{Settings: s.Current(), Error: err})
		return
	}

	current := s.Current()
	s.log.Info("report settings reloaded",
		"services", current.Services,
		"strict", current.Strict,
		"allowed_chats", len(current.AllowedChats),
	)
	s.sendEvent(Event{Settings: current})
}

func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops watching the file.
func (s *Service) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stopChan)

		s.mu.Lock()
		if s.debounceTimer != nil {
			s.debounceTimer.Stop()
		}
		s.mu.Unlock()

		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}
