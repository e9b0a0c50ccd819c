package iostore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/huangsam/workbench/internal/contract"
	"github.com/huangsam/workbench/schema"
	"go.uber.org/zap"
)

// reloadDebounce coalesces the burst of events an editor or a rename produces.
const reloadDebounce = 100 * time.Millisecond

// FileDefectSource serves defect records from a JSON array file held in memory.
// With watching enabled the snapshot is reloaded after the file changes; a failed reload
// keeps the last good snapshot.
type FileDefectSource struct {
	path string

	mu            sync.RWMutex
	records       []schema.DefectRecord
	loaded        bool
	debounceTimer *time.Timer

	watcher   *fsnotify.Watcher
	stopChan  chan struct{}
	doneChan  chan struct{}
	closeOnce sync.Once
}

var _ contract.DefectSource = &FileDefectSource{} // Compile-time check

// NewFileDefectSource loads path and optionally starts watching it. A file that cannot be read
// yet is not an error here; Records keeps retrying until it succeeds.
func NewFileDefectSource(path string, watch bool) (*FileDefectSource, error) {
	s := &FileDefectSource{
		path:     path,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
	if err := s.reload(); err != nil {
		contract.LogWarn("defects file not loaded", err)
	}

	if !watch {
		close(s.doneChan)
		return s, nil
	}
	if err := s.startWatcher(); err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}
	return s, nil
}

// NewStaticDefectSource returns a source that always serves records.
func NewStaticDefectSource(records []schema.DefectRecord) *FileDefectSource {
	s := &FileDefectSource{
		records:  slices.Clone(records),
		loaded:   true,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
	close(s.doneChan)
	return s
}

// Records returns a copy of the current snapshot.
func (s *FileDefectSource) Records(ctx context.Context) ([]schema.DefectRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	loaded := s.loaded
	out := slices.Clone(s.records)
	s.mu.RUnlock()
	if loaded {
		return out, nil
	}

	if err := s.reload(); err != nil {
		return nil, &schema.StorageError{Op: "read", Err: err}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records), nil
}

// Close stops the file watcher and cleans up resources.
func (s *FileDefectSource) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stopChan)
		<-s.doneChan

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

// reload reads and parses the file, replacing the snapshot only on success.
func (s *FileDefectSource) reload() error {
	if s.path == "" {
		return fmt.Errorf("no defects file configured")
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	records, err := decodeDefects(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.records = records
	s.loaded = true
	s.mu.Unlock()
	return nil
}

func decodeDefects(data []byte) ([]schema.DefectRecord, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []schema.DefectRecord{}, nil
	}
	var records []schema.DefectRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// startWatcher watches the parent directory, which also catches files replaced by rename.
func (s *FileDefectSource) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		_ = watcher.Close()
		return err
	}
	s.watcher = watcher

	go s.watchLoop()
	return nil
}

// watchLoop handles file system events with debouncing.
func (s *FileDefectSource) watchLoop() {
	defer close(s.doneChan)
	base := filepath.Base(s.path)

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			s.mu.Lock()
			if s.debounceTimer != nil {
				s.debounceTimer.Stop()
			}
			s.debounceTimer = time.AfterFunc(reloadDebounce, s.handleFileChange)
			s.mu.Unlock()

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			contract.LogWarn("defects watcher error", err)

		case <-s.stopChan:
			return
		}
	}
}

func (s *FileDefectSource) handleFileChange() {
	select {
	case <-s.stopChan:
		return
	default:
	}
	if err := s.reload(); err != nil {
		contract.LogWarn("defects reload failed, keeping previous snapshot", err)
		return
	}
	s.mu.RLock()
	n := len(s.records)
	s.mu.RUnlock()
	contract.Logger().Info("defects reloaded", zap.String("path", s.path), zap.Int("records", n))
}
