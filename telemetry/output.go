package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/analogdigital/config"
)

// csvSink appends records of one type to a CSV file, writing the header
// with the first record only.
type csvSink[T any] struct {
	name    string
	file    *os.File
	started bool
}

func openSink[T any](dir, name string) (*csvSink[T], error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvSink[T]{name: name, file: f}, nil
}

func (s *csvSink[T]) write(rec T) error {
	records := []T{rec}
	var err error
	if s.started {
		err = gocsv.MarshalWithoutHeaders(records, s.file)
	} else {
		err = gocsv.Marshal(records, s.file)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", s.name, err)
	}
	s.started = true
	return nil
}

func (s *csvSink[T]) close() error {
	if s == nil {
		return nil
	}
	return s.file.Close()
}

// OutputManager writes one run's diagnostics into a directory: a row per
// stats window in telemetry.csv and perf.csv, a row per detected bookmark
// in bookmarks.csv, and the effective config.yaml. A nil manager discards
// everything, so callers never check whether output is enabled.
type OutputManager struct {
	dir       string
	windows   *csvSink[WindowStats]
	perf      *csvSink[PerfStatsCSV]
	bookmarks *csvSink[Bookmark]
}

// NewOutputManager creates dir and its CSV files. An empty dir disables
// output and returns a nil manager.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	var err error
	if om.windows, err = openSink[WindowStats](dir, "telemetry.csv"); err != nil {
		return nil, err
	}
	if om.perf, err = openSink[PerfStatsCSV](dir, "perf.csv"); err != nil {
		om.Close()
		return nil, err
	}
	if om.bookmarks, err = openSink[Bookmark](dir, "bookmarks.csv"); err != nil {
		om.Close()
		return nil, err
	}
	return om, nil
}

// WriteConfig records the config the display ran with.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends a closed stats window.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return om.windows.write(stats)
}

// WritePerf appends the frame phase timings for the window ending at windowEnd.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	return om.perf.write(stats.ToCSV(windowEnd))
}

// WriteBookmark appends a detected bookmark.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	return om.bookmarks.write(b)
}

// Dir returns the output directory, or "" when output is disabled.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes every open CSV file.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return errors.Join(om.windows.close(), om.perf.close(), om.bookmarks.close())
}
