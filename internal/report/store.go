// SPDX-License-Identifier: Apache-2.0

package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Extension is the report document file extension recognized by the Store.
const Extension = ".trf"

// Empty-result conditions. These are normal, reportable outcomes of loading
// a data directory, not faults; callers distinguish them with errors.Is and
// turn them into descriptive messages.
var (
	ErrDataDirNotFound = errors.New("data directory not found")
	ErrNoDocuments     = errors.New("no report documents found in data directory")
	ErrNoRecords       = errors.New("no test records found")
)

// Store loads records from every .trf document in a directory. Nothing is
// cached: each Load re-reads and re-parses every file, which is acceptable
// for small-to-moderate file counts.
type Store struct {
	dir string
	log *zap.Logger
}

// NewStore creates a Store over the given directory. A nil logger is
// replaced with a no-op logger.
func NewStore(dir string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{dir: dir, log: log}
}

// Dir returns the directory this Store reads from.
func (s *Store) Dir() string {
	return s.dir
}

// Load parses every .trf file in the store directory and returns the
// concatenated records, each tagged with its source file name. Per-file
// parse order and file enumeration order (lexical, per os.ReadDir) are
// preserved. Unreadable files are logged and skipped; a missing directory,
// zero matching files, or zero total records yield the corresponding
// sentinel error.
func (s *Store) Load() ([]Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.log.Error("reading data directory", zap.String("dir", s.dir), zap.Error(err))
		return nil, ErrDataDirNotFound
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Extension) {
			continue
		}
		names = append(names, entry.Name())
	}
	if len(names) == 0 {
		return nil, ErrNoDocuments
	}

	var all []Record
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			s.log.Error("reading report file", zap.String("file", name), zap.Error(err))
			continue
		}
		if strings.TrimSpace(string(content)) == "" {
			s.log.Warn("empty report file", zap.String("file", name))
			continue
		}

		records := Parse(string(content))
		for i := range records {
			records[i].File = name
		}
		all = append(all, records...)
	}

	if len(all) == 0 {
		return nil, ErrNoRecords
	}
	return all, nil
}
