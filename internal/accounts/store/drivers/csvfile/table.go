package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// record is one CSV row keyed by column name.
type record map[string]string

// table is a header-first CSV file. Readers share the lock; every write holds
// it exclusively, rewrites the whole file into a temp file and renames it into
// place, so a crash leaves either the old table or the new one.
type table struct {
	path   string
	header []string

	mu sync.RWMutex
}

func newTable(dir, name string, header []string) *table {
	return &table{path: filepath.Join(dir, name), header: header}
}

// ensure creates the file with just the header when it is missing or empty.
func (t *table) ensure() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, err := os.Stat(t.path)
	switch {
	case err == nil && st.Size() > 0:
		return nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return err
	}
	return t.writeLocked(nil)
}

// read returns every row. A missing or empty file is an empty table.
func (t *table) read() ([]record, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.readLocked()
}

// update runs fn over the current rows and, when fn reports a change, writes
// the returned rows back. The read and the write happen under one lock.
func (t *table) update(fn func(rows []record) ([]record, bool, error)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows, err := t.readLocked()
	if err != nil {
		return err
	}
	next, changed, err := fn(rows)
	if err != nil || !changed {
		return err
	}
	return t.writeLocked(next)
}

func (t *table) readLocked() ([]record, error) {
	f, err := os.Open(t.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csvfile: %s header: %w", filepath.Base(t.path), err)
	}

	var rows []record
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csvfile: %s: %w", filepath.Base(t.path), err)
		}
		rec := make(record, len(header))
		for i, col := range header {
			if i < len(fields) {
				rec[col] = fields[i]
			}
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func (t *table) writeLocked(rows []record) error {
	dir := filepath.Dir(t.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	// 1. Write the full table to a temp file next to the target
	tmp, err := os.CreateTemp(dir, filepath.Base(t.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	_ = w.Write(t.header)
	line := make([]string, len(t.header))
	for _, rec := range rows {
		for i, col := range t.header {
			line[i] = rec[col]
		}
		_ = w.Write(line)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = tmp.Close()
		return err
	}

	// 2. Flush to disk before the swap
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	// 3. Atomic rename over the old table
	return os.Rename(tmp.Name(), t.path)
}
