package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var _ Store = (*CSVStore)(nil)

// CSVStore appends rows to a UTF-8 CSV file with a header line. It does no
// locking; concurrent writers race and the last one wins.
type CSVStore struct {
	path string
}

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

func (s *CSVStore) Path() string {
	return s.path
}

func (s *CSVStore) Append(ctx context.Context, row Row) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	info, statErr := os.Stat(s.path)
	fresh := errors.Is(statErr, os.ErrNotExist) || (statErr == nil && info.Size() == 0)

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if fresh {
		if err := w.Write(Header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := w.Write(row.Columns()); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", s.path, err)
	}
	return nil
}

func (s *CSVStore) ReadAll(ctx context.Context) ([]Row, error) {
	records, err := s.readRecords()
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rowFromColumns(rec))
	}
	return rows, nil
}

func (s *CSVStore) TruncateLast(ctx context.Context) (bool, error) {
	records, err := s.readRecords()
	if err != nil {
		return false, err
	}
	if len(records) == 0 {
		return false, nil
	}
	records = records[:len(records)-1]

	tmp := s.path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return false, fmt.Errorf("create %s: %w", tmp, err)
	}
	w := csv.NewWriter(file)
	if err := w.Write(Header); err != nil {
		file.Close()
		return false, fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteAll(records); err != nil {
		file.Close()
		return false, fmt.Errorf("write rows: %w", err)
	}
	if err := file.Close(); err != nil {
		return false, fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return false, fmt.Errorf("replace %s: %w", s.path, err)
	}
	return true, nil
}

// readRecords returns the data rows without the header. A missing file reads as empty.
func (s *CSVStore) readRecords() ([][]string, error) {
	file, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	var records [][]string
	header := true
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", s.path, err)
		}
		if header {
			header = false
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
