// Package filestore is the on-disk persistence used by every store: JSON
// files written whole, with a timestamped copy of the previous version saved
// to a backups directory before each write.
package filestore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Files binds a backups directory to the read/write helpers.
type Files struct {
	backupsDir string
	now        func() time.Time
}

// New creates the helper and makes sure the backups directory exists.
func New(backupsDir string) (*Files, error) {
	if err := os.MkdirAll(backupsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create backups dir: %w", err)
	}
	return &Files{backupsDir: backupsDir, now: time.Now}, nil
}

func (f *Files) BackupsDir() string {
	return f.backupsDir
}

// ReadJSON decodes path into v. It reports false without error when the
// file does not exist, and treats an empty file as absent.
func (f *Files) ReadJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return true, nil
}

// WriteJSON backs up the current file (if any) and replaces it with v.
// It returns the backup path, empty when there was nothing to back up.
func (f *Files) WriteJSON(path string, v any) (string, error) {
	data, err := Encode(v)
	if err != nil {
		return "", err
	}

	backup, err := f.Backup(path)
	if err != nil {
		return "", err
	}

	if err := writeAtomic(path, data); err != nil {
		return backup, err
	}
	return backup, nil
}

// WriteJSONNoBackup replaces the file without taking a backup copy. Used by
// the append-only files whose backups are rotated on their own schedule.
func (f *Files) WriteJSONNoBackup(path string, v any) error {
	data, err := Encode(v)
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

// Backup copies path into the backups directory under a timestamped name.
// A missing source is not an error and yields an empty path.
func (f *Files) Backup(path string) (string, error) {
	src, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to open %s for backup: %w", path, err)
	}
	defer src.Close()

	if err := os.MkdirAll(f.backupsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backups dir: %w", err)
	}

	dst, name, err := f.createBackupFile(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to copy backup: %w", err)
	}
	return name, nil
}

// createBackupFile picks a name that is not taken yet. Two writes within the
// same nanosecond tick get a numeric suffix.
func (f *Files) createBackupFile(path string) (*os.File, string, error) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	ts := f.now()
	stamp := fmt.Sprintf("%s_%09d", ts.Format("20060102_150405"), ts.Nanosecond())

	for i := 0; ; i++ {
		name := fmt.Sprintf("%s_%s%s", stem, stamp, ext)
		if i > 0 {
			name = fmt.Sprintf("%s_%s_%d%s", stem, stamp, i, ext)
		}
		full := filepath.Join(f.backupsDir, name)
		file, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to create backup file: %w", err)
		}
		return file, full, nil
	}
}

// ListBackups returns backups of the given source file, oldest first.
func (f *Files) ListBackups(path string) ([]string, error) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	prefix := strings.TrimSuffix(base, ext) + "_"

	entries, err := os.ReadDir(f.backupsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) || filepath.Ext(e.Name()) != ext {
			continue
		}
		// "menu_" must not pick up "menu_categories_..." backups.
		rest := strings.TrimPrefix(e.Name(), prefix)
		if rest == "" || rest[0] < '0' || rest[0] > '9' {
			continue
		}
		out = append(out, filepath.Join(f.backupsDir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

// PruneBackups keeps the newest keep backups of path and removes the rest.
func (f *Files) PruneBackups(path string, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	backups, err := f.ListBackups(path)
	if err != nil {
		return 0, err
	}
	if len(backups) <= keep {
		return 0, nil
	}
	removed := 0
	for _, b := range backups[:len(backups)-keep] {
		if err := os.Remove(b); err != nil {
			return removed, fmt.Errorf("failed to remove backup %s: %w", b, err)
		}
		removed++
	}
	return removed, nil
}

// Encode renders v the way all data files are stored: two-space indent,
// no HTML escaping, non-ASCII kept as is.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return buf.Bytes(), nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
