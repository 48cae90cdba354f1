package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shokunin/langotango/pkg/models"
	"github.com/shokunin/langotango/pkg/workspace"
)

const (
	BackupDirName      = "LangoTango Backups"
	BackupExt          = ".bak"
	backupTimestamp    = "20060102_150405"
	tempPattern        = ".*.tmp"
	projectPermissions = 0644
)

// createTemp is swapped out in tests to simulate a failing disk.
var createTemp = os.CreateTemp

// SaveOptions controls where backups go and how failures are reported.
type SaveOptions struct {
	// BackupDir receives a copy of the previous file. Empty disables backups.
	BackupDir string
	Logger    zerolog.Logger
	Now       func() time.Time
}

// DefaultBackupDir returns ~/LangoTango Backups.
func DefaultBackupDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, BackupDirName)
}

// SaveOptionsFromSettings builds save options from the project settings.
func SaveOptionsFromSettings(s *models.Settings, log zerolog.Logger) SaveOptions {
	opts := SaveOptions{Logger: log}
	if s == nil || s.Project.DisableBackups {
		return opts
	}
	opts.BackupDir = s.Project.BackupDir
	if opts.BackupDir == "" {
		opts.BackupDir = DefaultBackupDir()
	}
	return opts
}

// Save writes the workspace to path. The data goes to a temporary file that
// is synced and then renamed over the target, so a failed save leaves the
// previous file untouched.
func Save(path string, ws *workspace.Workspace, opts SaveOptions) error {
	data, err := workspace.Marshal(ws)
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	return WriteAtomic(path, data, opts)
}

// WriteAtomic replaces path with data. Every call writes its own temporary
// file next to path, so concurrent writers never share one. A copy of the
// previous file is kept in opts.BackupDir when one is set; backup failures
// are logged and ignored.
func WriteAtomic(path string, data []byte, opts SaveOptions) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	tmpFile, err := writeTemp(dir, filepath.Base(path)+tempPattern, data)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if opts.BackupDir != "" {
		if backup, err := backupFile(path, opts); err != nil {
			opts.Logger.Warn().Err(err).Str("path", path).Msg("backup failed")
		} else if backup != "" {
			opts.Logger.Debug().Str("backup", backup).Msg("backup written")
		}
	}

	if err := os.Rename(tmpFile, path); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	opts.Logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("project saved")
	return nil
}

// writeTemp writes data to a new synced file in dir and returns its name.
// The file is removed again on failure.
func writeTemp(dir, pattern string, data []byte) (string, error) {
	f, err := createTemp(dir, pattern)
	if err != nil {
		return "", err
	}
	name := f.Name()
	fail := func(err error) (string, error) {
		f.Close()
		os.Remove(name)
		return "", err
	}
	if err := f.Chmod(projectPermissions); err != nil {
		return fail(err)
	}
	if _, err := f.Write(data); err != nil {
		return fail(err)
	}
	if err := f.Sync(); err != nil {
		return fail(err)
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

// BackupName returns the backup file name for path taken at t.
func BackupName(path string, t time.Time) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return stem + "_" + t.Format(backupTimestamp) + BackupExt
}

// backupFile copies an existing file into the backup directory and returns
// the backup path. A missing source is not an error.
func backupFile(path string, opts SaveOptions) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(opts.BackupDir, 0755); err != nil {
		return "", err
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	target := filepath.Join(opts.BackupDir, BackupName(path, now()))

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, projectPermissions)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}

	if info, err := os.Stat(path); err == nil {
		os.Chtimes(target, info.ModTime(), info.ModTime())
	}
	return target, nil
}
