// Package fixture creates temporary files under the document root of the
// server under test and removes them again after the run.
package fixture

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	defaultFileMode = 0o644
	defaultDirMode  = 0o755
)

// ErrOutsideDocRoot is returned for fixture paths that resolve outside of the
// document root.
var ErrOutsideDocRoot = errors.New("fixture path escapes the document root")

// Record is a file created by the Manager.
type Record struct {
	Path     string
	IsBinary bool
	Mode     os.FileMode
}

type options struct {
	mode os.FileMode
}

// Option tunes a single Create call.
type Option func(*options)

// WithMode sets the permission bits of the created file, e.g. 0755 for CGI
// scripts.
func WithMode(mode os.FileMode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// Manager owns the fixture files of one run. It is not safe for concurrent use.
type Manager struct {
	docRoot string
	logger  *logrus.Logger
	records []Record
}

func NewManager(docRoot string, logger *logrus.Logger) *Manager {
	return &Manager{
		docRoot: docRoot,
		logger:  logger,
	}
}

// Create writes content to relativePath under the document root, creating
// parent directories when needed, and registers the file for Cleanup.
func (m *Manager) Create(relativePath string, content []byte, isBinary bool, opts ...Option) (string, error) {
	o := options{mode: defaultFileMode}
	for _, opt := range opts {
		opt(&o)
	}

	fullPath, err := m.resolve(relativePath)
	if err != nil {
		return "", err
	}

	if err = os.MkdirAll(filepath.Dir(fullPath), defaultDirMode); err != nil {
		return "", errors.Wrap(err, "couldn't create fixture directory")
	}

	if err = os.WriteFile(fullPath, content, o.mode); err != nil {
		return "", errors.Wrap(err, "couldn't write fixture")
	}

	m.records = append(m.records, Record{Path: fullPath, IsBinary: isBinary, Mode: o.mode})

	// WriteFile applies the mode through the umask and only to new files
	if err = os.Chmod(fullPath, o.mode); err != nil {
		return "", errors.Wrap(err, "couldn't set fixture mode")
	}

	m.logger.WithFields(logrus.Fields{
		"path":   fullPath,
		"binary": isBinary,
		"size":   len(content),
	}).Debug("fixture created")

	return fullPath, nil
}

// Records returns a copy of the registered fixtures.
func (m *Manager) Records() []Record {
	records := make([]Record, len(m.records))
	copy(records, m.records)
	return records
}

// Cleanup removes every registered fixture. Files that are already gone are
// fine. Any other failure is logged as a warning and does not stop the
// remaining removals. The registry is drained, so calling Cleanup again is a
// no-op. The returned error only reports what could not be removed.
func (m *Manager) Cleanup() error {
	var result *multierror.Error

	for _, record := range m.records {
		err := os.Remove(record.Path)
		switch {
		case err == nil:
			m.logger.WithField("path", record.Path).Info("Cleaned up")
		case errors.Is(err, os.ErrNotExist):
			m.logger.WithField("path", record.Path).Debug("fixture already removed")
		default:
			m.logger.WithError(err).WithField("path", record.Path).Warn("Could not remove fixture")
			result = multierror.Append(result, errors.Wrapf(err, "couldn't remove %s", record.Path))
		}
	}

	m.records = nil

	return result.ErrorOrNil()
}

func (m *Manager) resolve(relativePath string) (string, error) {
	root, err := filepath.Abs(m.docRoot)
	if err != nil {
		return "", errors.Wrap(err, "couldn't resolve document root")
	}

	rel := filepath.FromSlash(strings.TrimLeft(relativePath, "/"))
	if rel == "" {
		return "", errors.New("empty fixture path")
	}

	fullPath := filepath.Join(root, rel)

	check, err := filepath.Rel(root, fullPath)
	if err != nil || check == ".." || strings.HasPrefix(check, ".."+string(filepath.Separator)) {
		return "", errors.Wrapf(ErrOutsideDocRoot, "path %q", relativePath)
	}

	return fullPath, nil
}
