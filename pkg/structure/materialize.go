package structure

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/sirupsen/logrus"
)

const (
	DefaultDirMode  os.FileMode = 0755
	DefaultFileMode os.FileMode = 0644
)

// Materializer writes a Tree onto a billy filesystem. Directories are
// created if missing; files are always truncated and rewritten.
type Materializer struct {
	fs       billy.Filesystem
	log      logrus.FieldLogger
	dirMode  os.FileMode
	fileMode os.FileMode
}

type Option func(*Materializer)

func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Materializer) { m.log = l }
}

// WithDirMode is honoured by filesystems that take a mode on MkdirAll;
// osfs always uses 0755.
func WithDirMode(mode os.FileMode) Option {
	return func(m *Materializer) { m.dirMode = mode }
}

func WithFileMode(mode os.FileMode) Option {
	return func(m *Materializer) { m.fileMode = mode }
}

func NewMaterializer(fs billy.Filesystem, opts ...Option) *Materializer {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	m := &Materializer{
		fs:       fs,
		log:      discard,
		dirMode:  DefaultDirMode,
		fileMode: DefaultFileMode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Materialize creates basePath and everything described by tree beneath it.
// Filesystem errors are returned untouched and stop the walk; whatever was
// written before the failure stays on disk. Running it again is safe.
func Materialize(basePath string, tree Tree) error {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return err
	}
	return NewMaterializer(osfs.New("/")).Materialize(abs, tree)
}

func (m *Materializer) Materialize(basePath string, tree Tree) error {
	if err := m.ensureDir(basePath); err != nil {
		return err
	}
	return m.materialize(basePath, tree)
}

func (m *Materializer) materialize(base string, tree Tree) error {
	for name, n := range tree {
		path := m.fs.Join(base, name)

		switch n.kind {
		case KindDir:
			if err := m.ensureDir(path); err != nil {
				return err
			}
			if err := m.materialize(path, n.children); err != nil {
				return err
			}
		case KindFile:
			if err := m.writeFile(path, n.payload); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%s: %w", path, ErrInvalidNode)
		}
	}
	return nil
}

func (m *Materializer) ensureDir(path string) error {
	if err := m.fs.MkdirAll(path, m.dirMode); err != nil {
		return err
	}
	m.log.WithField("path", path).Debug("directory")
	return nil
}

func (m *Materializer) writeFile(path, payload string) (err error) {
	f, err := m.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, m.fileMode)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if _, err = io.WriteString(f, payload); err != nil {
		return err
	}

	m.log.WithFields(logrus.Fields{"path": path, "bytes": len(payload)}).Debug("file")
	return nil
}
