package generator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dogeorg/flaskgen/pkg/structure"
	"github.com/dogeorg/flaskgen/pkg/vcs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/sirupsen/logrus"
)

const DefaultCommitMessage = "Initial Flask scaffold"

type Config struct {
	Target        string
	DryRun        bool
	Git           bool
	Commit        bool
	CommitMessage string
	AuthorName    string
	AuthorEmail   string
	FileMode      os.FileMode
}

func (c Config) Validate() error {
	if c.Target == "" {
		return errors.New("target directory is required")
	}
	if c.Commit && !c.Git {
		return errors.New("--commit requires --git")
	}
	if c.Commit && (c.AuthorName == "" || c.AuthorEmail == "") {
		return errors.New("--commit requires --author-name and --author-email")
	}
	return nil
}

type Result struct {
	Target  string
	Dirs    int
	Files   int
	Bytes   int64
	Planned []string
	Commit  string
}

// Run stamps tree into cfg.Target. Filesystem errors from the stamping
// itself are returned as they came from the filesystem.
func Run(cfg Config, tree structure.Tree, log logrus.FieldLogger) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	target, err := filepath.Abs(cfg.Target)
	if err != nil {
		return Result{}, fmt.Errorf("failed to resolve target %q: %w", cfg.Target, err)
	}

	stats := structure.Stats(tree)
	res := Result{
		Target: target,
		Dirs:   stats.Dirs,
		Files:  stats.Files,
		Bytes:  stats.Bytes,
	}
	log = log.WithField("target", target)

	if cfg.DryRun {
		res.Planned = plan(target, tree)
		for _, p := range res.Planned {
			log.WithField("path", p).Debug("would create")
		}
		return res, nil
	}

	opts := []structure.Option{structure.WithLogger(log)}
	if cfg.FileMode != 0 {
		opts = append(opts, structure.WithFileMode(cfg.FileMode))
	}

	m := structure.NewMaterializer(osfs.New("/"), opts...)
	if err := m.Materialize(target, tree); err != nil {
		return res, err
	}
	log.WithFields(logrus.Fields{"dirs": res.Dirs, "files": res.Files}).Debug("materialized")

	if !cfg.Git {
		return res, nil
	}

	repo, err := vcs.Init(target)
	if err != nil {
		return res, err
	}
	log.Debug("git repository ready")

	if !cfg.Commit {
		return res, nil
	}

	msg := cfg.CommitMessage
	if msg == "" {
		msg = DefaultCommitMessage
	}
	cr, err := vcs.Commit(repo, tree, vcs.CommitOptions{
		Message:     msg,
		AuthorName:  cfg.AuthorName,
		AuthorEmail: cfg.AuthorEmail,
	})
	if err != nil {
		return res, err
	}
	for _, p := range cr.Ignored {
		log.WithField("path", p).Debug("not committed, ignored by .gitignore")
	}
	if !cr.Hash.IsZero() {
		res.Commit = cr.Hash.String()
		log.WithFields(logrus.Fields{"commit": res.Commit, "files": len(cr.Staged)}).Info("committed scaffold")
	} else {
		log.Info("scaffold already committed, nothing to do")
	}

	return res, nil
}

// plan lists the absolute paths Run would create, directories with a
// trailing separator.
func plan(target string, tree structure.Tree) []string {
	planned := []string{target + string(filepath.Separator)}
	_ = structure.Walk(tree, func(path string, n structure.Node) error {
		p := filepath.Join(target, filepath.FromSlash(path))
		if n.IsDir() {
			p += string(filepath.Separator)
		}
		planned = append(planned, p)
		return nil
	})
	return planned
}
