package generator

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dogeorg/flaskgen/pkg/flask"
	"github.com/dogeorg/flaskgen/pkg/structure"
	"github.com/go-git/go-git/v5"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"minimal", Config{Target: "."}, false},
		{"missing target", Config{}, true},
		{"git only", Config{Target: ".", Git: true}, false},
		{"commit without git", Config{Target: ".", Commit: true, AuthorName: "a", AuthorEmail: "b"}, true},
		{"commit without author", Config{Target: ".", Git: true, Commit: true}, true},
		{"commit", Config{Target: ".", Git: true, Commit: true, AuthorName: "a", AuthorEmail: "b"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRun_DryRunTouchesNothing(t *testing.T) {
	target := filepath.Join(t.TempDir(), "proj")
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	res, err := Run(Config{Target: target, DryRun: true}, flask.Skeleton(), logger)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Errorf("dry run created %s (stat err = %v)", target, err)
	}
	// base directory plus every node
	if want := 1 + res.Dirs + res.Files; len(res.Planned) != want {
		t.Errorf("planned %d paths, want %d", len(res.Planned), want)
	}
	if len(hook.AllEntries()) != len(res.Planned) {
		t.Errorf("logged %d entries, want %d", len(hook.AllEntries()), len(res.Planned))
	}
	if res.Planned[1] != filepath.Join(target, ".env") {
		t.Errorf("first planned node = %q", res.Planned[1])
	}
}

func TestRun_Skeleton(t *testing.T) {
	target := filepath.Join(t.TempDir(), "proj")
	logger, _ := logtest.NewNullLogger()

	res, err := Run(Config{Target: target}, flask.Skeleton(), logger)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Dirs != 14 || res.Files != 18 {
		t.Errorf("result = %+v", res)
	}

	got, err := os.ReadFile(filepath.Join(target, ".env"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(got) != "FLASK_ENV=development" {
		t.Errorf(".env = %q", got)
	}
	for _, dir := range []string{"css", "js", "images"} {
		info, err := os.Stat(filepath.Join(target, "app", "static", dir))
		if err != nil || !info.IsDir() {
			t.Errorf("app/static/%s missing: %v", dir, err)
		}
	}
}

func TestRun_ReRunOverwrites(t *testing.T) {
	target := t.TempDir()
	logger, _ := logtest.NewNullLogger()
	readme := filepath.Join(target, "README.md")

	if _, err := Run(Config{Target: target}, flask.Skeleton(), logger); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	if err := os.WriteFile(readme, []byte("edited by hand"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Run(Config{Target: target}, flask.Skeleton(), logger); err != nil {
		t.Fatalf("second Run failed: %v", err)
	}

	got, err := os.ReadFile(readme)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(got) != flask.Skeleton()["README.md"].Payload() {
		t.Errorf("README.md = %q, want the stock payload", got)
	}
}

func TestRun_GitCommit(t *testing.T) {
	target := t.TempDir()
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	cfg := Config{
		Target:      target,
		Git:         true,
		Commit:      true,
		AuthorName:  "Test Author",
		AuthorEmail: "test@example.com",
	}
	res, err := Run(cfg, flask.Skeleton(), logger)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Commit == "" {
		t.Fatal("no commit recorded")
	}

	repo, err := git.PlainOpen(target)
	if err != nil {
		t.Fatalf("PlainOpen failed: %v", err)
	}
	head, err := repo.Head()
	if err != nil {
		t.Fatalf("Head failed: %v", err)
	}
	if head.Hash().String() != res.Commit {
		t.Errorf("HEAD = %s, want %s", head.Hash(), res.Commit)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		t.Fatalf("CommitObject failed: %v", err)
	}
	if commit.Message != DefaultCommitMessage {
		t.Errorf("message = %q", commit.Message)
	}
	if _, err := commit.File(".env"); err == nil {
		t.Error(".env was committed despite .gitignore")
	}
	if _, err := commit.File("app/routes.py"); err != nil {
		t.Errorf("app/routes.py not committed: %v", err)
	}

	ignored := false
	for _, e := range hook.AllEntries() {
		if e.Data["path"] == ".env" {
			ignored = true
		}
	}
	if !ignored {
		t.Error("ignored .env was not logged")
	}

	again, err := Run(cfg, flask.Skeleton(), logger)
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if again.Commit != "" {
		t.Errorf("second run committed %s, want nothing", again.Commit)
	}
}

func TestRun_FilesystemErrorIsReturned(t *testing.T) {
	target := t.TempDir()
	if err := os.WriteFile(filepath.Join(target, "app"), []byte("in the way"), 0644); err != nil {
		t.Fatal(err)
	}
	logger, _ := logtest.NewNullLogger()

	_, err := Run(Config{Target: target}, structure.Tree{
		"app": structure.Dir(structure.Tree{"x": structure.File("y")}),
	}, logger)
	if err == nil {
		t.Fatal("expected filesystem error")
	}
	var pathErr *os.PathError
	if !errors.As(err, &pathErr) {
		t.Errorf("error = %T, want *os.PathError", err)
	}
}
