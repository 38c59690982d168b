package ledger

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	portsrepo "github.com/indeko/indeko_backend/internal/core/ports/repositories"
)

const (
	payloadDirName = "reports"

	commitAuthorName  = "indeko-ledger"
	commitAuthorEmail = "ledger@indeko.invalid"
)

// GitStore is an append-only ledger store backed by a local git repository.
// One file per report lives under reports/<report_id>.json; each lock commits
// a new revision of that file. Every git invocation passes arguments as an
// argv slice; payload content and messages never touch a shell.
//
// The store is written only by the ledger service, which holds the report's
// database row lock for the duration of the commit, so operations on one
// report are strictly sequential.
type GitStore struct {
	dir           string
	commitTimeout time.Duration
}

var _ portsrepo.LedgerStore = (*GitStore)(nil)

// NewGitStore creates a store rooted at dir. commitTimeout bounds the
// external git invocation during Commit.
func NewGitStore(dir string, commitTimeout time.Duration) *GitStore {
	return &GitStore{dir: dir, commitTimeout: commitTimeout}
}

// Dir returns the store directory.
func (s *GitStore) Dir() string {
	return s.dir
}

// run executes a git command targeting the store and returns stdout. Stderr
// is captured separately and included in error messages on failure.
func (s *GitStore) run(ctx context.Context, args ...string) (string, error) {
	fullArgs := append([]string{"-C", s.dir}, args...)
	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, "git", fullArgs...)
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return "", fmt.Errorf("git %s in %s: %w (stderr: %s)",
			strings.Join(args, " "), s.dir, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// Init creates the store directory and initializes the git repository if it
// does not exist yet. Idempotent.
func (s *GitStore) Init(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Join(s.dir, payloadDirName), 0o750); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}
	if _, err := os.Stat(filepath.Join(s.dir, ".git")); err == nil {
		return nil
	}
	if _, err := s.run(ctx, "init"); err != nil {
		return fmt.Errorf("failed to initialize ledger store: %w", err)
	}
	return nil
}

// payloadPath is the repository-relative path of a report's payload file.
func payloadPath(reportID string) string {
	return payloadDirName + "/" + reportID + ".json"
}

// Head returns the current head revision for the report's payload path, or
// "" when the report has no revision yet.
func (s *GitStore) Head(ctx context.Context, reportID string) (string, error) {
	// rev-list exits non-zero on an empty repository; treat that as no head.
	if _, err := s.run(ctx, "rev-parse", "--verify", "--quiet", "HEAD"); err != nil {
		return "", nil
	}
	out, err := s.run(ctx, "log", "-n", "1", "--format=%H", "--", payloadPath(reportID))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Message returns the full commit message of the given revision.
func (s *GitStore) Message(ctx context.Context, revisionID string) (string, error) {
	out, err := s.run(ctx, "log", "-n", "1", "--format=%B", revisionID)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Commit writes the payload file and records it as a new revision, returning
// the revision id. The whole operation is bounded by the commit timeout; on
// timeout or failure the caller's database transaction is expected to roll
// back, leaving the report unlocked.
func (s *GitStore) Commit(ctx context.Context, reportID string, payload []byte, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.commitTimeout)
	defer cancel()

	relPath := payloadPath(reportID)
	if err := os.WriteFile(filepath.Join(s.dir, relPath), payload, 0o640); err != nil {
		return "", fmt.Errorf("failed to write ledger payload: %w", err)
	}
	if _, err := s.run(ctx, "add", "--", relPath); err != nil {
		return "", err
	}
	if _, err := s.run(ctx,
		"-c", "user.name="+commitAuthorName,
		"-c", "user.email="+commitAuthorEmail,
		"commit", "--no-verify", "-m", message, "--", relPath,
	); err != nil {
		return "", err
	}
	out, err := s.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
