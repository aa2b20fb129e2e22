package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/alfredjeanlab/counsel/internal/model"
)

// GitDestination commits roster snapshots to a file in a local clone and
// pushes them to origin.
type GitDestination struct {
	repo   string // path to the local clone
	file   string // snapshot path within the repo
	branch string
}

// NewGitDestination creates a git destination. repo is the path to an
// existing local clone with an "origin" remote.
func NewGitDestination(repo, file, branch string) *GitDestination {
	return &GitDestination{repo: repo, file: file, branch: branch}
}

// Write replaces the snapshot file with data and pushes a commit. A snapshot
// identical to the committed one produces no commit.
func (d *GitDestination) Write(ctx context.Context, data []byte) error {
	if err := d.git(ctx, "checkout", d.branch); err != nil {
		return err
	}
	// origin may not have the branch yet
	_ = d.git(ctx, "pull", "--ff-only", "origin", d.branch)

	path := filepath.Join(d.repo, d.file)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("git destination: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("git destination: %w", err)
	}

	if err := d.git(ctx, "add", "--", d.file); err != nil {
		return err
	}
	if d.git(ctx, "diff", "--cached", "--quiet") == nil {
		return nil
	}
	if err := d.git(ctx, "commit", "-m", commitMessage(data)); err != nil {
		return err
	}
	return d.git(ctx, "push", "origin", d.branch)
}

func (d *GitDestination) String() string {
	return "git:" + filepath.Join(d.repo, d.file) + "@" + d.branch
}

// git runs a git subcommand in the clone. Failures carry git's own output.
func (d *GitDestination) git(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = d.repo
	out, err := cmd.CombinedOutput()
	if err != nil {
		if msg := bytes.TrimSpace(out); len(msg) > 0 {
			return fmt.Errorf("git %s: %w: %s", args[0], err, msg)
		}
		return fmt.Errorf("git %s: %w", args[0], err)
	}
	return nil
}

// commitMessage summarises a snapshot from its header line, listing the
// non-empty kinds in model order.
func commitMessage(data []byte) string {
	first, _, _ := bytes.Cut(data, []byte("\n"))
	var h header
	if json.Unmarshal(first, &h) != nil || h.Type != "header" {
		return "sync: update roster snapshot"
	}

	msg := fmt.Sprintf("sync: roster snapshot (%d records)", h.RecordCount)
	var counts []string
	for _, k := range model.Kinds {
		if n := h.Kinds[string(k)]; n > 0 {
			counts = append(counts, fmt.Sprintf("%s: %d", k, n))
		}
	}
	if len(counts) > 0 {
		msg += "\n\n" + strings.Join(counts, "\n")
	}
	return msg
}
