// Package gitscan clones linked repositories and parses their history.
package gitscan

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/modelgate/modelgate/schema"
)

// commitDelimiter separates commit headers from numstat blocks in the log.
const commitDelimiter = "--MG--"

// Client defines the operations the evaluators need from version control.
// Core logic is tested against fakes; the local implementation shells out
// to the git binary.
type Client interface {
	// CloneShallow clones url into dir with the given depth.
	CloneShallow(ctx context.Context, url, dir string, depth int) error

	// Log returns the parsed commit history of a local clone, newest first,
	// with per-commit numstat line deltas.
	Log(ctx context.Context, repoDir string) ([]schema.Commit, error)
}

// LocalClient implements Client by executing the local git binary.
type LocalClient struct{}

var _ Client = &LocalClient{} // Compile-time check

// NewLocalClient creates a new instance of the local git client.
func NewLocalClient() *LocalClient {
	return &LocalClient{}
}

// CloneShallow implements the Client interface.
func (c *LocalClient) CloneShallow(ctx context.Context, url, dir string, depth int) error {
	args := []string{"clone", "--depth", strconv.Itoa(depth), "--no-tags", url, dir}
	if _, err := run(ctx, "", args...); err != nil {
		// Remove the partial clone so a retry does not trip over it.
		_ = os.RemoveAll(dir)
		return err
	}
	return nil
}

// Log implements the Client interface.
func (c *LocalClient) Log(ctx context.Context, repoDir string) ([]schema.Commit, error) {
	out, err := run(ctx, repoDir, "log", "--all", "--numstat",
		"--pretty=format:"+commitDelimiter+"%H|%an|%s")
	if err != nil {
		return nil, err
	}
	return ParseLog(out), nil
}

// run executes a git command and returns its stdout.
func run(ctx context.Context, repoDir string, args ...string) ([]byte, error) {
	if repoDir != "" {
		args = append([]string{"-C", repoDir}, args...)
	}
	cmd := exec.CommandContext(ctx, "git", args...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil, fmt.Errorf("git '%v' exit: %s", strings.Join(args, " "), strings.TrimSpace(string(exitErr.Stderr)))
	} else if err != nil {
		return nil, fmt.Errorf("git '%v' unknown: %w", strings.Join(args, " "), err)
	}
	return out, nil
}

// ParseLog parses delimiter-framed 'git log --numstat' output into commits.
func ParseLog(out []byte) []schema.Commit {
	var commits []schema.Commit
	var current *schema.Commit

	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		// Commit header: hash|author|subject
		if after, ok := strings.CutPrefix(line, commitDelimiter); ok {
			if current != nil {
				commits = append(commits, *current)
			}
			parts := strings.SplitN(after, "|", 3)
			current = &schema.Commit{Hash: parts[0]}
			if len(parts) > 1 {
				current.Author = parts[1]
			}
			if len(parts) > 2 {
				current.Subject = parts[2]
			}
			continue
		}

		if strings.TrimSpace(line) == "" || current == nil {
			continue
		}

		// Numstat line: added\tdeleted\tpath
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) < 3 {
			continue
		}
		delta := schema.FileDelta{Path: parts[2]}
		if parts[0] == "-" || parts[1] == "-" {
			delta.Binary = true
		} else {
			delta.Added, _ = strconv.Atoi(parts[0])
			delta.Deleted, _ = strconv.Atoi(parts[1])
		}
		current.Files = append(current.Files, delta)
	}
	if current != nil {
		commits = append(commits, *current)
	}
	return commits
}
