package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// ChangedFile is a file touched by a diff and the lines added or modified
// in its new version.
type ChangedFile struct {
	Path         string
	ChangedLines []int
}

// Contains reports whether any line in [from, to] changed.
func (f ChangedFile) Contains(from, to int) bool {
	for _, line := range f.ChangedLines {
		if line >= from && line <= to {
			return true
		}
	}
	return false
}

// GetChangedFiles runs git diff against baseRef in dir and returns the
// changed files with absolute paths.
func GetChangedFiles(ctx context.Context, dir, baseRef string) ([]ChangedFile, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, "git", "-C", abs, "diff", "-U0", "--relative", "--no-color", baseRef)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git diff failed: %w", err)
	}

	changes, err := parseDiff(output)
	if err != nil {
		return nil, err
	}
	for i := range changes {
		changes[i].Path = filepath.Join(abs, filepath.FromSlash(changes[i].Path))
	}

	return changes, nil
}

// Regex for chunk header: @@ -oldStart,oldLen +newStart,newLen @@
var chunkHeader = regexp.MustCompile(`^@@ -\d+(?:,\d+)? \+(\d+)(?:,(\d+))? @@`)

func parseDiff(output []byte) ([]ChangedFile, error) {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	var changes []ChangedFile
	var currentFile *ChangedFile

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "diff --git") {
			if currentFile != nil {
				changes = append(changes, *currentFile)
				currentFile = nil
			}
			continue
		}

		// The new path; deleted files have /dev/null and are dropped.
		if strings.HasPrefix(line, "+++ ") {
			path := strings.TrimPrefix(line, "+++ ")
			if path != "/dev/null" {
				currentFile = &ChangedFile{Path: strings.TrimPrefix(path, "b/"), ChangedLines: []int{}}
			}
			continue
		}

		if currentFile == nil || !strings.HasPrefix(line, "@@") {
			continue
		}

		matches := chunkHeader.FindStringSubmatch(line)
		if len(matches) < 2 {
			continue
		}
		start, err := strconv.Atoi(matches[1])
		if err != nil {
			return nil, fmt.Errorf("bad hunk header %q: %w", line, err)
		}
		count := 1 // Default length is 1 if omitted
		if matches[2] != "" {
			if count, err = strconv.Atoi(matches[2]); err != nil {
				return nil, fmt.Errorf("bad hunk header %q: %w", line, err)
			}
		}

		// A zero count is a pure deletion; no lines of the new file changed.
		for i := 0; i < count; i++ {
			currentFile.ChangedLines = append(currentFile.ChangedLines, start+i)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if currentFile != nil {
		changes = append(changes, *currentFile)
	}

	return changes, nil
}
