// repo_gitignore.go marks databases as local in .entlog/.gitignore.
//
// Existing content and formatting are preserved; only database lines under
// a header comment are added.

package repo

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const localDBHeader = "# Local databases (not committed)"

// parseGitignore reads a gitignore file and returns its trimmed lines.
func parseGitignore(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines, nil
}

// IgnoreDB adds a database to the gitignore (marks as local).
// If dir is empty, discovers the .entlog directory from the working directory.
func IgnoreDB(name, dir string) error {
	if dir == "" {
		var err error
		dir, err = DiscoverDir()
		if err != nil {
			return err
		}
	}

	dbFile := DBFileName(name)
	gitignore := filepath.Join(dir, ".gitignore")

	lines, err := parseGitignore(gitignore)
	if err != nil {
		return err
	}
	if slices.Contains(lines, dbFile) {
		return nil
	}

	content, err := os.ReadFile(gitignore)
	if err != nil {
		return err
	}
	s := string(content)
	if !slices.Contains(lines, localDBHeader) {
		s += "\n" + localDBHeader + "\n"
	}
	// WAL side files travel with the database.
	s += dbFile + "\n" + dbFile + "-wal\n" + dbFile + "-shm\n"

	return os.WriteFile(gitignore, []byte(s), 0644)
}

// UnignoreDB removes a database and its WAL side files from the gitignore
// (marks as shared). The header goes too once no database lines follow it.
func UnignoreDB(name, dir string) error {
	if dir == "" {
		var err error
		dir, err = DiscoverDir()
		if err != nil {
			return err
		}
	}

	dbFile := DBFileName(name)
	gitignore := filepath.Join(dir, ".gitignore")

	content, err := os.ReadFile(gitignore)
	if err != nil {
		return err
	}

	drop := map[string]bool{dbFile: true, dbFile + "-wal": true, dbFile + "-shm": true}
	var out []string
	for _, line := range strings.Split(string(content), "\n") {
		if !drop[strings.TrimSpace(line)] {
			out = append(out, line)
		}
	}

	result := strings.Join(out, "\n")
	if idx := strings.Index(result, localDBHeader); idx != -1 {
		rest := result[idx+len(localDBHeader):]
		if !strings.Contains(rest, ".db") {
			result = strings.TrimRight(result[:idx], "\n") + "\n"
		}
	}
	return os.WriteFile(gitignore, []byte(result), 0644)
}

// IsIgnored checks if a database is in the gitignore.
func IsIgnored(name, dir string) (bool, error) {
	if dir == "" {
		var err error
		dir, err = DiscoverDir()
		if err != nil {
			return false, err
		}
	}

	lines, err := parseGitignore(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return false, err
	}
	return slices.Contains(lines, DBFileName(name)), nil
}
