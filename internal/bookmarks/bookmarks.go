// Package bookmarks loads the line-oriented bookmark file used by the
// app://bookmarks page.
package bookmarks

import (
	"bufio"
	"os"
	"sort"
	"strings"
	"sync"
)

// Mark is one saved bookmark.
type Mark struct {
	URL   string
	Title string
}

// Store holds the bookmarks loaded from disk. Reads are concurrent-safe;
// Reload replaces the whole set atomically.
type Store struct {
	mu    sync.RWMutex
	path  string
	marks []Mark
}

// Open loads the bookmark file at path. Each line is "URL title...";
// blank lines and lines starting with '#' are skipped. A missing or
// unreadable file is reported to the caller, it is not papered over.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the bookmark file.
func (s *Store) Reload() error {
	f, err := os.Open(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	var marks []Mark
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		url, title, _ := strings.Cut(line, " ")
		if title == "" {
			title = url
		}
		marks = append(marks, Mark{URL: url, Title: strings.TrimSpace(title)})
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.marks = marks
	s.mu.Unlock()
	return nil
}

// Marks returns the bookmarks sorted by title.
func (s *Store) Marks() []Mark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	marks := make([]Mark, len(s.marks))
	copy(marks, s.marks)
	sort.Slice(marks, func(i, j int) bool {
		return marks[i].Title < marks[j].Title
	})
	return marks
}
