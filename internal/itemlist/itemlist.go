// Package itemlist loads custom study lists from files.
package itemlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadItems reads one item per line from the provided file path. Blank lines
// and lines starting with # are skipped; duplicates keep their first position.
func LoadItems(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	var items []string
	seen := map[string]struct{}{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		items = append(items, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("item list is empty")
	}
	return items, nil
}

// LoadKanji reads a list and keeps only single-kanji entries.
func LoadKanji(path string) ([]string, error) {
	items, err := LoadItems(path)
	if err != nil {
		return nil, err
	}
	kept := Filter(items, FilterKanji)
	if len(kept) == 0 {
		return nil, fmt.Errorf("no kanji found in %s", path)
	}
	return kept, nil
}
