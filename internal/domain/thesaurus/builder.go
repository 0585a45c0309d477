package thesaurus

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// synonymMarker introduces a comma-separated synonym list inside a
// knowledge-graph markdown file:
//
//	# Battery
//	synonyms:: cell, power source, cr2032
const synonymMarker = "synonyms::"

// BuildFromDir builds a thesaurus from a directory of markdown files.
// Each file declares one concept: the first `# ` heading is the canonical
// value, an optional `synonyms::` line adds raw-term keys. Files that fail
// to parse are logged and skipped; the build succeeds with a reduced
// thesaurus. Only a missing or unreadable directory is fatal.
//
// Concept IDs are assigned sequentially over files sorted by name, so
// reprocessing identical inputs yields identical IDs.
func BuildFromDir(name, dir string) (*Thesaurus, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &BuildError{Source: dir, Err: err}
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)

	t := New(name)
	var nextID uint64 = 1
	for _, path := range files {
		concept, synonyms, err := parseConceptFile(path)
		if err != nil {
			slog.Warn("skipping knowledge-graph file", "path", path, "error", err)
			continue
		}

		term := NormalizedTerm{ID: nextID, Value: concept}
		nextID++

		t.Insert(concept, term)
		for _, syn := range synonyms {
			t.Insert(syn, term)
		}
	}
	return t, nil
}

// parseConceptFile extracts the concept heading and synonym list from one
// markdown file.
func parseConceptFile(path string) (NormalizedTermValue, []NormalizedTermValue, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}

	var concept NormalizedTermValue
	var synonyms []NormalizedTermValue
	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if concept == "" && strings.HasPrefix(trimmed, "# ") {
			concept = Normalize(strings.TrimPrefix(trimmed, "# "))
			continue
		}
		if strings.HasPrefix(trimmed, synonymMarker) {
			list := strings.TrimPrefix(trimmed, synonymMarker)
			for _, raw := range strings.Split(list, ",") {
				syn := Normalize(raw)
				if syn != "" {
					synonyms = append(synonyms, syn)
				}
			}
		}
	}

	if concept == "" {
		return "", nil, fmt.Errorf("no `# ` heading found")
	}
	return concept, synonyms, nil
}
