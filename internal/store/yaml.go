package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/ruminaider/rosterpick/internal/catalog"
	"go.yaml.in/yaml/v3"
)

// yamlDoc is the on-disk layout of selections.yaml.
type yamlDoc struct {
	Selections map[catalog.Variant]map[string][]string `yaml:"selections,omitempty"`
	History    []Commit                                `yaml:"history,omitempty"`
}

// YAMLStore keeps every selection in a single YAML file.
type YAMLStore struct {
	path string
	mu   sync.Mutex
}

// NewYAMLStore returns a store backed by the file at path. The file is
// created on first save.
func NewYAMLStore(path string) *YAMLStore {
	return &YAMLStore{path: path}
}

func (s *YAMLStore) read() (yamlDoc, error) {
	var doc yamlDoc
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return doc, fmt.Errorf("reading selections: %w", err)
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parsing selections: %w", err)
	}
	return doc, nil
}

func (s *YAMLStore) write(doc yamlDoc) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// Load implements Store.
func (s *YAMLStore) Load(ctx context.Context, v catalog.Variant, owner string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return append([]string{}, doc.Selections[v][owner]...), nil
}

// Save implements Store.
func (s *YAMLStore) Save(ctx context.Context, v catalog.Variant, owner string, ids []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if doc.Selections == nil {
		doc.Selections = map[catalog.Variant]map[string][]string{}
	}
	if doc.Selections[v] == nil {
		doc.Selections[v] = map[string][]string{}
	}
	doc.Selections[v][owner] = append([]string{}, ids...)

	at := now()
	doc.History = append(doc.History, Commit{
		ID:          newCommitID(at),
		Variant:     v,
		Owner:       owner,
		IDs:         append([]string{}, ids...),
		CommittedAt: at,
	})
	doc.History = trimHistory(doc.History, v, owner)

	return s.write(doc)
}

// History implements Store.
func (s *YAMLStore) History(ctx context.Context, v catalog.Variant, owner string, limit int) ([]Commit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	var out []Commit
	for i := len(doc.History) - 1; i >= 0; i-- {
		c := doc.History[i]
		if c.Variant != v || c.Owner != owner {
			continue
		}
		out = append(out, c)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Close implements Store.
func (s *YAMLStore) Close() error { return nil }

// trimHistory keeps the newest historyLimit commits for (v, owner) and
// every commit of other selections.
func trimHistory(history []Commit, v catalog.Variant, owner string) []Commit {
	count := 0
	for _, c := range history {
		if c.Variant == v && c.Owner == owner {
			count++
		}
	}
	drop := count - historyLimit
	if drop <= 0 {
		return history
	}
	return slices.DeleteFunc(history, func(c Commit) bool {
		if drop > 0 && c.Variant == v && c.Owner == owner {
			drop--
			return true
		}
		return false
	})
}
