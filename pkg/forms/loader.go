package forms

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store holds loaded form definitions keyed by id.
type Store struct {
	definitions map[string]Definition
}

// LoadFS walks the provided filesystem and parses JSON/YAML definition
// files. When fsys is nil or no definition files are present, the returned
// store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{definitions: make(map[string]Definition)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		if !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("forms: read %s: %w", path, err)
		}

		doc, err := parseDefinitionFile(data, path)
		if err != nil {
			return err
		}

		for _, def := range doc.Forms {
			normalized, err := normalizeDefinition(def, path)
			if err != nil {
				return err
			}
			if _, exists := store.definitions[normalized.ID]; exists {
				return fmt.Errorf("forms: duplicate definition %q (file %s)", normalized.ID, path)
			}
			store.definitions[normalized.ID] = normalized
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Definition returns the definition for the supplied id.
func (s *Store) Definition(id string) (Definition, bool) {
	if s == nil {
		return Definition{}, false
	}
	def, ok := s.definitions[id]
	return def, ok
}

// IDs returns the sorted definition ids.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.definitions))
	for id := range s.definitions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any definitions.
func (s *Store) Empty() bool {
	return s == nil || len(s.definitions) == 0
}

type definitionFile struct {
	Forms []Definition `json:"forms" yaml:"forms"`
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func parseDefinitionFile(data []byte, source string) (definitionFile, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return definitionFile{}, fmt.Errorf("forms: file %s is empty", source)
	}

	var doc definitionFile
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return definitionFile{}, fmt.Errorf("forms: parse %s: invalid JSON or YAML", source)
}

func normalizeDefinition(def Definition, source string) (Definition, error) {
	def.ID = strings.TrimSpace(def.ID)
	if def.ID == "" {
		return Definition{}, fmt.Errorf("forms: file %s defines a form without an id", source)
	}

	def.Method = strings.ToUpper(strings.TrimSpace(def.Method))
	if def.Method == "" {
		def.Method = "POST"
	}

	seen := make(map[string]struct{}, len(def.Fields))
	for i := range def.Fields {
		name := strings.TrimSpace(def.Fields[i].Name)
		if name == "" {
			return Definition{}, fmt.Errorf("forms: definition %q has a field without a name (file %s)", def.ID, source)
		}
		if _, exists := seen[name]; exists {
			return Definition{}, fmt.Errorf("forms: definition %q repeats field %q (file %s)", def.ID, name, source)
		}
		seen[name] = struct{}{}
		def.Fields[i].Name = name
		if def.Fields[i].Type == "" {
			def.Fields[i].Type = FieldTypeString
		}
	}
	return def, nil
}
