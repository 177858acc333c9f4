// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpusfile reads and writes the on-disk artifacts of the
// pipeline: the corpus database, curated seed files, the four analysis
// views, and human-facing exports.
package corpusfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-atlas/pkg/types"
)

// Default file names.
const (
	DatabaseFile = "papers-db.json"
	SeedFile     = "seed-papers.json"
	CoreFile     = "core.json"
	PapersFile   = "papers.json"
	GraphFile    = "graph.json"
	CoauthorFile = "coauthor.json"
)

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadDatabase loads a corpus database written by WriteDatabase. A .yaml
// or .yml path is parsed as YAML, anything else as JSON.
func ReadDatabase(path string) (types.Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Database{}, fmt.Errorf("reading database: %w", err)
	}
	var db types.Database
	if isYAML(path) {
		err = yaml.Unmarshal(data, &db)
	} else {
		err = json.Unmarshal(data, &db)
	}
	if err != nil {
		return types.Database{}, fmt.Errorf("parsing database %s: %w", path, err)
	}
	return db, nil
}

// WriteDatabase saves db as indented JSON with a trailing newline, or as
// YAML for a .yaml or .yml path. Parent directories are created.
func WriteDatabase(path string, db types.Database) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(&db)
	} else {
		data, err = json.MarshalIndent(db, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("marshaling database: %w", err)
	}
	return writeFile(path, data)
}

type seedFile struct {
	Papers []types.Paper `json:"papers" yaml:"papers"`
}

// ReadSeed loads curated seed rows from a {"papers": [...]} document in
// JSON or YAML. A missing file yields no seeds.
func ReadSeed(path string) ([]types.Paper, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	var sf seedFile
	if isYAML(path) {
		err = yaml.Unmarshal(data, &sf)
	} else {
		err = json.Unmarshal(data, &sf)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing seed file %s: %w", path, err)
	}
	return sf.Papers, nil
}

// WriteViews writes the four views into dir as compact JSON documents.
func WriteViews(dir string, v types.Views) error {
	files := []struct {
		name string
		doc  any
	}{
		{CoreFile, v.Core},
		{PapersFile, v.Papers},
		{GraphFile, v.Graph},
		{CoauthorFile, v.Coauthor},
	}
	for _, f := range files {
		data, err := compactJSON(f.doc)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", f.name, err)
		}
		if err := writeFile(filepath.Join(dir, f.name), data); err != nil {
			return fmt.Errorf("writing %s: %w", f.name, err)
		}
	}
	return nil
}

// compactJSON encodes without HTML escaping, so titles keep their "<" and
// "&" characters.
func compactJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
