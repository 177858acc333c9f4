// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves API credentials. Values come from explicit
// configuration, then the environment (which a .env file may populate),
// then a directory of plain-text files where the filename is the key name
// and the trimmed file contents are the value.
//
// Supported key files: openalex-email, semantic-scholar-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// DefaultDir is the secrets directory read by the CLI.
const DefaultDir = ".secrets"

// Key file names and their environment variables.
const (
	OpenAlexEmailFile      = "openalex-email"
	SemanticScholarKeyFile = "semantic-scholar-api-key"

	OpenAlexEmailEnv      = "OPENALEX_EMAIL"
	SemanticScholarKeyEnv = "S2_API_KEY"
)

// Credentials are the optional API credentials of the build stage.
type Credentials struct {
	OpenAlexEmail         string
	SemanticScholarAPIKey string
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory is not an error; Load returns an empty map.
// Unreadable files are logged and skipped.
func Load(dir string, log *zap.Logger) (map[string]string, error) {
	if log == nil {
		log = zap.NewNop()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn("could not read secret", zap.String("name", name), zap.Error(err))
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Resolve fills the empty fields of c from getenv, then from files.
func Resolve(c Credentials, getenv func(string) string, files map[string]string) Credentials {
	pick := func(current, env, file string) string {
		if v := strings.TrimSpace(current); v != "" {
			return v
		}
		if getenv != nil {
			if v := strings.TrimSpace(getenv(env)); v != "" {
				return v
			}
		}
		return files[file]
	}
	return Credentials{
		OpenAlexEmail:         pick(c.OpenAlexEmail, OpenAlexEmailEnv, OpenAlexEmailFile),
		SemanticScholarAPIKey: pick(c.SemanticScholarAPIKey, SemanticScholarKeyEnv, SemanticScholarKeyFile),
	}
}
