// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/pdiddy/paper-atlas/pkg/types"
)

// sections is the layout of paper-atlas.yaml.
type sections struct {
	Build   types.BuildConfig   `mapstructure:"build"`
	Analyze types.AnalyzeConfig `mapstructure:"analyze"`
	HTTP    types.HTTPConfig    `mapstructure:"http"`
}

// unboundKeys have no flag. Registering them lets Unmarshal see values
// that only come from the environment.
var unboundKeys = map[string]any{
	"http.user_agent":                "",
	"http.max_retries":               0,
	"analyze.thread_top":             0,
	"analyze.thread_key_authors":     0,
	"analyze.author_top_papers":      0,
	"analyze.author_top_coauthors":   0,
	"analyze.current_year":           0,
	"build.openalex_email":           "",
	"build.semantic_scholar_api_key": "",
}

func registerKeys(v *viper.Viper) {
	for key, zero := range unboundKeys {
		v.SetDefault(key, zero)
	}
}

// readSections unmarshals the build, analyze and http sections. The http
// section also fills the build stage's HTTP settings.
func readSections(v *viper.Viper) (sections, error) {
	var s sections
	if err := v.Unmarshal(&s); err != nil {
		return sections{}, fmt.Errorf("reading configuration: %w", err)
	}
	s.Build.HTTPConfig = s.HTTP
	return s, nil
}
