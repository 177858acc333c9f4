// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Author is a catalog author record returned by author search.
type Author struct {
	// ID is the short OpenAlex author id (A...).
	ID           string `json:"id" yaml:"id"`
	DisplayName  string `json:"display_name" yaml:"display_name"`
	WorksCount   int    `json:"works_count" yaml:"works_count"`
	CitedByCount int    `json:"cited_by_count" yaml:"cited_by_count"`
}
