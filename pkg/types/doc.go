// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-atlas pipeline:
// the canonical Paper record, the build-stage Database, stage configuration,
// and the four analysis output views.
package types
