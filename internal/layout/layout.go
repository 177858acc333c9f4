// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package layout seeds deterministic 2-D positions for the graph view:
// year along x, thread band plus a hashed jitter along y.
package layout

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/blake3"

	"github.com/pdiddy/paper-atlas/internal/rank"
)

// Layout constants.
const (
	Width       = 800.0
	BandHeight  = 100.0
	JitterRange = 60
	DefaultYear = 2000
)

// Point is a warm start position.
type Point struct {
	X float64
	Y float64
}

// Jitter maps id to an integer in [-30, 30) using the first eight bytes of
// its BLAKE3 digest, so positions are identical across runs and
// processes.
func Jitter(id string) int {
	sum := blake3.Sum256([]byte(id))
	h := binary.BigEndian.Uint64(sum[:8])
	return int(h%JitterRange) - JitterRange/2
}

// Positions places every paper in ranked. x interpolates the year into
// [-400, 400] over the observed year range; missing years count as 2000.
// y is the thread's index in threadOrder times 100 plus Jitter; an unknown
// thread sits in band 0. x is rounded to one decimal.
func Positions(ranked []rank.Ranked, threadOrder []string) map[string]Point {
	out := make(map[string]Point, len(ranked))
	if len(ranked) == 0 {
		return out
	}
	band := make(map[string]int, len(threadOrder))
	for i, t := range threadOrder {
		band[t] = i
	}

	lo, hi := math.MaxInt, math.MinInt
	for _, r := range ranked {
		y := yearOf(r)
		lo, hi = min(lo, y), max(hi, y)
	}
	span := float64(max(hi-lo, 1))

	for _, r := range ranked {
		x := float64(yearOf(r)-lo)/span*Width - Width/2
		y := float64(band[r.Thread])*BandHeight + float64(Jitter(r.ID))
		out[r.ID] = Point{X: math.Round(x*10) / 10, Y: y}
	}
	return out
}

func yearOf(r rank.Ranked) int {
	if r.Year == 0 {
		return DefaultYear
	}
	return r.Year
}
