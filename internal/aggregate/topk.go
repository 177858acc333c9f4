// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import "sort"

// counter counts keys and remembers first-seen order for tie breaks.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *counter) len() int { return len(c.order) }

// top returns the k most frequent keys, count desc, ties in first-seen
// order. k <= 0 means all.
func (c *counter) top(k int) []string {
	keys := append([]string(nil), c.order...)
	sort.SliceStable(keys, func(i, j int) bool { return c.counts[keys[i]] > c.counts[keys[j]] })
	if k > 0 && len(keys) > k {
		keys = keys[:k]
	}
	return keys
}

// topMap returns the top k keys with their counts.
func (c *counter) topMap(k int) map[string]int {
	out := make(map[string]int)
	for _, key := range c.top(k) {
		out[key] = c.counts[key]
	}
	return out
}
