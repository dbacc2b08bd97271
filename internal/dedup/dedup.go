// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedup removes duplicate paper records within a listing and
// against papers reported by earlier runs.
package dedup

import "github.com/pdiddy/paper-digest/pkg/types"

// Stats counts the records removed during deduplication.
type Stats struct {
	// InRun is the number of records dropped because an earlier record in
	// the same listing carried the same identifier.
	InRun int
	// PriorRuns is the number of records dropped because an earlier run
	// already reported their identifier.
	PriorRuns int
}

// Total returns the number of records removed.
func (s Stats) Total() int { return s.InRun + s.PriorRuns }

// Dedupe returns the records whose identifier has not been seen before,
// preserving first-seen order. Within a listing the first occurrence of an
// identifier wins; records whose identifier appears in alreadySeen are
// dropped entirely. Neither the input slice nor alreadySeen is modified, so
// running Dedupe on its own output is a no-op.
func Dedupe(records []types.PaperRecord, alreadySeen map[string]bool) ([]types.PaperRecord, Stats) {
	var stats Stats
	seen := make(map[string]bool, len(records))
	var deduped []types.PaperRecord

	for _, r := range records {
		if alreadySeen[r.Identifier] {
			stats.PriorRuns++
			continue
		}
		if seen[r.Identifier] {
			stats.InRun++
			continue
		}
		seen[r.Identifier] = true
		deduped = append(deduped, r)
	}
	return deduped, stats
}
