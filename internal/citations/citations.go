// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citations looks up citation counts and converts them into a
// bounded ranking signal.
package citations

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// Source resolves the citation count for a single paper. A count can be
// unknown (the provider has not indexed the paper) without being an error;
// papers announced the same day usually are.
type Source interface {
	Name() string
	Count(ctx context.Context, paperID string) (count int, known bool, err error)
}

// Score maps a citation count to the ranking signal
//
//	min(Cap, Scale * log2(1+count))
//
// which grows monotonically with the count and saturates at Cap. Unknown
// counts score zero, indistinguishable from a known count of zero.
func Score(count int, known bool, cfg types.CitationConfig) float64 {
	if !known || count <= 0 {
		return 0
	}

	scale := cfg.Scale
	if scale <= 0 {
		scale = 1.0
	}
	limit := cfg.Cap
	if limit <= 0 {
		limit = 10.0
	}

	s := scale * math.Log2(1+float64(count))
	if s > limit {
		return limit
	}
	return s
}

// LookupAll resolves citation counts for all records sequentially, pausing
// RequestDelay between calls to stay under provider rate limits. Lookup
// failures degrade to unknown counts with a warning on w; a cancelled
// context stops the remaining lookups. The input slice is not modified;
// the returned slice carries updated copies.
func LookupAll(ctx context.Context, src Source, records []types.PaperRecord, cfg types.CitationConfig, w io.Writer) []types.PaperRecord {
	out := make([]types.PaperRecord, len(records))
	copy(out, records)
	if src == nil {
		return out
	}

	for i := range out {
		if i > 0 && cfg.RequestDelay > 0 {
			select {
			case <-ctx.Done():
				fmt.Fprintf(w, "warning: citation lookup stopped: %v\n", ctx.Err())
				return out
			case <-time.After(cfg.RequestDelay):
			}
		}

		count, known, err := src.Count(ctx, out[i].Identifier)
		if err != nil {
			if ctx.Err() != nil {
				fmt.Fprintf(w, "warning: citation lookup stopped: %v\n", ctx.Err())
				return out
			}
			fmt.Fprintf(w, "warning: citation lookup failed for %s: %v\n", out[i].Identifier, err)
			continue
		}
		if known {
			out[i] = out[i].WithCitations(count)
		}
	}
	return out
}
