package arango

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arangotui/arangotui/internal/types"
)

// fanOutLimit bounds the per-database and per-collection calls issued by one aggregate operation
const fanOutLimit = 4

// SummarizeCollections counts system, document and edge collections.
// System collections are counted once, regardless of their type.
func SummarizeCollections(name string, collections []types.CollectionInfo) types.DatabaseSummary {
	summary := types.DatabaseSummary{Name: name, Accessible: true}
	for _, coll := range collections {
		switch {
		case coll.IsSystem:
			summary.SystemCollections++
		case coll.Type == types.CollectionTypeDocument:
			summary.DocCollections++
		case coll.Type == types.CollectionTypeEdge:
			summary.EdgeCollections++
		}
	}
	return summary
}

// DatabaseSummaries lists databases and aggregates each one's collection listing.
// Only the top-level listing can fail; a database whose collections cannot be
// listed is returned with Accessible=false.
func (c *Client) DatabaseSummaries(ctx context.Context) ([]types.DatabaseSummary, error) {
	names, err := c.Databases(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]types.DatabaseSummary, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)

	for i, name := range names {
		g.Go(func() error {
			collections, err := c.Collections(gctx, name)
			if err != nil {
				c.logger.Debug("database not accessible", zap.String("database", name), zap.Error(err))
				summaries[i] = types.DatabaseSummary{Name: name}
				return nil
			}
			summaries[i] = SummarizeCollections(name, collections)
			return nil
		})
	}

	_ = g.Wait()
	// Cancellation is not a per-database access failure
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// CollectionsWithCounts lists the collections of a database and attaches each
// document count. A failed count leaves Count nil; the listing itself must succeed.
// The result keeps server order; callers sort.
func (c *Client) CollectionsWithCounts(ctx context.Context, database string) ([]types.CollectionEntry, error) {
	collections, err := c.Collections(ctx, database)
	if err != nil {
		return nil, err
	}

	entries := make([]types.CollectionEntry, len(collections))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)

	for i, coll := range collections {
		entries[i] = types.CollectionEntry{Info: coll}
		g.Go(func() error {
			detail, err := c.CollectionDetail(gctx, database, coll.Name)
			if err != nil {
				return nil
			}
			count := detail.Count
			entries[i].Count = &count
			return nil
		})
	}

	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
