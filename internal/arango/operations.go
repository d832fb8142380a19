package arango

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/arangotui/arangotui/internal/types"
)

// Operation names, used in errors, logs and the fetch history
const (
	OpVersion          = "version"
	OpGAEVersion       = "gae_version"
	OpDatabases        = "list_databases"
	OpCollections      = "list_collections"
	OpCollectionDetail = "collection_detail"
	OpGraphs           = "list_graphs"
	OpSampleDocuments  = "sample_documents"
)

// sampleQuery takes the first @limit documents of a collection in server order
const sampleQuery = "FOR doc IN @@collection LIMIT @limit RETURN doc"

type databaseListResponse struct {
	Error  bool     `json:"error"`
	Code   int      `json:"code"`
	Result []string `json:"result"`
}

type collectionListResponse struct {
	Error  bool                   `json:"error"`
	Code   int                    `json:"code"`
	Result []types.CollectionInfo `json:"result"`
}

type graphListResponse struct {
	Error  bool                 `json:"error"`
	Code   int                  `json:"code"`
	Graphs []types.GraphSummary `json:"graphs"`
}

type cursorOptions struct {
	Stream bool `json:"stream"`
}

type cursorRequest struct {
	Query     string         `json:"query"`
	BindVars  map[string]any `json:"bindVars"`
	BatchSize int            `json:"batchSize"`
	Options   cursorOptions  `json:"options"`
}

type cursorResponse struct {
	Error   bool              `json:"error"`
	Code    int               `json:"code"`
	Result  []json.RawMessage `json:"result"`
	HasMore bool              `json:"hasMore"`
}

// Version performs the startup handshake against /_api/version
func (c *Client) Version(ctx context.Context) (*types.ServerVersion, error) {
	start := time.Now()
	var v types.ServerVersion
	err := c.getJSON(ctx, OpVersion, c.baseURL()+"/_api/version", true, &v)
	c.record(OpVersion, "", "", start, 1, err)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// GAEVersion queries the Graph Analytics Engine version endpoint (unauthenticated)
func (c *Client) GAEVersion(ctx context.Context) (*types.GAEVersion, error) {
	if c.conn.GAEEndpoint == "" {
		return nil, fmt.Errorf("no GAE endpoint configured")
	}
	var v types.GAEVersion
	rawURL := strings.TrimRight(c.conn.GAEEndpoint, "/") + "/v1/version"
	if err := c.getJSON(ctx, OpGAEVersion, rawURL, false, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Databases lists the database names visible to the credentials
func (c *Client) Databases(ctx context.Context) ([]string, error) {
	start := time.Now()
	var resp databaseListResponse
	err := c.getJSON(ctx, OpDatabases, c.baseURL()+"/_api/database", true, &resp)
	c.record(OpDatabases, "", "", start, len(resp.Result), err)
	if err != nil {
		return nil, err
	}
	return resp.Result, nil
}

// Collections lists all collections of a database, system collections included
func (c *Client) Collections(ctx context.Context, database string) ([]types.CollectionInfo, error) {
	start := time.Now()
	var resp collectionListResponse
	err := c.getJSON(ctx, OpCollections, c.dbURL(database, "_api", "collection"), true, &resp)
	c.record(OpCollections, database, "", start, len(resp.Result), err)
	if err != nil {
		return nil, err
	}
	return resp.Result, nil
}

// CollectionDetail fetches the property set and document count of one collection
func (c *Client) CollectionDetail(ctx context.Context, database, collection string) (*types.CollectionDetail, error) {
	start := time.Now()
	var detail types.CollectionDetail
	rawURL := c.dbURL(database, "_api", "collection", url.PathEscape(collection), "count")
	err := c.getJSON(ctx, OpCollectionDetail, rawURL, true, &detail)
	c.record(OpCollectionDetail, database, collection, start, 1, err)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// Graphs lists the named graphs of a database
func (c *Client) Graphs(ctx context.Context, database string) ([]types.GraphSummary, error) {
	start := time.Now()
	var resp graphListResponse
	err := c.getJSON(ctx, OpGraphs, c.dbURL(database, "_api", "gharial"), true, &resp)
	c.record(OpGraphs, database, "", start, len(resp.Graphs), err)
	if err != nil {
		return nil, err
	}
	return resp.Graphs, nil
}

// SampleDocuments returns the first limit documents of a collection in server order.
// The batch size equals the limit so the whole sample arrives in one round trip.
func (c *Client) SampleDocuments(ctx context.Context, database, collection string, limit int) (*types.DocumentSample, error) {
	if limit < 0 {
		limit = 0
	}

	batch := limit
	if batch < 1 {
		batch = 1
	}

	body := cursorRequest{
		Query: sampleQuery,
		BindVars: map[string]any{
			"@collection": collection,
			"limit":       limit,
		},
		BatchSize: batch,
		Options:   cursorOptions{Stream: false},
	}

	start := time.Now()
	var resp cursorResponse
	err := c.doJSON(ctx, OpSampleDocuments, http.MethodPost, c.dbURL(database, "_api", "cursor"), body, true, &resp)
	c.record(OpSampleDocuments, database, collection, start, len(resp.Result), err)
	if err != nil {
		return nil, err
	}

	docs := resp.Result
	if docs == nil {
		docs = []json.RawMessage{}
	}

	return &types.DocumentSample{
		Collection: collection,
		Limit:      limit,
		Documents:  docs,
	}, nil
}
