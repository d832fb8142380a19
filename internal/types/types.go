package types

import "encoding/json"

// Collection type codes as reported by the server
const (
	CollectionTypeDocument = 2
	CollectionTypeEdge     = 3
)

// Connection holds the already-parsed endpoint and credentials used by every fetch
type Connection struct {
	Endpoint           string `json:"endpoint" yaml:"endpoint"`
	GAEEndpoint        string `json:"gae,omitempty" yaml:"gae,omitempty"`
	Username           string `json:"username" yaml:"username"`
	Password           string `json:"-" yaml:"password,omitempty"`
	InsecureSkipVerify bool   `json:"insecureSkipVerify" yaml:"insecure_skip_verify"`
	TimeoutSec         int    `json:"timeoutSec,omitempty" yaml:"timeout_sec,omitempty"`
}

// ServerVersion is the /_api/version payload
type ServerVersion struct {
	Server  string `json:"server"`
	License string `json:"license"`
	Version string `json:"version"`
}

// GAEVersion is the Graph Analytics Engine /v1/version payload
type GAEVersion struct {
	APIMaxVersion uint32 `json:"apiMaxVersion"`
	APIMinVersion uint32 `json:"apiMinVersion"`
	Version       string `json:"version"`
}

// DatabaseSummary aggregates one database's collection listing
type DatabaseSummary struct {
	Name              string
	DocCollections    int
	EdgeCollections   int
	SystemCollections int
	Accessible        bool
}

// CollectionInfo is one entry of /_api/collection
type CollectionInfo struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Status           int    `json:"status"`
	Type             int    `json:"type"`
	IsSystem         bool   `json:"isSystem"`
	GloballyUniqueID string `json:"globallyUniqueId"`
}

// TypeName returns "Document" or "Edge"
func (c CollectionInfo) TypeName() string {
	if c.Type == CollectionTypeEdge {
		return "Edge"
	}
	return "Document"
}

// CollectionEntry is a collection plus its document count, if the count fetch succeeded
type CollectionEntry struct {
	Info  CollectionInfo
	Count *uint64
}

// CollectionDetail is the /_api/collection/{name}/count payload.
// Optional server properties stay pointers so absent fields are not rendered as zero values.
type CollectionDetail struct {
	Error                      bool            `json:"error"`
	Code                       int             `json:"code"`
	WriteConcern               *int            `json:"writeConcern,omitempty"`
	WaitForSync                *bool           `json:"waitForSync,omitempty"`
	UsesRevisionsAsDocumentIDs *bool           `json:"usesRevisionsAsDocumentIds,omitempty"`
	SyncByRevision             *bool           `json:"syncByRevision,omitempty"`
	StatusString               *string         `json:"statusString,omitempty"`
	ID                         *string         `json:"id,omitempty"`
	IsSmartChild               *bool           `json:"isSmartChild,omitempty"`
	Schema                     json.RawMessage `json:"schema,omitempty"`
	Name                       string          `json:"name"`
	Type                       int             `json:"type"`
	Status                     int             `json:"status"`
	Count                      uint64          `json:"count"`
	CacheEnabled               *bool           `json:"cacheEnabled,omitempty"`
	IsSystem                   bool            `json:"isSystem"`
	InternalValidatorType      *int            `json:"internalValidatorType,omitempty"`
	GloballyUniqueID           *string         `json:"globallyUniqueId,omitempty"`
	KeyOptions                 json.RawMessage `json:"keyOptions,omitempty"`
	ComputedValues             json.RawMessage `json:"computedValues,omitempty"`
	ObjectID                   *string         `json:"objectId,omitempty"`
}

// EdgeDefinition binds one edge collection to its vertex collections
type EdgeDefinition struct {
	Collection string   `json:"collection"`
	From       []string `json:"from"`
	To         []string `json:"to"`
}

// GraphSummary is one entry of /_api/gharial
type GraphSummary struct {
	Key               string           `json:"_key"`
	ID                string           `json:"_id"`
	Rev               string           `json:"_rev"`
	Name              string           `json:"name"`
	EdgeDefinitions   []EdgeDefinition `json:"edgeDefinitions"`
	OrphanCollections []string         `json:"orphanCollections"`
	IsSmart           bool             `json:"isSmart"`
	IsDisjoint        bool             `json:"isDisjoint"`
	NumberOfShards    *int             `json:"numberOfShards,omitempty"`
	ReplicationFactor json.RawMessage  `json:"replicationFactor,omitempty"`
}

// DocumentSample is a bounded, server-ordered sample of one collection
type DocumentSample struct {
	Collection string
	Limit      int
	Documents  []json.RawMessage
}

// HistoryEntry is one recorded gateway operation
type HistoryEntry struct {
	ID         int64  `json:"id"`
	Timestamp  string `json:"timestamp"`
	Operation  string `json:"operation"`
	Database   string `json:"database,omitempty"`
	Target     string `json:"target,omitempty"`
	Endpoint   string `json:"endpoint"`
	DurationMs int64  `json:"durationMs"`
	Items      int    `json:"items"`
	Error      string `json:"error,omitempty"`
}

// FilterBookmark is a saved JMESPath filter expression
type FilterBookmark struct {
	ID         int64  `json:"id"`
	Expression string `json:"expression"`
	CreatedAt  string `json:"createdAt"`
}
