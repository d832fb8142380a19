/*
Package types defines the data structures shared by the gateway, the
browser controller, the history store and the TUI.

# Connection

Connection is resolved once at startup from config profiles and flags.
It carries the endpoint, an optional Graph Analytics Engine endpoint,
the basic-auth credentials and TLS leniency. It is never mutated.

# Server payloads

ServerVersion, GAEVersion, CollectionInfo, CollectionDetail and
GraphSummary mirror the JSON returned by the ArangoDB HTTP API.
Optional server properties are pointers or json.RawMessage so that
absent fields stay absent when rendered.

# Derived records

DatabaseSummary is computed from a collection listing.
CollectionEntry pairs a CollectionInfo with its count; Count is nil when
the count fetch failed.
DocumentSample holds the raw documents returned for one sample request.

# History

HistoryEntry is one completed gateway call as stored in SQLite.
*/
package types
