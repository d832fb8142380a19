package browser

import "fmt"

// ViewKind tags the active screen
type ViewKind int

const (
	KindDatabaseList ViewKind = iota
	KindCollectionList
	KindCollectionProperties
	KindDocumentViewer
	KindGraphList
	KindGraphProperties
)

func (k ViewKind) String() string {
	switch k {
	case KindDatabaseList:
		return "database_list"
	case KindCollectionList:
		return "collection_list"
	case KindCollectionProperties:
		return "collection_properties"
	case KindDocumentViewer:
		return "document_viewer"
	case KindGraphList:
		return "graph_list"
	case KindGraphProperties:
		return "graph_properties"
	}
	return fmt.Sprintf("view(%d)", int(k))
}

// View is the closed set of browser screens. Each variant carries only the
// addressing context it needs; views are values and compare with ==.
type View interface {
	Kind() ViewKind
	// Database is the database the view is scoped to, empty for DatabaseList
	Database() string
	Title() string
	sealed()
}

// DatabaseList is the initial view
type DatabaseList struct{}

// CollectionList lists the collections of one database
type CollectionList struct {
	DB string
}

// CollectionProperties shows the property set of one collection
type CollectionProperties struct {
	DB         string
	Collection string
}

// DocumentViewer shows a document sample of one collection
type DocumentViewer struct {
	DB         string
	Collection string
}

// GraphList lists the named graphs of one database with their edge definitions
type GraphList struct {
	DB string
}

// GraphProperties shows one graph from the loaded graph list
type GraphProperties struct {
	DB    string
	Graph string
}

func (DatabaseList) Kind() ViewKind         { return KindDatabaseList }
func (CollectionList) Kind() ViewKind       { return KindCollectionList }
func (CollectionProperties) Kind() ViewKind { return KindCollectionProperties }
func (DocumentViewer) Kind() ViewKind       { return KindDocumentViewer }
func (GraphList) Kind() ViewKind            { return KindGraphList }
func (GraphProperties) Kind() ViewKind      { return KindGraphProperties }

func (DatabaseList) Database() string           { return "" }
func (v CollectionList) Database() string       { return v.DB }
func (v CollectionProperties) Database() string { return v.DB }
func (v DocumentViewer) Database() string       { return v.DB }
func (v GraphList) Database() string            { return v.DB }
func (v GraphProperties) Database() string      { return v.DB }

func (DatabaseList) Title() string { return "Database Browser - Select a database" }

func (v CollectionList) Title() string { return fmt.Sprintf("Database: %s", v.DB) }

func (v CollectionProperties) Title() string {
	return fmt.Sprintf("Collection Properties: %s.%s", v.DB, v.Collection)
}

func (v DocumentViewer) Title() string {
	return fmt.Sprintf("Documents: %s.%s", v.DB, v.Collection)
}

func (v GraphList) Title() string { return fmt.Sprintf("Graphs: %s", v.DB) }

func (v GraphProperties) Title() string {
	return fmt.Sprintf("Graph Properties: %s.%s", v.DB, v.Graph)
}

func (DatabaseList) sealed()         {}
func (CollectionList) sealed()       {}
func (CollectionProperties) sealed() {}
func (DocumentViewer) sealed()       {}
func (GraphList) sealed()            {}
func (GraphProperties) sealed()      {}

// IsDetail reports whether the view is a scrollable detail/document view
func IsDetail(v View) bool {
	switch v.Kind() {
	case KindCollectionProperties, KindDocumentViewer, KindGraphProperties:
		return true
	}
	return false
}
