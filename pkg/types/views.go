// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// The view types below use the compact field names consumed by the web
// front end. Each view is a self-contained document.

// CoreView holds threads, authors, the top-N paper dictionary and the
// citation subgraph restricted to those papers (core.json).
type CoreView struct {
	Metadata CoreMetadata           `json:"metadata"`
	Threads  map[string]ThreadStats `json:"threads"`
	Authors  map[string]AuthorStats `json:"authors"`
	Papers   map[string]CorePaper   `json:"papers"`
	Graph    CitationGraph          `json:"graph"`
}

// CoreMetadata describes a core view.
type CoreMetadata struct {
	GeneratedAt   string `json:"generated_at"`
	TotalPapers   int    `json:"total_papers"`
	TopPapers     int    `json:"top_papers"`
	CitationEdges int    `json:"citation_edges"`
	Authors       int    `json:"authors"`
	CurrentYear   int    `json:"current_year"`
}

// YearCount is one histogram bucket.
type YearCount struct {
	Year  int `json:"y"`
	Count int `json:"c"`
}

// ThreadStats aggregates the papers assigned to one thread.
type ThreadStats struct {
	Name        string         `json:"n"`
	Description string         `json:"d"`
	PaperCount  int            `json:"tc"`
	Yearly      []YearCount    `json:"yc"`
	PeakYear    *int           `json:"py"`
	AuthorCount int            `json:"ac"`
	KeyAuthors  map[string]int `json:"ka"`
	TopPapers   []string       `json:"tops"`
}

// AuthorStats aggregates one author display name.
type AuthorStats struct {
	Name       string         `json:"u"`
	PaperCount int            `json:"pc"`
	Influence  float64        `json:"inf"`
	Citations  int            `json:"cc"`
	Years      []int          `json:"yrs"`
	Threads    map[string]int `json:"ths"`
	TopPapers  []string       `json:"tops"`
	Coauthors  map[string]int `json:"co"`

	// PaperIDs is the full list; only counted in the view.
	PaperIDs []string `json:"-"`
}

// CorePaper is the compact paper record of the core view.
type CorePaper struct {
	ID                string   `json:"id"`
	Title             string   `json:"t"`
	Authors           []string `json:"a"`
	Date              string   `json:"d"`
	Influence         float64  `json:"inf"`
	Thread            string   `json:"th"`
	CitedByCount      int      `json:"cc"`
	References        []string `json:"ref"`
	Tags              []string `json:"tags"`
	InCorpusCitations int      `json:"icc"`
}

// CitationGraph is the reduced citation subgraph of the core view.
type CitationGraph struct {
	Nodes []GraphNodeRef `json:"nodes"`
	Edges []Edge         `json:"edges"`
}

// GraphNodeRef is a bare node reference.
type GraphNodeRef struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Edge is a directed citation edge: Source cites Target.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type,omitempty"`
}

// PapersView is the full paper index (papers.json).
type PapersView struct {
	Metadata PapersMetadata        `json:"metadata"`
	Papers   map[string]IndexPaper `json:"papers"`
}

// PapersMetadata describes a papers view.
type PapersMetadata struct {
	GeneratedAt string `json:"generated_at"`
	Total       int    `json:"total"`
}

// IndexPaper is the display record of the full paper index.
type IndexPaper struct {
	ID           string   `json:"id"`
	Title        string   `json:"t"`
	Authors      []string `json:"a"`
	Year         *int     `json:"y"`
	CitedByCount int      `json:"c"`
	Influence    float64  `json:"inf"`
	Relevance    float64  `json:"rel"`
	Thread       string   `json:"th"`
	Tags         []string `json:"tags"`
	DOI          *string  `json:"doi"`
	ArxivID      *string  `json:"arxiv_id"`
	URL          *string  `json:"url"`
	Venue        *string  `json:"venue"`
}

// GraphView is the unified network with warm layout positions (graph.json).
type GraphView struct {
	Metadata     GraphMetadata `json:"metadata"`
	UnifiedGraph UnifiedGraph  `json:"unifiedGraph"`
}

// GraphMetadata describes a graph view.
type GraphMetadata struct {
	GeneratedAt string `json:"generated_at"`
	Nodes       int    `json:"nodes"`
	Edges       int    `json:"edges"`
}

// UnifiedGraph holds positioned nodes and typed edges.
type UnifiedGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []Edge      `json:"edges"`
}

// GraphNode is a positioned paper node.
type GraphNode struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Title     string  `json:"t"`
	Influence float64 `json:"inf"`
	Thread    string  `json:"th"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// CoauthorView is the author collaboration network (coauthor.json).
type CoauthorView struct {
	Nodes []CoauthorNode `json:"nodes"`
	Edges []CoauthorEdge `json:"edges"`
}

// CoauthorNode is an author with positive cumulative influence.
type CoauthorNode struct {
	ID        string  `json:"id"`
	Author    string  `json:"author"`
	Influence float64 `json:"inf"`
}

// CoauthorEdge links two co-authors; Weight counts shared papers.
type CoauthorEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// Views bundles the four output documents of one analysis run.
type Views struct {
	Core     CoreView
	Papers   PapersView
	Graph    GraphView
	Coauthor CoauthorView
}
