package library

// Index is the library index written by the casebook segmentation tool.
type Index struct {
	LibraryVersion string     `json:"library_version,omitempty"`
	LastUpdated    string     `json:"last_updated"`
	TotalCases     int        `json:"total_cases"`
	Statistics     Statistics `json:"statistics"`
	Cases          []Listing  `json:"cases"`
}

type Statistics struct {
	ByType       map[string]int `json:"by_type"`
	ByDifficulty map[string]int `json:"by_difficulty"`
	ByIndustry   map[string]int `json:"by_industry"`
}

// Listing is the lightweight index entry for one case. Path is relative to
// the parent of the library directory.
type Listing struct {
	CaseID       string   `json:"case_id"`
	Title        string   `json:"title"`
	CaseType     string   `json:"case_type"`
	Difficulty   string   `json:"difficulty"`
	Industry     string   `json:"industry"`
	Tags         []string `json:"tags"`
	QualityScore float64  `json:"quality_score"`
	Path         string   `json:"path"`
	HasExhibits  bool     `json:"has_exhibits,omitempty"`
	HasVisuals   bool     `json:"has_visuals,omitempty"`
}

// Criteria filters listings. Zero values match everything.
type Criteria struct {
	CaseType   string
	Difficulty string
	Industry   string
	// Tags must all be present on a listing.
	Tags       []string
	MinQuality float64
}

// Stats is the index-level summary reported to callers.
type Stats struct {
	TotalCases   int            `json:"total_cases"`
	LastUpdated  string         `json:"last_updated"`
	ByType       map[string]int `json:"by_type"`
	ByDifficulty map[string]int `json:"by_difficulty"`
	ByIndustry   map[string]int `json:"by_industry"`
}

// Case is a hydrated case body. All asset paths are absolute.
//
// Content is kept as decoded JSON so every key written by segmentation
// (clarifying_information, exhibit tables, question flags, ...) reaches the
// caller unchanged. Only exhibits[].files values are rewritten.
type Case struct {
	CaseID       string         `json:"case_id"`
	Source       any            `json:"source,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	Content      map[string]any `json:"content"`
	VisualAssets VisualAssets   `json:"visual_assets"`
	Stats        map[string]any `json:"stats,omitempty"`
	CreatedAt    string         `json:"created_at,omitempty"`
	Version      string         `json:"version,omitempty"`
}

type VisualAssets struct {
	Images      []VisualAsset `json:"images,omitempty"`
	Screenshots []VisualAsset `json:"screenshots,omitempty"`
}

type VisualAsset struct {
	Page     int    `json:"page,omitempty"`
	Filename string `json:"filename"`
	Filepath string `json:"filepath,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Format   string `json:"format,omitempty"`
}
