package corpus

// CaseRecord is one parsed case document produced by the PDF extraction stage.
// Every field is optional; an empty string or nil slice means "absent".
type CaseRecord struct {
	Prompt         string     `json:"prompt,omitempty"`
	ClarifyingInfo string     `json:"clarifying_info,omitempty"`
	Framework      []string   `json:"framework,omitempty"`
	Questions      []Question `json:"questions,omitempty"`
	Exhibits       []Exhibit  `json:"exhibits,omitempty"`
	Conclusion     string     `json:"conclusion,omitempty"`
	RawText        string     `json:"raw_text,omitempty"`
	Industry       string     `json:"industry,omitempty"`
	CaseType       string     `json:"case_type,omitempty"`
}

type Question struct {
	Number int    `json:"number,omitempty"`
	Text   string `json:"text"`
}

// Exhibit is a data table or chart attached to a case. Files maps a file kind
// (image, csv, ...) to a path relative to the case directory.
type Exhibit struct {
	Number  int               `json:"number,omitempty"`
	Title   string            `json:"title,omitempty"`
	Type    string            `json:"type,omitempty"`
	Content string            `json:"content,omitempty"`
	Files   map[string]string `json:"files,omitempty"`
}

// File is the on-disk shape of the extraction output.
type File struct {
	ExtractionDate string       `json:"extraction_date,omitempty"`
	TotalCases     int          `json:"total_cases"`
	Sources        []string     `json:"sources,omitempty"`
	Cases          []CaseRecord `json:"cases"`
}
