package results

// FindUsagesToolArgs echoes the arguments of a find_usages call.
type FindUsagesToolArgs struct {
	DocumentPath string `json:"document_path"`
	Line         int    `json:"line"`
	Column       int    `json:"column"`
}

// FindUsagesToolResult represents the result of the find_usages tool
type FindUsagesToolResult struct {
	Arguments FindUsagesToolArgs `json:"arguments"`
	Message   string             `json:"message"`
	MarkerSet SourceMarkerSet    `json:"marker_set"`
}
