package results

// UpdateUnsavedBufferToolResult represents the result of the
// update_unsaved_buffer tool
type UpdateUnsavedBufferToolResult struct {
	DocumentPath string `json:"document_path"`
	Bytes        int    `json:"bytes"`
	Message      string `json:"message"`
}

// DiscardUnsavedBufferToolResult represents the result of the
// discard_unsaved_buffer tool
type DiscardUnsavedBufferToolResult struct {
	DocumentPath string `json:"document_path"`
	Removed      bool   `json:"removed"`
	Message      string `json:"message"`
}

// ListUnsavedFilesToolResult represents the result of the
// list_unsaved_files tool
type ListUnsavedFilesToolResult struct {
	Files   []string `json:"files"`
	Message string   `json:"message"`
}
