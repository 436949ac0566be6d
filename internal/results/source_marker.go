package results

// MarkerKindUsage tags markers produced by a find-usages search.
const MarkerKindUsage = "usage"

// SourceMarker is one display-ready reference hit. Message is
// pre-rendered HTML when IsHTML is set; presentation layers must not
// escape it again.
type SourceMarker struct {
	Kind    string `json:"kind"`
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
	IsHTML  bool   `json:"is_html"`
}

// SourceMarkerSet is a labeled collection of markers presented to the
// user for selection and navigation. No marker is auto-selected.
type SourceMarkerSet struct {
	Label   string         `json:"label"`
	Markers []SourceMarker `json:"markers"`
}
