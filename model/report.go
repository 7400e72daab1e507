package model

// OccurrenceGroup holds the motifs found in exactly Count distinct genomes,
// in discovery order.
type OccurrenceGroup struct {
	Count  int      `json:"count"`
	Motifs []string `json:"motifs"`
}

// ActivityRank is one entry of the ranked activity summary.
type ActivityRank struct {
	Rank        int     `json:"rank"` // 0-based, matching the console summary
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Weight      int     `json:"weight"`
	Percentage  float64 `json:"percentage"` // rounded to one decimal place
}

// ActivitySummary is the ranked top-N activity inference for the target marker.
type ActivitySummary struct {
	TargetMarker string         `json:"target_marker"`
	TotalMarkers int            `json:"total_markers"` // occurrence-weighted count of adjacent markers
	Top          []ActivityRank `json:"top"`
}

// ScanStats counts what happened to the input lines during a scan.
type ScanStats struct {
	FilesScanned    int `json:"files_scanned"`
	LinesRead       int `json:"lines_read"`
	MalformedLines  int `json:"malformed_lines"`
	ShortLines      int `json:"short_lines"`
	RejectedLines   int `json:"rejected_lines"`
	AcceptedWindows int `json:"accepted_windows"`
	DistinctMotifs  int `json:"distinct_motifs"`
}

// AnalysisReport is the complete result of one run.
type AnalysisReport struct {
	RunID        string            `json:"run_id"`
	MotifLength  int               `json:"motif_length"`
	MinGenomes   int               `json:"min_genomes"`
	TargetMarker string            `json:"target_marker"`
	Occurrences  []OccurrenceGroup `json:"occurrences"` // count descending
	Activities   ActivitySummary   `json:"activities"`
	Stats        ScanStats         `json:"stats"`
	OutputFiles  []string          `json:"output_files,omitempty"`
}
