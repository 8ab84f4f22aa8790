package model

// ViolationKind classifies a layout problem found by the layout checker.
type ViolationKind string

const (
	ViolationOutOfBounds ViolationKind = "out_of_bounds" // Image extends past the canvas edge
	ViolationOverlap     ViolationKind = "overlap"       // Two padded footprints intersect
	ViolationDuplicate   ViolationKind = "duplicate"     // Asset reported more than once
)

// LayoutViolation records a problem detected in a finished PackResult.
type LayoutViolation struct {
	Kind       ViolationKind `json:"kind"`
	ItemIndex  int           `json:"item_index"` // Index into PackResult.Packed, -1 for failures
	ItemID     string        `json:"item_id"`
	ItemLabel  string        `json:"item_label"`
	OtherID    string        `json:"other_id,omitempty"`
	OtherLabel string        `json:"other_label,omitempty"`
	OverlapPx  int64         `json:"overlap_px,omitempty"` // Intersection area of padded footprints
}
