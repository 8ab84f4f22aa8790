package model

// Algorithm selects how the packing order is decided.
type Algorithm string

const (
	AlgorithmMaxRects Algorithm = "maxrects" // Sorted greedy MaxRects, best short side fit (fast)
	AlgorithmGenetic  Algorithm = "genetic"  // Genetic search over order and orientation (slower, often shorter)
)

// ParseAlgorithm maps a user string to an Algorithm. Unknown values report false.
func ParseAlgorithm(s string) (Algorithm, bool) {
	switch Algorithm(s) {
	case AlgorithmMaxRects, "":
		return AlgorithmMaxRects, true
	case AlgorithmGenetic:
		return AlgorithmGenetic, true
	default:
		return AlgorithmMaxRects, false
	}
}

// PackSettings holds the per-run switches of the preparation and packing
// pipeline. Canvas geometry lives in CanvasSpec.
type PackSettings struct {
	Algorithm      Algorithm `json:"algorithm"`
	AutoScale      bool      `json:"auto_scale"`      // Downscale items whose short side exceeds the usable width
	Trim           bool      `json:"trim"`            // Crop transparent margins before packing
	AlphaThreshold uint8     `json:"alpha_threshold"` // A pixel is content when its alpha is above this value
}

func DefaultPackSettings() PackSettings {
	return PackSettings{
		Algorithm:      AlgorithmMaxRects,
		AutoScale:      true,
		Trim:           true,
		AlphaThreshold: 0,
	}
}
