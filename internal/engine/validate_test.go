package engine

import (
	"testing"

	"github.com/piwi3910/GangSheet/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func layoutFixture() model.PackResult {
	return model.PackResult{
		Canvas: model.CanvasSpec{WidthPx: 200, HeightPx: 200, PaddingPx: 10},
		Packed: []model.PackedItem{
			{ID: "a", Label: "A", X: 0, Y: 0, Width: 50, Height: 50},
			{ID: "b", Label: "B", X: 60, Y: 0, Width: 50, Height: 50},
			{ID: "c", Label: "C", X: 0, Y: 60, Width: 100, Height: 40},
		},
	}
}

func TestCheckLayout_CleanLayout(t *testing.T) {
	assert.Empty(t, CheckLayout(layoutFixture()))
}

func TestCheckLayout_GapTooSmall(t *testing.T) {
	result := layoutFixture()
	result.Packed[1].X = 55 // 5px from A, gap is 10

	violations := CheckLayout(result)

	require.Len(t, violations, 1)
	v := violations[0]
	assert.Equal(t, model.ViolationOverlap, v.Kind)
	assert.Equal(t, "a", v.ItemID)
	assert.Equal(t, "b", v.OtherID)
	assert.Equal(t, int64(5*60), v.OverlapPx)
}

func TestCheckLayout_OutOfBounds(t *testing.T) {
	result := layoutFixture()
	result.Packed[2].Y = 170

	violations := CheckLayout(result)

	require.Len(t, violations, 1)
	assert.Equal(t, model.ViolationOutOfBounds, violations[0].Kind)
	assert.Equal(t, 2, violations[0].ItemIndex)
}

func TestCheckLayout_DuplicateAsset(t *testing.T) {
	result := layoutFixture()
	result.Failed = []model.FailureRecord{{AssetID: "a", Label: "A", Reason: model.ReasonNoSpace}}

	violations := CheckLayout(result)

	require.Len(t, violations, 1)
	assert.Equal(t, model.ViolationDuplicate, violations[0].Kind)
	assert.Equal(t, -1, violations[0].ItemIndex)
}

func TestFormatViolations(t *testing.T) {
	warnings := FormatViolations([]model.LayoutViolation{
		{Kind: model.ViolationOverlap, ItemLabel: "Logo", OtherLabel: "Badge", OverlapPx: 25},
		{Kind: model.ViolationOutOfBounds, ItemLabel: "Banner", ItemID: "x1"},
	})

	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "Logo")
	assert.Contains(t, warnings[0], "Badge")
	assert.Contains(t, warnings[1], "canvas edge")
}
