package engine

import (
	"sort"

	"github.com/piwi3910/GangSheet/internal/model"
)

// SortForPacking orders items in place for the greedy packer: longest side
// first, then largest area. The sort is stable, so items with equal keys
// keep their input order and repeated runs give identical layouts.
func SortForPacking(items []model.PreparedItem) {
	sort.SliceStable(items, func(i, j int) bool {
		mi, mj := items[i].MaxSide(), items[j].MaxSide()
		if mi != mj {
			return mi > mj
		}
		return items[i].Area() > items[j].Area()
	})
}
