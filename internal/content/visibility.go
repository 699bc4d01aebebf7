package content

import (
	"cmp"
	"slices"
	"time"
)

// PreviewLimit 是首页预览区块展示的条数上限。
const PreviewLimit = 3

// Record is the view of a content row the evaluator needs.
type Record interface {
	RecordID() string
	Published() bool
	CategoryRef() Ref
	// Media returns the media kind; records without one return "".
	Media() MediaType
	// SortTime is the instant the record orders by, newest first.
	SortTime() time.Time
}

// Visible 返回已发布且符合筛选条件的记录，按排序时间倒序，时间相同按 ID 升序。
// 输入切片不会被修改。
func Visible[T Record](records []T, sel Selection) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if !r.Published() {
			continue
		}
		if !sel.Matches(r) {
			continue
		}
		out = append(out, r)
	}
	SortNewestFirst(out)
	return out
}

// SortNewestFirst orders records by SortTime descending, ties by id ascending.
func SortNewestFirst[T Record](records []T) {
	slices.SortStableFunc(records, func(a, b T) int {
		if c := b.SortTime().Compare(a.SortTime()); c != 0 {
			return c
		}
		return cmp.Compare(a.RecordID(), b.RecordID())
	})
}

// Preview 返回前 n 条记录；首页预览不受分类筛选影响。
func Preview[T Record](records []T, n int) []T {
	if n <= 0 || len(records) <= n {
		return records
	}
	return records[:n]
}
