package algo

import (
	"cmp"

	"github.com/huangsam/workbench/schema"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparator orders arbitrary field values: missing values last, then numbers,
// then calendar dates, then locale-aware text.
// A Comparator holds collation buffers and must not be shared between goroutines.
type Comparator struct {
	collator *collate.Collator
}

// NewComparator returns a comparator using the root locale with case, accent and width
// differences ignored and digit runs compared by numeric value.
func NewComparator() *Comparator {
	return NewComparatorForLocale(language.Und)
}

// NewComparatorForLocale returns a comparator collating text with the given locale.
func NewComparatorForLocale(tag language.Tag) *Comparator {
	return &Comparator{collator: collate.New(tag, collate.Loose, collate.Numeric)}
}

// Compare returns -1, 0 or +1.
func (c *Comparator) Compare(a, b any, order schema.SortOrder) int {
	return c.CompareValues(Classify(a), Classify(b), order)
}

// CompareValues compares two pre-classified values.
func (c *Comparator) CompareValues(a, b Value, order schema.SortOrder) int {
	// Missing values sort last in both directions: order is not applied to this branch.
	switch {
	case a.Kind == KindNull && b.Kind == KindNull:
		return 0
	case a.Kind == KindNull:
		return 1
	case b.Kind == KindNull:
		return -1
	}

	var res int
	switch {
	case a.Kind == KindNumber && b.Kind == KindNumber:
		res = cmp.Compare(a.Number, b.Number)
	case a.Kind == KindDate && b.Kind == KindDate:
		res = a.Date.Compare(b.Date)
	default:
		res = c.collator.CompareString(a.Text, b.Text)
	}

	if order == schema.DescOrder {
		res = -res
	}
	return sign(res)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
