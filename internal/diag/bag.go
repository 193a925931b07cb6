package diag

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// Bag collects diagnostics produced during a compile. It is bounded so a
// pathological input (e.g. a file of nothing but invalid characters) can't
// grow memory unboundedly.
type Bag struct {
	items []Diagnostic
	limit uint16
}

// NewBag creates a Bag that stops accepting diagnostics past limit entries.
func NewBag(limit int) *Bag {
	lim, err := safecast.Conv[uint16](limit)
	if err != nil {
		panic(fmt.Errorf("diag: bag limit overflow: %w", err))
	}
	return &Bag{limit: lim}
}

// Add appends d, returning false if the bag is already at capacity.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.limit) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Len returns the number of diagnostics currently held.
func (b *Bag) Len() int { return len(b.items) }

// Items returns the bag's diagnostics. The caller must not mutate the
// returned slice.
func (b *Bag) Items() []Diagnostic { return b.items }

// HasErrors reports whether any diagnostic is at severity Error or above.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// Merge appends other's diagnostics, raising the limit if needed to fit
// them. Used when collecting diagnostics across parallel-compiled files
// (spec §5) into one project-level bag.
func (b *Bag) Merge(other *Bag) {
	total, err := safecast.Conv[uint16](len(b.items) + len(other.items))
	if err != nil {
		panic(fmt.Errorf("diag: bag merge overflow: %w", err))
	}
	if total > b.limit {
		b.limit = total
	}
	b.items = append(b.items, other.items...)
}

// Sort orders diagnostics by file, then start offset, then severity
// descending, then code ascending, giving deterministic output across runs.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.Start.File != dj.Primary.Start.File {
			return di.Primary.Start.File < dj.Primary.Start.File
		}
		if di.Primary.Start.Offset != dj.Primary.Start.Offset {
			return di.Primary.Start.Offset < dj.Primary.Start.Offset
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}
