package source

import "fmt"

// FileID identifies a source file within a FileSet.
type FileID uint32

// NoFileID marks the absence of a file.
const NoFileID FileID = 0

// Location is a single point in a source file: a byte offset plus its
// 1-based line and column. Locations are immutable value types.
type Location struct {
	File   FileID
	Offset uint32
	Line   uint32 // 1-based
	Column uint32 // 1-based
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Range is a contiguous byte range in a single file, expressed as a start
// Location plus a byte width. Ranges are immutable after construction.
type Range struct {
	Start Location
	Width uint32
}

// NewRange builds a Range covering [start, start+width).
func NewRange(start Location, width uint32) Range {
	return Range{Start: start, Width: width}
}

// End computes the location just past the range. Its byte offset is exact;
// its line/column are approximate (valid only when the range does not
// itself span a newline) and are intended for diagnostic rendering, not for
// further arithmetic.
func (r Range) End() Location {
	return Location{
		File:   r.Start.File,
		Offset: r.Start.Offset + r.Width,
		Line:   r.Start.Line,
		Column: r.Start.Column + r.Width,
	}
}

// Contains reports whether loc falls in the half-open interval
// [start, start+width).
func (r Range) Contains(loc Location) bool {
	if loc.File != r.Start.File {
		return false
	}
	return loc.Offset >= r.Start.Offset && loc.Offset < r.Start.Offset+r.Width
}

// Cover returns the smallest Range containing both r and other. Both must
// belong to the same file; if not, r is returned unchanged.
func (r Range) Cover(other Range) Range {
	if r.Start.File != other.Start.File {
		return r
	}
	start := r.Start
	end := r.End().Offset
	otherEnd := other.End().Offset
	if other.Start.Offset < start.Offset {
		start = other.Start
	}
	if otherEnd > end {
		end = otherEnd
	}
	if end < start.Offset {
		end = start.Offset
	}
	return Range{Start: start, Width: end - start.Offset}
}

// Empty reports whether the range has zero width.
func (r Range) Empty() bool { return r.Width == 0 }

func (r Range) String() string {
	return fmt.Sprintf("%d:%d:%d+%d", r.Start.File, r.Start.Line, r.Start.Column, r.Width)
}
