package persist

import "fmt"

// Source says where a loaded layout came from.
type Source int

const (
	// SourceDefault means nothing was stored under the key.
	SourceDefault Source = iota
	// SourceStored means the stored record was decoded, possibly with
	// default-filled fields.
	SourceStored
	// SourceRecovered means the stored payload or the store itself was
	// unusable and the default layout was substituted.
	SourceRecovered
)

func (s Source) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceStored:
		return "stored"
	case SourceRecovered:
		return "recovered"
	}
	return fmt.Sprintf("Source(%d)", int(s))
}

// LoadReport describes what Load had to repair.
type LoadReport struct {
	Source Source
	// Filled lists the fields that were given a default value.
	Filled []string
	// Dropped counts items that could not be restored.
	Dropped int
	// Warnings are human-readable notes on every repair.
	Warnings []string
	// Err is the decode or store error behind SourceRecovered.
	Err error
}

// Clean reports whether the layout loaded without any repair.
func (r LoadReport) Clean() bool {
	return r.Err == nil && len(r.Filled) == 0 && r.Dropped == 0 && len(r.Warnings) == 0
}

func (r *LoadReport) fill(field string) {
	r.Filled = append(r.Filled, field)
}

func (r *LoadReport) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *LoadReport) drop(format string, args ...any) {
	r.Dropped++
	r.warn("dropped "+format, args...)
}
