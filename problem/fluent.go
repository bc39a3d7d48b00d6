package problem

// FluentIdx is a stable, dense index into a Problem's fluent vector,
// assigned on insertion. Indices are contiguous [0, NumFluents()).
type FluentIdx int

// Fluent is a ground atomic proposition. Immutable once constructed; the
// Problem owns it and hands out FluentIdx values for addressing.
type Fluent struct {
	index     FluentIdx
	signature string
}

// Index returns the fluent's stable index.
func (f *Fluent) Index() FluentIdx { return f.index }

// Signature returns the fluent's opaque display string.
func (f *Fluent) Signature() string { return f.signature }
