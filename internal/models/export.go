package models

// ExportCandidate is one entry of the export worklist: a function that
// carried the export marker, snapshotted after marker removal and before
// validation. The signature is an independent copy.
type ExportCandidate struct {
	TypePath  string
	Signature *Signature
	Line      int
}

// ExportSet is the final export descriptor for one class: the accepted,
// normalized signatures in declaration order. It is the sole input the
// emitter needs besides the cleaned construct itself.
type ExportSet struct {
	TypePath string
	Methods  []*Signature
}
