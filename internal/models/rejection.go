package models

import "fmt"

// RejectionCategory names the generic-parameter category that made an
// exported function unacceptable.
type RejectionCategory int

const (
	TypeParamCategory RejectionCategory = iota
	LifetimeCategory
	ConstParamCategory
)

// String returns the category name as it appears in diagnostics.
func (c RejectionCategory) String() string {
	switch c {
	case TypeParamCategory:
		return "type parameters"
	case LifetimeCategory:
		return "lifetime parameters"
	case ConstParamCategory:
		return "const parameters"
	default:
		return "generic parameters"
	}
}

// Rejection is a per-function diagnostic: the function was marked for
// export but its signature is structurally incompatible with the
// registration mechanism. Rejections are values returned by the pipeline,
// never printed by it; only the caller decides how to report them.
// A rejection does not fail the transformation - the function stays in
// the reproduced construct, unexported.
type Rejection struct {
	Class    string
	Function string
	Category RejectionCategory
	File     string
	Line     int
}

// Message returns the diagnostic text.
func (r Rejection) Message() string {
	return fmt.Sprintf("%s not allowed in exported functions", r.Category)
}

func (r Rejection) String() string {
	if r.File != "" {
		return fmt.Sprintf("%s:%d: %s::%s: %s", r.File, r.Line, r.Class, r.Function, r.Message())
	}
	return fmt.Sprintf("%s::%s: %s", r.Class, r.Function, r.Message())
}
