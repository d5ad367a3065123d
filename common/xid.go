package common

import "fmt"

// Xid is an opaque identifier for an X resource (window or atom). Copy,
// hash and order it by numeric value like any other integer.
type Xid uint32

// String renders the id the way X resource ids are usually printed, as a
// hex number, for log lines.
func (x Xid) String() string {
	return fmt.Sprintf("0x%08x", uint32(x))
}
