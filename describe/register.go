package describe

import (
	"sync"

	"github.com/teranos/tsbridge/convert"
)

var (
	regMu      sync.Mutex
	registered []*convert.Descriptor
)

// Register appends descriptors to the process-wide list, typically from
// package init functions. The list is append-only; Registered returns
// entries in registration order, which fixes declaration order in the
// generated output.
func Register(descs ...*convert.Descriptor) {
	regMu.Lock()
	defer regMu.Unlock()
	registered = append(registered, descs...)
}

// Registered returns a snapshot of the registration list in order.
func Registered() []*convert.Descriptor {
	regMu.Lock()
	defer regMu.Unlock()
	out := make([]*convert.Descriptor, len(registered))
	copy(out, registered)
	return out
}
