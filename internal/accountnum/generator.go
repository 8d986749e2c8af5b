// Package accountnum generates opaque 10-digit account numbers. The core
// treats them as unique keys and never inspects the format.
package accountnum

import (
	"fmt"
	"sync/atomic"
	"time"
)

var counter uint64

// Generate returns a 10-digit account number: seven digits derived from the
// current time and a three-digit rolling counter that disambiguates numbers
// generated within the same instant. Unique within a single process, which
// is all the single-actor model requires.
func Generate() string {
	seq := atomic.AddUint64(&counter, 1)
	base := uint64(time.Now().UnixNano()/1e3) % 1e7
	return fmt.Sprintf("%07d%03d", base, seq%1000)
}
