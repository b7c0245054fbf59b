//go:build linux

package rtrand

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// ReadEntropy fills p with bytes from the kernel's getrandom(2) pool.
// It blocks until the pool is initialized. Failures are reported as *SourceError.
func ReadEntropy(p []byte) error {
	for len(p) > 0 {
		n, err := unix.Getrandom(p, 0)
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN):
			return &SourceError{Kind: KindNotReady, Msg: "getrandom", Cause: err}
		case err != nil:
			return &SourceError{Kind: KindUnavailable, Msg: "getrandom", Cause: err}
		}
		p = p[n:]
	}
	return nil
}
