//go:build !linux

package rtrand

import (
	"crypto/rand"
)

// ReadEntropy fills p with bytes from the operating system's secure random source.
// Failures are reported as *SourceError.
func ReadEntropy(p []byte) error {
	if _, err := rand.Read(p); err != nil {
		return &SourceError{Kind: KindUnavailable, Msg: "crypto/rand", Cause: err}
	}
	return nil
}
