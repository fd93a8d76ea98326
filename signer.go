package marvel

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"sync/atomic"
	"time"
)

// signer produces the per-request authorization values of the public API:
// https://developer.marvel.com/documentation/authorization
//
// Every request carries a timestamp in clear text and the MD5 digest of
// ts + privateKey + publicKey. The private key itself never leaves the process.
type signer struct {
	publicKey  string
	privateKey string

	now  func() time.Time
	last atomic.Int64
}

func newSigner(publicKey, privateKey string) *signer {
	return &signer{
		publicKey:  publicKey,
		privateKey: privateKey,
		now:        time.Now,
	}
}

// sign returns the lowercase hex digest for ts.
func (s *signer) sign(ts string) string {
	sum := md5.Sum([]byte(ts + s.privateKey + s.publicKey))
	return hex.EncodeToString(sum[:])
}

// timestamp returns the current time in milliseconds since epoch.
// Values are strictly increasing per signer, so concurrent requests issued
// within the same millisecond still get distinct timestamps.
func (s *signer) timestamp() string {
	now := s.now().UnixMilli()
	for {
		last := s.last.Load()
		next := max(now, last+1)
		if s.last.CompareAndSwap(last, next) {
			return strconv.FormatInt(next, 10)
		}
	}
}

// String implements [fmt.Stringer] without exposing the private key.
func (s *signer) String() string {
	return "signer{publicKey: " + s.publicKey + ", privateKey: [redacted]}"
}

// GoString implements [fmt.GoStringer] without exposing the private key.
func (s *signer) GoString() string {
	return s.String()
}
