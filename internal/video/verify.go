package video

import (
	"crypto/subtle"
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"
)

// Verify reports whether signature is a valid, unexpired self-hosted grant
// for rawURL. Expired grants, a missing secret and malformed signatures all
// yield false.
func (s *Signer) Verify(rawURL, signature string, expiresAt int64) bool {
	if s.now().Unix() > expiresAt {
		return false
	}
	if s.cfg.URLSigningSecret == "" {
		return false
	}

	// Compared as lowercase hex text so that case variants of a valid
	// signature are rejected.
	expected := hex.EncodeToString(computeSignature(s.cfg.URLSigningSecret, rawURL, expiresAt))
	if len(signature) != len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(signature), []byte(expected)) == 1
}

// SplitSignedURL reverses the self-hosted signed URL shape
// "{raw}{?|&}sig={hex}&exp={seconds}" into its parts. ok is false when
// signed does not end with a sig/exp pair.
func SplitSignedURL(signed string) (rawURL, sig string, exp int64, ok bool) {
	i := strings.LastIndex(signed, "sig=")
	if i < 1 {
		return "", "", 0, false
	}
	if c := signed[i-1]; c != '?' && c != '&' {
		return "", "", 0, false
	}

	q, err := url.ParseQuery(signed[i:])
	if err != nil || len(q) != 2 {
		return "", "", 0, false
	}
	sig = q.Get("sig")
	exp, err = strconv.ParseInt(q.Get("exp"), 10, 64)
	if sig == "" || err != nil {
		return "", "", 0, false
	}
	return signed[:i-1], sig, exp, true
}
