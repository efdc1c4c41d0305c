package hashutil

import (
	"encoding/hex"

	"lukechampine.com/blake3"
)

// fingerprintLen is the number of hex characters kept by Fingerprint.
const fingerprintLen = 12

// Fingerprint returns a short BLAKE3 prefix identifying data, suitable for
// telling two cache snapshots apart in logs.
func Fingerprint(data []byte) string {
	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:])[:fingerprintLen]
}
