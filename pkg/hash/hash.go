package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// IteratedSHA256 applies SHA256 iteratively n times to produce a derived hash.
func IteratedSHA256(input string, iterations int) string {
	data := []byte(input)
	for range iterations {
		h := sha256.Sum256(data)
		data = h[:]
	}
	return hex.EncodeToString(data)
}

// UserHashIterations is the iteration count for user id hashing. API-key
// records are stored against this hash so raw user ids never reach the
// database.
const UserHashIterations = 5000

// HashUserID derives the storage key for a user's API-key record.
func HashUserID(userID string) string {
	return IteratedSHA256(userID, UserHashIterations)
}

// ShortHash returns the first n characters of SHA256(input). Used for
// hashed IPs in request logs.
func ShortHash(input string, n int) string {
	full := SHA256Hex(input)
	if n > len(full) {
		return full
	}
	return full[:n]
}
