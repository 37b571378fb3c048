package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// CandidateID identifies a resume by content so results stay keyed to the
// right candidate after re-ranking.
func CandidateID(content []byte) string {
	x := sha256.Sum256(content)
	return hex.EncodeToString(x[:])
}
