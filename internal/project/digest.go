package project

import "crypto/sha256"

// Digest is a content fingerprint, grounded on the teacher's
// project.Digest (internal/project/hash.go): a plain SHA-256 sum used
// as a cache key rather than a full-blown hash-tree type.
type Digest [32]byte

// HashModule fingerprints a fixture module by its project name and
// module name, giving the disk cache a stable key
// per (project, module) pair without needing file content to hash —
// this project's "sources" are Go-built fixtures, not files on disk
// (see internal/fixture's package doc for why).
func HashModule(projectName, moduleName string) Digest {
	h := sha256.New()
	h.Write([]byte(projectName))
	h.Write([]byte{0})
	h.Write([]byte(moduleName))
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
