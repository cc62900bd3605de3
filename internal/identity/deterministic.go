package identity

import (
	"path/filepath"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from key using go-hashid, falling back to
// a SHA-1 name-based UUID if hashing fails. Blank keys map to uuid.Nil.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// NotebookUUID identifies a notebook by its slash-separated source path so
// repeated conversions of the same file log the same id.
func NotebookUUID(path string) uuid.UUID {
	clean := strings.TrimSpace(path)
	if clean == "" {
		return uuid.Nil
	}
	return UUID("nb2hugo:notebook:" + filepath.ToSlash(filepath.Clean(clean)))
}
