package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
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

// PublishRecordUUID derives the audit-log ID for a publish run. Runs over the
// same source bytes share an ID, so re-publishing an unchanged file upserts
// rather than duplicates.
func PublishRecordUUID(path, checksum string) uuid.UUID {
	return UUID("go-publisher:publish_record:" + strings.TrimSpace(path) + ":" + strings.TrimSpace(checksum))
}
