package history

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewPublishRecordRepository builds the generic bun repository for publish
// records. Slug is the secondary identifier so CLI users can address runs by
// a readable handle instead of a UUID.
func NewPublishRecordRepository(db *bun.DB) repository.Repository[*PublishRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*PublishRecord]{
		NewRecord: func() *PublishRecord { return &PublishRecord{} },
		GetID: func(r *PublishRecord) uuid.UUID {
			return r.ID
		},
		SetID: func(r *PublishRecord, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(r *PublishRecord) string {
			return r.Slug
		},
	})
}
