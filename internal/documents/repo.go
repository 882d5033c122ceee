package documents

import "context"

// Repo persists document metadata.
type Repo interface {
	// Upsert inserts the document, replacing an existing row with the
	// same (user, file name) pair.
	Upsert(ctx context.Context, d Document) (Document, error)
	GetByID(ctx context.Context, id string) (Document, error)
	GetByUserAndFileName(ctx context.Context, userID, fileName string) (Document, error)
	ListByUser(ctx context.Context, userID string) ([]Document, error)
	Delete(ctx context.Context, id string) error
}
