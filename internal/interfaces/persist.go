package interfaces

import "context"

// Persist hands a finished document buffer to an external delivery
// collaborator (local download, outbound mail attachment). The pipeline
// owns no retry semantics for this boundary; MIME types and destinations
// are the collaborator's concern.
type Persist interface {
	Persist(ctx context.Context, filename string, content []byte) error
}

// PersistFunc adapts a plain function to the Persist interface
type PersistFunc func(ctx context.Context, filename string, content []byte) error

func (f PersistFunc) Persist(ctx context.Context, filename string, content []byte) error {
	return f(ctx, filename, content)
}
