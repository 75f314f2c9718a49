package shortener

import "context"

// Repository is the durable code -> URL store.
//
// Insert must enforce code uniqueness atomically and report a taken code as ErrDuplicateCode.
// Both methods report infrastructure faults wrapped in ErrStoreUnavailable.
type Repository interface {
	Insert(ctx context.Context, link *Link) error
	Lookup(ctx context.Context, code Code) (*Link, error)
}
