package db

import (
	"github.com/jackc/pgx/v5"

	"github.com/gyeh/claimgen/internal/model"
)

// DocumentSource implements pgx.CopyFromSource by reading DocumentRows from
// a channel, providing backpressure between batch rendering and the COPY
// writer that registers the generated documents.
type DocumentSource struct {
	ch      <-chan *model.DocumentRow
	current *model.DocumentRow
	err     error
}

// NewDocumentSource creates a CopyFromSource backed by a channel.
func NewDocumentSource(ch <-chan *model.DocumentRow) *DocumentSource {
	return &DocumentSource{ch: ch}
}

// Next advances to the next row. Returns false when the channel is closed.
func (s *DocumentSource) Next() bool {
	row, ok := <-s.ch
	if !ok {
		return false
	}
	s.current = row
	return true
}

// Values returns the current row's values in COPY column order.
func (s *DocumentSource) Values() ([]any, error) {
	return s.current.CopyValues(), nil
}

// Err returns any error encountered during iteration.
func (s *DocumentSource) Err() error {
	return s.err
}

// Compile-time check that DocumentSource satisfies the interface.
var _ pgx.CopyFromSource = (*DocumentSource)(nil)
