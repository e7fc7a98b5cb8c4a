package m_metadata_key

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the metadata_keys table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation registering a key. It fails if the key exists.
func (m *Model) InsertMut(key string) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{Key, CreatedAt},
		[]interface{}{key, spanner.CommitTimestamp},
	)
}
