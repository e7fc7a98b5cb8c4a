package m_metadata_key

// Field name constants for the metadata_keys table.
const (
	TableName = "metadata_keys"

	Key       = "metadata_key"
	CreatedAt = "created_at"
)
