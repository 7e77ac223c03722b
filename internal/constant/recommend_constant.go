package constant

const (
	// EmbedGameTopic is the in-process watermill topic feeding the game
	// embedding pipeline.
	EmbedGameTopic = "embed_game"

	// Vector sources reported in recommendation responses.
	VectorSourceHybrid     = "hybrid"
	VectorSourcePreference = "preference"

	// Preference generation statuses.
	StatusOk               = "ok"
	StatusInsufficientData = "insufficient_data"
)
