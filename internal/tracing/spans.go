package tracing

// Span attribute keys.
const (
	AttrStoreBackend = "store.backend"
	AttrTag          = "search.tag"
	AttrQueryLength  = "search.query_length"
	AttrSearchCount  = "search.count"
)

// Span names for store operations.
const (
	SpanStoreLoad   = "store.load"
	SpanStorePut    = "store.put"
	SpanStoreRemove = "store.remove"
)
