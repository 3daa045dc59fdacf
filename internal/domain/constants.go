package domain

const (
	// APITokenHeader carries the per-app API token on every kintone request.
	APITokenHeader = "X-Cybozu-API-Token"

	// UserAgent identifies outbound kintone calls.
	UserAgent = "stocksync/1.0"
)
