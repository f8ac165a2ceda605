package entity

// ProviderProfile is a single provider with its account and reviews, used by
// the profile and category search endpoints.
type ProviderProfile struct {
	SnapshotEntry
	User    *User    `json:"user"`
	Reviews []Review `json:"reviews"`
}
