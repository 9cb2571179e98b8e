package models

// Outcome reports how a mutating repository call completed. The UI layer is
// told only this much; it is never exposed to which specific store failed.
type Outcome string

const (
	// OutcomeSynced means the change reached both the local and remote store.
	OutcomeSynced Outcome = "synced"

	// OutcomeSavedOffline means the change was applied locally and queued for
	// replay on the next sync cycle.
	OutcomeSavedOffline Outcome = "saved-offline"
)
