package domain

import "time"

// SyncSuccessMessage is the banner text after a successful metadata sync.
const SyncSuccessMessage = "Metadata sync completed successfully!"

// SyncOutcome records the last metadata sync for the inventory banner.
type SyncOutcome struct {
	Trigger  string
	Started  time.Time
	Finished time.Time
	Message  string
	Err      error
}

// OK reports whether the sync succeeded.
func (o SyncOutcome) OK() bool { return o.Err == nil }

// Banner returns the user-facing status line.
func (o SyncOutcome) Banner() string {
	if o.Err != nil {
		return "Metadata sync failed: " + o.Err.Error()
	}
	return SyncSuccessMessage
}
