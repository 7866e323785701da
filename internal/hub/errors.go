package hub

import "errors"

// Sentinel errors for the sync core. Interactive commands translate these
// into remediation messages; silent variants swallow them entirely.
var (
	// ErrConfigUnavailable means no hub has been bootstrapped on this
	// machine yet. Remediation: `svetlio hub init`.
	ErrConfigUnavailable = errors.New("hub not configured")

	// ErrProjectNotRegistered means the hub exists but the calling project
	// has no entry. Remediation: `svetlio hub init` from the project.
	ErrProjectNotRegistered = errors.New("project not registered with hub")

	// ErrHubNotCloned means config exists but the local clone's git
	// metadata is missing (e.g., manually deleted).
	ErrHubNotCloned = errors.New("hub clone missing")

	// ErrHostingCLIUnavailable means no authenticated gh binary was found;
	// the caller falls back to asking for a manually created repo URL.
	ErrHostingCLIUnavailable = errors.New("gh CLI not available")
)

// SyncResult is the structured outcome of a push or pull. Whatever files
// were copied before a later step failed remain listed in ChangedFiles; the
// engine does not roll back working-tree copies on a downstream git failure.
type SyncResult struct {
	Success      bool
	Message      string
	ChangedFiles []string
	Err          error
}

func failure(err error, message string) *SyncResult {
	return &SyncResult{Message: message, Err: err}
}

func success(message string, changed []string) *SyncResult {
	return &SyncResult{Success: true, Message: message, ChangedFiles: changed}
}
