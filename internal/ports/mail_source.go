package ports

// MailSource is a collaborator that materializes raw emails and hands them
// to the triage core. The core itself performs no I/O; source failures are
// surfaced to the source's own caller, never retried inside the core.
type MailSource interface {
	// Start starts the mail source
	Start() error

	// Stop stops the mail source
	Stop() error
}
