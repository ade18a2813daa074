package ports

// Host is the UI surface that owns the notification panel. The synchronizer
// calls back into it for confirmation prompts, blocking notices and
// navigation.
type Host interface {
	// Confirm blocks until the user accepts or declines prompt.
	Confirm(prompt string) bool
	// Alert shows a blocking error notice.
	Alert(message string)
	// Navigate moves the UI to link.
	Navigate(link string)
	// Close dismisses the notification panel.
	Close()
}

// Confirmer is the subset of Host needed by destructive admin actions.
type Confirmer interface {
	Confirm(prompt string) bool
}
