package notify

import "context"

// Variant is the toast styling hint the host UI understands.
type Variant string

const (
	VariantSuccess     Variant = "success"
	VariantDestructive Variant = "destructive"
)

// Toast is a user-visible notification. Every mutation failure in the
// core is reported through a toast rather than thrown silently.
type Toast struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Variant     Variant `json:"variant"`
}

// Sink delivers notifications and UI events to the host application.
// Delivery is best effort; implementations log failures instead of
// propagating them into the mutation path.
type Sink interface {
	// Toast shows a notification in the project's UI session.
	Toast(ctx context.Context, projectID string, toast Toast)
	// SwitchTab asks the host UI to switch to the named semantic tab.
	// Used by recommendation "go fix this" actions.
	SwitchTab(ctx context.Context, projectID, tab string)
}

// TabEvent is the payload of a SwitchTab signal.
type TabEvent struct {
	Event string `json:"event"`
	Tab   string `json:"tab"`
}

// SwitchTabEvent is the event name the host UI listens for.
const SwitchTabEvent = "switch-semantic-tab"
