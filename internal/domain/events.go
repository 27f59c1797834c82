package domain

// Topic names one slice of economy state that can be invalidated.
// A refresh signal on a topic tells every subscriber to re-fetch it from the
// authority; delivering it more than once is harmless.
type Topic string

const (
	TopicProfile    Topic = "economy.profile"
	TopicInventory  Topic = "economy.inventory"
	TopicIcons      Topic = "economy.icons"
	TopicLedger     Topic = "economy.ledger"
	TopicWishlist   Topic = "economy.wishlist"
	TopicAttendance Topic = "economy.attendance"
)

// AllTopics is used when the authority reports a change without saying what changed
var AllTopics = []Topic{
	TopicProfile,
	TopicInventory,
	TopicIcons,
	TopicLedger,
	TopicWishlist,
	TopicAttendance,
}

// Server-sent event types pushed by the authority
const (
	// EventTypeEconomyChanged carries a ChangedPayload naming the touched topics
	EventTypeEconomyChanged = "economy.changed"

	// EventTypePointAwarded is sent when the authority credits points outside a client call
	EventTypePointAwarded = "point.awarded"

	// EventTypeAttendanceChecked is sent after the daily check-in is recorded
	EventTypeAttendanceChecked = "attendance.checked"
)

// ChangedPayload is the payload of economy.changed events
type ChangedPayload struct {
	Topics []Topic `json:"topics,omitempty"`
}
