package eventbus

// Topic names for lifecycle events. Kept in one place so they can move to
// configuration without touching callers.
const (
	TopicPostEvents = "inkpress.post.events"
	TopicUserEvents = "inkpress.user.events"
)
