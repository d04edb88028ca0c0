package shared

// NotificationListener receives notifications synchronously, in the caller's
// execution context
type NotificationListener interface {
	Notify(n Notification)
}

// ListenerFunc adapts a plain function to NotificationListener
type ListenerFunc func(n Notification)

// Notify calls f(n)
func (f ListenerFunc) Notify(n Notification) {
	f(n)
}

// Subscription identifies a registered listener
type Subscription uint64

// NotificationPublisher broadcasts notifications to every listener
type NotificationPublisher interface {
	Publish(n Notification)
}

// NotificationSubscriber manages listener registration
type NotificationSubscriber interface {
	// Subscribe registers a listener and returns a handle for Unsubscribe
	Subscribe(listener NotificationListener) Subscription
	// Unsubscribe removes a listener; unknown handles are ignored
	Unsubscribe(sub Subscription)
}

// NotificationBus combines publisher and subscriber capabilities
type NotificationBus interface {
	NotificationPublisher
	NotificationSubscriber
	// Close detaches every listener
	Close()
}
