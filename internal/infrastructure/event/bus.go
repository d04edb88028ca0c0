package event

import (
	"sync/atomic"

	"github.com/erp/skucatalog/internal/domain/shared"
	"go.uber.org/zap"
)

// SyncNotificationBus delivers notifications to listeners synchronously, in
// the publisher's goroutine. There is no queue and no acknowledgement.
type SyncNotificationBus struct {
	registry *ListenerRegistry
	logger   *zap.Logger
	closed   atomic.Bool
}

// NewSyncNotificationBus creates a new synchronous notification bus
func NewSyncNotificationBus(logger *zap.Logger) *SyncNotificationBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncNotificationBus{
		registry: NewListenerRegistry(),
		logger:   logger,
	}
}

// Publish delivers the notification to every matching listener.
// A panicking listener is logged and skipped; the rest still receive it.
func (b *SyncNotificationBus) Publish(n shared.Notification) {
	if b.closed.Load() {
		return
	}
	for _, listener := range b.registry.GetListeners(n.Severity) {
		b.dispatch(listener, n)
	}
}

// Subscribe registers a listener for every notification
func (b *SyncNotificationBus) Subscribe(listener shared.NotificationListener) shared.Subscription {
	return b.SubscribeSeverity(listener)
}

// SubscribeSeverity registers a listener for the given severities only
func (b *SyncNotificationBus) SubscribeSeverity(listener shared.NotificationListener, severities ...shared.Severity) shared.Subscription {
	sub := b.registry.Register(listener, severities...)
	b.logger.Debug("listener subscribed",
		zap.Uint64("subscription", uint64(sub)),
		zap.Int("severities", len(severities)),
	)
	return sub
}

// Unsubscribe removes a listener; unknown handles are ignored
func (b *SyncNotificationBus) Unsubscribe(sub shared.Subscription) {
	if b.registry.Unregister(sub) {
		b.logger.Debug("listener unsubscribed", zap.Uint64("subscription", uint64(sub)))
	}
}

// ListenerCount returns the number of active subscriptions
func (b *SyncNotificationBus) ListenerCount() int {
	return b.registry.Len()
}

// Close detaches every listener; later publishes are dropped
func (b *SyncNotificationBus) Close() {
	if b.closed.Swap(true) {
		return
	}
	b.registry.Clear()
	b.logger.Info("notification bus closed")
}

// dispatch safely delivers a notification to one listener
func (b *SyncNotificationBus) dispatch(listener shared.NotificationListener, n shared.Notification) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("listener panicked",
				zap.String("operation", n.Operation),
				zap.String("severity", string(n.Severity)),
				zap.Any("panic", r),
			)
		}
	}()

	listener.Notify(n)
}

// Ensure SyncNotificationBus implements NotificationBus
var _ shared.NotificationBus = (*SyncNotificationBus)(nil)
