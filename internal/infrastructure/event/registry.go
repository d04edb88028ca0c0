package event

import (
	"sync"

	"github.com/erp/skucatalog/internal/domain/shared"
)

type registration struct {
	sub      shared.Subscription
	listener shared.NotificationListener
}

// ListenerRegistry manages notification listener registrations.
// Listeners are returned in subscription order.
type ListenerRegistry struct {
	mu         sync.RWMutex
	next       shared.Subscription
	bySeverity map[shared.Severity][]registration // severity -> listeners
	wildcard   []registration                      // listeners for all severities
}

// NewListenerRegistry creates a new listener registry
func NewListenerRegistry() *ListenerRegistry {
	return &ListenerRegistry{
		bySeverity: make(map[shared.Severity][]registration),
		wildcard:   make([]registration, 0),
	}
}

// Register adds a listener for specific severities.
// If no severities are provided, the listener receives every notification.
func (r *ListenerRegistry) Register(listener shared.NotificationListener, severities ...shared.Severity) shared.Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	reg := registration{sub: r.next, listener: listener}

	if len(severities) == 0 {
		r.wildcard = append(r.wildcard, reg)
		return reg.sub
	}

	for _, severity := range severities {
		r.bySeverity[severity] = append(r.bySeverity[severity], reg)
	}
	return reg.sub
}

// Unregister removes a subscription everywhere it appears
func (r *ListenerRegistry) Unregister(sub shared.Subscription) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	found := false
	r.wildcard, found = removeRegistration(r.wildcard, sub)

	for severity, regs := range r.bySeverity {
		var removed bool
		r.bySeverity[severity], removed = removeRegistration(regs, sub)
		found = found || removed
		if len(r.bySeverity[severity]) == 0 {
			delete(r.bySeverity, severity)
		}
	}
	return found
}

// GetListeners returns the listeners for a severity in subscription order,
// merging severity-specific and wildcard listeners
func (r *ListenerRegistry) GetListeners(severity shared.Severity) []shared.NotificationListener {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specific := r.bySeverity[severity]
	merged := make([]shared.NotificationListener, 0, len(specific)+len(r.wildcard))
	i, j := 0, 0
	for i < len(specific) || j < len(r.wildcard) {
		if j >= len(r.wildcard) || (i < len(specific) && specific[i].sub < r.wildcard[j].sub) {
			merged = append(merged, specific[i].listener)
			i++
		} else {
			merged = append(merged, r.wildcard[j].listener)
			j++
		}
	}
	return merged
}

// Len returns the number of distinct subscriptions
func (r *ListenerRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[shared.Subscription]bool)
	for _, reg := range r.wildcard {
		seen[reg.sub] = true
	}
	for _, regs := range r.bySeverity {
		for _, reg := range regs {
			seen[reg.sub] = true
		}
	}
	return len(seen)
}

// Clear drops every registration
func (r *ListenerRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bySeverity = make(map[shared.Severity][]registration)
	r.wildcard = make([]registration, 0)
}

// removeRegistration removes a subscription from a slice of registrations
func removeRegistration(regs []registration, sub shared.Subscription) ([]registration, bool) {
	result := make([]registration, 0, len(regs))
	found := false
	for _, reg := range regs {
		if reg.sub == sub {
			found = true
			continue
		}
		result = append(result, reg)
	}
	return result, found
}
