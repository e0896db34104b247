package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// MenuEvent describes something that happened to a circle's menu images
type MenuEvent struct {
	EventType    EventType              `json:"event_type"`
	Timestamp    time.Time              `json:"timestamp"`
	CircleID     string                 `json:"circle_id,omitempty"`
	ImageURL     string                 `json:"image_url,omitempty"`
	ImageCount   int                    `json:"image_count"`
	Duration     time.Duration          `json:"duration"`
	Success      bool                   `json:"success"`
	ErrorMessage string                 `json:"error_message,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

// EventType represents the type of menu event
type EventType string

const (
	// SetSaved when a validated set is persisted
	SetSaved EventType = "set_saved"
	// SetRejected when a submitted set fails validation
	SetRejected EventType = "set_rejected"
	// SetRepaired when stored order values are renumbered
	SetRepaired EventType = "set_repaired"
	// SetCleared when a circle's whole set is deleted
	SetCleared EventType = "set_cleared"
	// ImageAdded when one image is appended
	ImageAdded EventType = "image_added"
	// ImageRemoved when one image is deleted
	ImageRemoved EventType = "image_removed"
	// ImageMoved when one image changes position
	ImageMoved EventType = "image_moved"
	// ImageProbed when a remote image is inspected
	ImageProbed EventType = "image_probed"
	// ProbeFailed when a remote image cannot be inspected
	ProbeFailed EventType = "probe_failed"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event MenuEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers.
// Subscribe returns a function that removes the observer again.
type Subject interface {
	Subscribe(observer Observer) (unsubscribe func())
	NotifyObservers(ctx context.Context, event MenuEvent)
	Wait()
}

// LoggingObserver logs menu events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent handles menu events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event MenuEvent) {
	fields := logrus.Fields{
		"event_type":  event.EventType,
		"circle_id":   event.CircleID,
		"image_count": event.ImageCount,
		"duration":    event.Duration,
		"success":     event.Success,
	}

	if event.ImageURL != "" {
		fields["image_url"] = event.ImageURL
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}
	for k, v := range event.Metadata {
		if _, taken := fields[k]; taken {
			continue
		}
		fields[k] = v
	}

	entry := o.logger.WithFields(fields)
	switch event.EventType {
	case SetSaved:
		entry.Info("Menu images saved")
	case SetRejected:
		entry.Warn("Menu images rejected")
	case SetRepaired:
		entry.Info("Menu image order repaired")
	case SetCleared:
		entry.Info("Menu images cleared")
	case ImageAdded, ImageRemoved, ImageMoved:
		entry.Info("Menu image updated")
	case ImageProbed:
		entry.Debug("Remote image probed")
	case ProbeFailed:
		entry.Error("Remote image probe failed")
	default:
		entry.Info("Menu event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver collects counters from menu events
type MetricsObserver struct {
	mu            sync.RWMutex
	counts        map[EventType]int64
	totalDuration time.Duration
	writes        int64
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{counts: make(map[EventType]int64)}
}

// OnEvent handles menu events by collecting metrics
func (o *MetricsObserver) OnEvent(ctx context.Context, event MenuEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.counts[event.EventType]++
	switch event.EventType {
	case SetSaved, SetRepaired, SetCleared, ImageAdded, ImageRemoved, ImageMoved:
		o.writes++
		o.totalDuration += event.Duration
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns current metrics
func (o *MetricsObserver) GetMetrics() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	avgWriteTime := time.Duration(0)
	if o.writes > 0 {
		avgWriteTime = o.totalDuration / time.Duration(o.writes)
	}

	metrics := map[string]interface{}{
		"total_writes":      o.writes,
		"avg_write_time_ms": avgWriteTime.Milliseconds(),
	}
	for _, t := range []EventType{SetSaved, SetRejected, SetRepaired, SetCleared, ImageAdded, ImageRemoved, ImageMoved, ImageProbed, ProbeFailed} {
		metrics[string(t)] = o.counts[t]
	}
	return metrics
}

// Count returns how many events of type t were seen
func (o *MetricsObserver) Count(t EventType) int64 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.counts[t]
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
	inflight  sync.WaitGroup
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{
		observers: make([]Observer, 0),
	}
}

// Subscribe adds an observer and returns its unsubscribe function
func (p *EventPublisher) Subscribe(observer Observer) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)

	var once sync.Once
	return func() {
		once.Do(func() { p.unsubscribe(observer) })
	}
}

func (p *EventPublisher) unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs == observer {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers notifies all observers of an event
func (p *EventPublisher) NotifyObservers(ctx context.Context, event MenuEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	// Notify observers concurrently
	for _, observer := range observers {
		p.inflight.Add(1)
		go func(obs Observer) {
			defer p.inflight.Done()
			defer func() {
				if r := recover(); r != nil {
					logrus.WithField("observer", obs.GetObserverName()).
						WithField("panic", r).
						Error("Observer panicked while handling event")
				}
			}()
			obs.OnEvent(ctx, event)
		}(observer)
	}
}

// Wait blocks until every notification sent so far has been handled
func (p *EventPublisher) Wait() {
	p.inflight.Wait()
}
