// Package relay ships client log events to the backend. Events logged while
// the backend is unreachable wait in a bounded in-memory queue and are
// delivered in order once connectivity returns.
package relay

import (
	"context"
	"sync"
	"time"

	"finmanager/internal/client"
	"finmanager/internal/logger"
)

// DefaultCapacity bounds the pending queue.
const DefaultCapacity = 500

// DefaultWatchInterval is used by Watch when given a non-positive interval.
const DefaultWatchInterval = time.Second

// Sender delivers a single log entry to the backend.
type Sender interface {
	SendLog(ctx context.Context, entry client.LogEntry) error
}

// Options configures a Relay.
type Options struct {
	// Capacity is the maximum number of pending events. When full, the
	// oldest event is dropped.
	Capacity int
	// Online is the initial connectivity state.
	Online    bool
	UserAgent string
	// Local mirrors every event to a local logger when set.
	Local *logger.Logger
}

// Relay is safe for concurrent use.
type Relay struct {
	sender    Sender
	userAgent string
	capacity  int
	local     *logger.Logger
	now       func() time.Time

	mu       sync.Mutex
	online   bool
	queue    []client.LogEntry
	dropped  int
	draining bool
}

// New creates a Relay delivering through sender.
func New(sender Sender, opts Options) *Relay {
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultCapacity
	}
	local := opts.Local
	if local == nil {
		local = logger.Nop()
	}
	return &Relay{
		sender:    sender,
		userAgent: opts.UserAgent,
		capacity:  opts.Capacity,
		local:     local,
		now:       time.Now,
		online:    opts.Online,
	}
}

// Log records an event at level ("info", "warn" or "error"). It returns the
// delivery error when an online send failed and the event was queued.
func (r *Relay) Log(ctx context.Context, level, message string, meta map[string]any) error {
	entry := r.entry(level, message, meta)
	r.mirror(entry)

	r.mu.Lock()
	online := r.online
	if !online {
		r.pushBack(entry)
	}
	r.mu.Unlock()
	if !online {
		return nil
	}

	if err := r.sender.SendLog(ctx, entry); err != nil {
		r.mu.Lock()
		r.pushBack(entry)
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *Relay) Info(ctx context.Context, message string, meta map[string]any) error {
	return r.Log(ctx, "info", message, meta)
}

func (r *Relay) Warn(ctx context.Context, message string, meta map[string]any) error {
	return r.Log(ctx, "warn", message, meta)
}

func (r *Relay) Error(ctx context.Context, message string, meta map[string]any) error {
	return r.Log(ctx, "error", message, meta)
}

// SetOnline updates the connectivity state. Going online drains the queue.
func (r *Relay) SetOnline(ctx context.Context, online bool) error {
	r.mu.Lock()
	wasOnline := r.online
	r.online = online
	r.mu.Unlock()

	if online && !wasOnline {
		_, err := r.Flush(ctx)
		return err
	}
	return nil
}

// Online reports the current connectivity state.
func (r *Relay) Online() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.online
}

// Flush delivers pending events oldest first, one at a time. On failure the
// event goes back to the front of the queue and draining stops. Only one
// flush runs at a time; concurrent calls return immediately.
func (r *Relay) Flush(ctx context.Context) (int, error) {
	r.mu.Lock()
	if r.draining {
		r.mu.Unlock()
		return 0, nil
	}
	r.draining = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.draining = false
		r.mu.Unlock()
	}()

	sent := 0
	for {
		r.mu.Lock()
		if !r.online || len(r.queue) == 0 {
			r.mu.Unlock()
			return sent, nil
		}
		entry := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()

		if err := r.sender.SendLog(ctx, entry); err != nil {
			r.mu.Lock()
			r.pushFront(entry)
			r.mu.Unlock()
			return sent, err
		}
		sent++
	}
}

// Pending returns the number of queued events.
func (r *Relay) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}

// Dropped returns how many events were discarded because the queue was full.
func (r *Relay) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Watch probes connectivity every interval until ctx is done and feeds the
// result into SetOnline. A nil probe error means online. While online, events
// left behind by a failed send are retried on every tick. A non-positive
// interval means DefaultWatchInterval.
func (r *Relay) Watch(ctx context.Context, probe func(context.Context) error, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if probe(ctx) == nil {
			_ = r.SetOnline(ctx, true)
			_, _ = r.Flush(ctx)
		} else {
			_ = r.SetOnline(ctx, false)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (r *Relay) entry(level, message string, meta map[string]any) client.LogEntry {
	m := make(map[string]any, len(meta)+2)
	for k, v := range meta {
		m[k] = v
	}
	if r.userAgent != "" {
		m["userAgent"] = r.userAgent
	}
	m["timestamp"] = r.now().UTC().Format(time.RFC3339)
	return client.LogEntry{Level: level, Message: message, Meta: m}
}

func (r *Relay) mirror(entry client.LogEntry) {
	level, err := logger.ParseLevel(entry.Level)
	if err != nil {
		level = logger.LevelInfo
	}
	r.local.LogMap(level, entry.Message, entry.Meta)
}

// pushBack appends entry, dropping the oldest event when full. Callers hold mu.
func (r *Relay) pushBack(entry client.LogEntry) {
	r.queue = append(r.queue, entry)
	r.trim()
}

// pushFront requeues entry at the head. Callers hold mu.
func (r *Relay) pushFront(entry client.LogEntry) {
	r.queue = append([]client.LogEntry{entry}, r.queue...)
	r.trim()
}

func (r *Relay) trim() {
	if over := len(r.queue) - r.capacity; over > 0 {
		r.queue = r.queue[over:]
		r.dropped += over
	}
}
