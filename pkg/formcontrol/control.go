// Package formcontrol provides an in-memory form value cell with touched and
// dirty tracking and synchronous change listeners.
package formcontrol

import "sync"

// Control holds one string value owned by a form. Listeners run on the
// goroutine that changed the value, after the internal lock is released, so
// a listener may write the control again.
type Control struct {
	mu        sync.RWMutex
	value     string
	touched   bool
	dirty     bool
	listeners map[int]func(string)
	nextID    int
}

// New creates a control holding value.
func New(value string) *Control {
	return &Control{
		value:     value,
		listeners: make(map[int]func(string)),
	}
}

// Value returns the current value.
func (c *Control) Value() string {
	if c == nil {
		return ""
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// SetValue stores value and notifies every listener, even when the value did
// not change.
func (c *Control) SetValue(value string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.value = value
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(value)
	}
}

// OnChange registers fn and returns a func that removes it.
func (c *Control) OnChange(fn func(string)) func() {
	if c == nil || fn == nil {
		return func() {}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.listeners == nil {
		c.listeners = make(map[int]func(string))
	}
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

// MarkAsTouched flags the control as visited.
func (c *Control) MarkAsTouched() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.touched = true
	c.mu.Unlock()
}

// MarkAsDirty flags the control as edited.
func (c *Control) MarkAsDirty() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.dirty = true
	c.mu.Unlock()
}

// Touched reports whether MarkAsTouched was called since the last Reset.
func (c *Control) Touched() bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.touched
}

// Dirty reports whether MarkAsDirty was called since the last Reset.
func (c *Control) Dirty() bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dirty
}

// Reset clears the touched and dirty flags and sets value.
func (c *Control) Reset(value string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.touched = false
	c.dirty = false
	c.mu.Unlock()
	c.SetValue(value)
}

// snapshotListeners returns listeners in registration order; c.mu is held.
func (c *Control) snapshotListeners() []func(string) {
	if len(c.listeners) == 0 {
		return nil
	}
	out := make([]func(string), 0, len(c.listeners))
	for id := 0; id < c.nextID; id++ {
		if fn, ok := c.listeners[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}
