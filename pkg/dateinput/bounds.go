package dateinput

import (
	"context"
	"sync"
)

// BoundKind tags the shape a BoundSource was built from.
type BoundKind int

const (
	BoundNone BoundKind = iota
	BoundLiteral
	BoundLinked
	BoundLive
)

func (k BoundKind) String() string {
	switch k {
	case BoundLiteral:
		return "literal"
	case BoundLinked:
		return "linked"
	case BoundLive:
		return "live"
	default:
		return "none"
	}
}

// Subscriber is a live value source such as Feed.
type Subscriber interface {
	Subscribe(ctx context.Context) <-chan string
}

// BoundSource describes where a min or max bound comes from. The zero value
// means no bound. It is resolved once when the widget is created; validation
// only ever sees the resolved string.
type BoundSource struct {
	kind      BoundKind
	literal   string
	field     ValueReader
	subscribe func(ctx context.Context) <-chan string
}

// Literal uses value as the bound. An empty value means no bound.
func Literal(value string) BoundSource {
	if value == "" {
		return BoundSource{}
	}
	return BoundSource{kind: BoundLiteral, literal: value}
}

// Linked reads field once when the widget is created. Later changes to the
// field are not observed.
func Linked(field ValueReader) BoundSource {
	if field == nil {
		return BoundSource{}
	}
	return BoundSource{kind: BoundLinked, field: field}
}

// Stream overwrites the bound with every value received on ch until the
// widget is destroyed or ch is closed.
func Stream(ch <-chan string) BoundSource {
	if ch == nil {
		return BoundSource{}
	}
	return BoundSource{
		kind:      BoundLive,
		subscribe: func(context.Context) <-chan string { return ch },
	}
}

// Subscribed subscribes to src with the widget lifetime context. A value the
// source replays during Subscribe, as Feed does, is applied before New
// returns.
func Subscribed(src Subscriber) BoundSource {
	if src == nil {
		return BoundSource{}
	}
	return BoundSource{kind: BoundLive, subscribe: src.Subscribe}
}

// Kind reports the source shape.
func (b BoundSource) Kind() BoundKind {
	return b.kind
}

// IsZero reports whether no bound was configured.
func (b BoundSource) IsZero() bool {
	return b.kind == BoundNone
}

// initial returns the value known at construction time.
func (b BoundSource) initial() string {
	switch b.kind {
	case BoundLiteral:
		return b.literal
	case BoundLinked:
		return b.field.Value()
	default:
		return ""
	}
}

// bound holds a resolved bound value. Live sources write it from their own
// goroutine, so access is locked.
type bound struct {
	mu    sync.RWMutex
	value string
}

func (b *bound) get() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.value
}

func (b *bound) set(value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.value = value
}
