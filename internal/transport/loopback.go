// Package transport provides an in-process stand-in for the session
// layer's IQ routing. The real wire transport lives outside this module;
// Loopback serves the development daemon and the tests with faithful
// private-storage semantics (get returns the stored document, set replaces
// it).
package transport

import (
	"encoding/xml"
	"fmt"
	"sync"

	"github.com/parley-im/parley/internal/stanza"
)

// Loopback is an in-memory private-storage service implementing the
// bookmarks.IQRouter interface. Handlers are one-shot and keyed by
// correlation id; registering twice under one id replaces the first
// handler.
type Loopback struct {
	mu       sync.Mutex
	handlers map[string]func(raw []byte)
	document *stanza.Storage
}

// NewLoopback creates an empty loopback service.
func NewLoopback() *Loopback {
	return &Loopback{
		handlers: make(map[string]func(raw []byte)),
	}
}

// HandleResult registers a one-shot handler for result stanzas with id.
func (l *Loopback) HandleResult(id string, fn func(raw []byte)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handlers[id] = fn
}

// SendIQ accepts an outbound stanza. A get is answered synchronously with
// the stored document; a set replaces the stored document and produces no
// response.
func (l *Loopback) SendIQ(raw []byte) error {
	var iq stanza.IQ
	if err := xml.Unmarshal(raw, &iq); err != nil {
		return fmt.Errorf("loopback: malformed stanza: %w", err)
	}

	switch iq.Type {
	case stanza.TypeGet:
		return l.respond(iq.ID)
	case stanza.TypeSet:
		if iq.Query != nil && iq.Query.Storage != nil {
			l.mu.Lock()
			l.document = iq.Query.Storage
			l.mu.Unlock()
		}
		return nil
	default:
		return fmt.Errorf("loopback: unsupported iq type %q", iq.Type)
	}
}

// SetDocument installs a storage document, as if another client had pushed
// it. Used to seed test and development scenarios.
func (l *Loopback) SetDocument(doc *stanza.Storage) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.document = doc
}

// Document returns the currently stored storage document, or nil.
func (l *Loopback) Document() *stanza.Storage {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.document
}

func (l *Loopback) respond(id string) error {
	l.mu.Lock()
	doc := l.document
	fn := l.handlers[id]
	delete(l.handlers, id)
	l.mu.Unlock()

	if fn == nil {
		return nil
	}
	if doc == nil {
		doc = &stanza.Storage{}
	}

	raw, err := xml.Marshal(&stanza.IQ{
		ID:    id,
		Type:  stanza.TypeResult,
		Query: &stanza.Query{Storage: doc},
	})
	if err != nil {
		return fmt.Errorf("loopback: failed to encode result: %w", err)
	}

	// Delivered outside the lock; the handler is free to send follow-up
	// stanzas through the loopback.
	fn(raw)
	return nil
}
