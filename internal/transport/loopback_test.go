package transport

import (
	"encoding/xml"
	"testing"

	"github.com/parley-im/parley/internal/stanza"
)

func TestLoopbackGetReturnsEmptyDocument(t *testing.T) {
	lb := NewLoopback()

	var got *stanza.IQ
	lb.HandleResult("fetch-1", func(raw []byte) {
		var iq stanza.IQ
		if err := xml.Unmarshal(raw, &iq); err != nil {
			t.Fatalf("failed to decode result: %v", err)
		}
		got = &iq
	})

	raw, err := xml.Marshal(&stanza.IQ{
		ID:    "fetch-1",
		Type:  stanza.TypeGet,
		Query: &stanza.Query{Storage: &stanza.Storage{}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := lb.SendIQ(raw); err != nil {
		t.Fatalf("SendIQ() error = %v", err)
	}

	if got == nil {
		t.Fatal("handler was not invoked")
	}
	if got.Type != stanza.TypeResult || got.ID != "fetch-1" {
		t.Errorf("result = type %q id %q, want result/fetch-1", got.Type, got.ID)
	}
	if got.Query == nil || got.Query.Storage == nil {
		t.Fatal("result should carry an empty storage document")
	}
	if len(got.Query.Storage.Conferences) != 0 {
		t.Errorf("empty service returned %d conferences", len(got.Query.Storage.Conferences))
	}
}

func TestLoopbackSetThenGetRoundTrip(t *testing.T) {
	lb := NewLoopback()

	set, err := xml.Marshal(&stanza.IQ{
		ID:   "push-1",
		Type: stanza.TypeSet,
		Query: &stanza.Query{Storage: &stanza.Storage{
			Conferences: []stanza.Conference{{JID: "room@conf.example", Autojoin: "true"}},
		}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := lb.SendIQ(set); err != nil {
		t.Fatalf("SendIQ(set) error = %v", err)
	}

	doc := lb.Document()
	if doc == nil || len(doc.Conferences) != 1 {
		t.Fatalf("stored document = %+v, want 1 conference", doc)
	}
	if doc.Conferences[0].JID != "room@conf.example" {
		t.Errorf("stored jid = %q, want room@conf.example", doc.Conferences[0].JID)
	}

	var got *stanza.IQ
	lb.HandleResult("fetch-1", func(raw []byte) {
		var iq stanza.IQ
		if err := xml.Unmarshal(raw, &iq); err != nil {
			t.Fatalf("failed to decode result: %v", err)
		}
		got = &iq
	})

	get, err := xml.Marshal(&stanza.IQ{
		ID:    "fetch-1",
		Type:  stanza.TypeGet,
		Query: &stanza.Query{Storage: &stanza.Storage{}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := lb.SendIQ(get); err != nil {
		t.Fatalf("SendIQ(get) error = %v", err)
	}

	if got == nil {
		t.Fatal("handler was not invoked")
	}
	if len(got.Query.Storage.Conferences) != 1 {
		t.Fatalf("fetched %d conferences, want 1", len(got.Query.Storage.Conferences))
	}
}

func TestLoopbackHandlerIsOneShot(t *testing.T) {
	lb := NewLoopback()

	calls := 0
	lb.HandleResult("fetch-1", func([]byte) { calls++ })

	get, err := xml.Marshal(&stanza.IQ{
		ID:    "fetch-1",
		Type:  stanza.TypeGet,
		Query: &stanza.Query{Storage: &stanza.Storage{}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := lb.SendIQ(get); err != nil {
		t.Fatalf("first SendIQ() error = %v", err)
	}
	if err := lb.SendIQ(get); err != nil {
		t.Fatalf("second SendIQ() error = %v", err)
	}

	if calls != 1 {
		t.Errorf("handler invoked %d times, want 1", calls)
	}
}

func TestLoopbackRejectsMalformedStanza(t *testing.T) {
	lb := NewLoopback()

	if err := lb.SendIQ([]byte("<iq")); err == nil {
		t.Error("SendIQ() with malformed stanza should error")
	}
}
