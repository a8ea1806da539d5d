package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

// TestContentStatusValid verifies that unknown statuses are rejected.
func TestContentStatusValid(t *testing.T) {
	tests := []struct {
		status ContentStatus
		want   bool
	}{
		{ContentStatusDraft, true},
		{ContentStatusPublished, true},
		{ContentStatus("Archived"), false},
		{ContentStatus("draft"), false},
		{ContentStatus(""), false},
	}

	for _, tt := range tests {
		if got := tt.status.Valid(); got != tt.want {
			t.Errorf("ContentStatus(%q).Valid() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestContentIsOwnedBy(t *testing.T) {
	owner := uuid.New()
	c := &Content{AuthorID: owner}

	if !c.IsOwnedBy(owner) {
		t.Error("expected owner to own content")
	}
	if c.IsOwnedBy(uuid.New()) {
		t.Error("expected stranger not to own content")
	}
}

// TestContentMarshalMarkup checks the markup shape carries gjsHtml/gjsCss
// and a joined author object.
func TestContentMarshalMarkup(t *testing.T) {
	author := &AuthorRef{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	c := Content{
		ID:       uuid.New(),
		Title:    "Hello",
		Status:   ContentStatusDraft,
		AuthorID: author.ID,
		Author:   author,
		Payload:  MarkupPayload("<p>Hi</p>", "p{color:red}"),
		Body:     "Hi",
	}

	b, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["gjsHtml"] != "<p>Hi</p>" {
		t.Errorf("gjsHtml: got %v", m["gjsHtml"])
	}
	if m["gjsCss"] != "p{color:red}" {
		t.Errorf("gjsCss: got %v", m["gjsCss"])
	}
	if _, ok := m["blocks"]; ok {
		t.Error("markup payload must not carry blocks")
	}
	a, ok := m["author"].(map[string]any)
	if !ok {
		t.Fatalf("author: got %T, want object", m["author"])
	}
	if a["username"] != "alice" {
		t.Errorf("author.username: got %v", a["username"])
	}
}

// TestContentMarshalBlocks checks an empty block list is still emitted as [].
func TestContentMarshalBlocks(t *testing.T) {
	c := Content{ID: uuid.New(), Title: "Legacy", Status: ContentStatusDraft, Payload: BlocksPayload(nil)}

	b, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(m["blocks"]) != "[]" {
		t.Errorf("blocks: got %s, want []", m["blocks"])
	}
	if _, ok := m["gjsHtml"]; ok {
		t.Error("block payload must not carry gjsHtml")
	}
	if string(m["author"]) != "null" {
		t.Errorf("author: got %s, want null", m["author"])
	}
}

func TestContentJSONRoundTrip(t *testing.T) {
	hero, err := NewBlock(BlockHero, HeroContent{Title: "Welcome"})
	if err != nil {
		t.Fatalf("NewBlock: %v", err)
	}
	orig := Content{
		ID:       uuid.New(),
		Title:    "Blocks",
		Status:   ContentStatusPublished,
		AuthorID: uuid.New(),
		Payload:  BlocksPayload([]Block{hero}),
	}

	b, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Content
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.Payload.Kind != PayloadBlocks {
		t.Fatalf("kind: got %q, want %q", got.Payload.Kind, PayloadBlocks)
	}
	if len(got.Payload.Blocks) != 1 || got.Payload.Blocks[0].Type != BlockHero {
		t.Errorf("blocks: got %+v", got.Payload.Blocks)
	}
	if got.Author != nil {
		t.Error("unresolved author should stay nil")
	}
	if got.AuthorID != uuid.Nil {
		t.Errorf("author id: got %s, want nil uuid", got.AuthorID)
	}
}

// TestContentMarshalDeletedAuthor checks a record whose author account is
// gone serializes author as null, not as the dangling id.
func TestContentMarshalDeletedAuthor(t *testing.T) {
	c := Content{ID: uuid.New(), Title: "Orphan", AuthorID: uuid.New(), Payload: MarkupPayload("", "")}

	b, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(m["author"]) != "null" {
		t.Errorf("author: got %s, want null", m["author"])
	}
}

func TestContentUnmarshalBareAuthorID(t *testing.T) {
	id := uuid.New()
	var c Content
	if err := json.Unmarshal([]byte(`{"title":"x","author":"`+id.String()+`"}`), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.AuthorID != id || c.Author != nil {
		t.Errorf("got AuthorID %s Author %v, want %s and nil", c.AuthorID, c.Author, id)
	}
}
