package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagecraft/internal/excerpt"
	"pagecraft/internal/models"
)

func seedContent(author models.User, title string, status models.ContentStatus) models.Content {
	return models.Content{
		ID:        uuid.New(),
		Title:     title,
		Status:    status,
		AuthorID:  author.ID,
		Author:    &models.AuthorRef{ID: author.ID, Username: author.Username, Email: author.Email},
		Payload:   models.MarkupPayload("<p>original</p>", "p{}"),
		Body:      "original",
		CreatedAt: time.Now().UTC(),
	}
}

func TestCreateSetsAuthorFromCaller(t *testing.T) {
	caller := newUser("ann", models.RoleUser)
	svc := NewContent(newMemContent())

	c, err := svc.Create(context.Background(), &caller, ContentInput{
		Title: strPtr("Hello"),
		HTML:  strPtr("<h1>Hello</h1>"),
	})
	require.NoError(t, err)
	assert.Equal(t, caller.ID, c.AuthorID)
	require.NotNil(t, c.Author)
	assert.Equal(t, "ann", c.Author.Username)
	assert.Equal(t, models.ContentStatusDraft, c.Status)
	assert.NotEqual(t, uuid.Nil, c.ID)
}

func TestCreateValidation(t *testing.T) {
	caller := newUser("ann", models.RoleUser)

	tests := []struct {
		name    string
		in      ContentInput
		wantMsg string
	}{
		{name: "missing title", in: ContentInput{}, wantMsg: MsgMissingTitle},
		{name: "blank title", in: ContentInput{Title: strPtr("   ")}, wantMsg: MsgMissingTitle},
		{name: "bad status", in: ContentInput{Title: strPtr("x"), Status: strPtr("Archived")}, wantMsg: MsgInvalidStatus},
		{name: "lowercase status", in: ContentInput{Title: strPtr("x"), Status: strPtr("draft")}, wantMsg: MsgInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemContent()
			_, err := NewContent(store).Create(context.Background(), &caller, tt.in)
			require.Error(t, err)
			assert.Equal(t, KindValidation, KindOf(err))
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Empty(t, store.items)
		})
	}
}

func TestCreateRequiresCaller(t *testing.T) {
	_, err := NewContent(newMemContent()).Create(context.Background(), nil, ContentInput{Title: strPtr("x")})
	assert.Equal(t, KindUnauthenticated, KindOf(err))
}

func TestCreateExcerptRoundTrip(t *testing.T) {
	caller := newUser("ann", models.RoleUser)
	store := newMemContent()
	svc := NewContent(store)

	html := "<section>\n  <h1>Big   Title</h1>\n<p>Some &amp; more " + strings.Repeat("text ", 60) + "</p></section>"
	created, err := svc.Create(context.Background(), &caller, ContentInput{Title: strPtr("T"), HTML: &html})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, excerpt.FromHTML(html), got.Body)
	assert.True(t, strings.HasPrefix(got.Body, "Big Title Some & more text"))
	assert.Len(t, []rune(got.Body), excerpt.MaxLength)
}

func TestCreateBlocksExcerpt(t *testing.T) {
	caller := newUser("ann", models.RoleUser)
	hero, err := models.NewBlock(models.BlockHero, models.HeroContent{Title: "Welcome", Subtitle: "to the site"})
	require.NoError(t, err)
	text, err := models.NewBlock(models.BlockText, "Read on")
	require.NoError(t, err)

	c, err := NewContent(newMemContent()).Create(context.Background(), &caller, ContentInput{
		Title:  strPtr("Blocks"),
		Blocks: &[]models.Block{hero, text},
	})
	require.NoError(t, err)
	assert.Equal(t, models.PayloadBlocks, c.Payload.Kind)
	assert.Equal(t, "Welcome to the site Read on", c.Body)
}

func TestCreateEmptyBlocksHasEmptyExcerpt(t *testing.T) {
	caller := newUser("ann", models.RoleUser)
	c, err := NewContent(newMemContent()).Create(context.Background(), &caller, ContentInput{
		Title:  strPtr("Empty"),
		Blocks: &[]models.Block{},
	})
	require.NoError(t, err)
	assert.Equal(t, "", c.Body)
}

func TestGetNotFound(t *testing.T) {
	svc := NewContent(newMemContent())

	for _, id := range []string{"not-a-uuid", uuid.NewString()} {
		_, err := svc.Get(context.Background(), id)
		require.Error(t, err)
		assert.Equal(t, KindNotFound, KindOf(err))
		assert.Equal(t, MsgContentNotFound, err.Error())
	}
}

func TestListMine(t *testing.T) {
	ann := newUser("ann", models.RoleUser)
	bob := newUser("bob", models.RoleUser)
	svc := NewContent(newMemContent(
		seedContent(ann, "A1", models.ContentStatusDraft),
		seedContent(bob, "B1", models.ContentStatusDraft),
	))

	all, err := svc.List(context.Background(), nil, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.List(context.Background(), &ann, true)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "A1", mine[0].Title)

	_, err = svc.List(context.Background(), nil, true)
	assert.Equal(t, KindUnauthenticated, KindOf(err))
}

func TestUpdatePartial(t *testing.T) {
	ann := newUser("ann", models.RoleUser)
	orig := seedContent(ann, "Original", models.ContentStatusDraft)

	tests := []struct {
		name  string
		in    ContentInput
		check func(t *testing.T, c *models.Content)
	}{
		{
			name: "empty input keeps everything",
			in:   ContentInput{},
			check: func(t *testing.T, c *models.Content) {
				assert.Equal(t, "Original", c.Title)
				assert.Equal(t, models.ContentStatusDraft, c.Status)
				assert.Equal(t, orig.Payload, c.Payload)
				assert.Equal(t, "original", c.Body)
			},
		},
		{
			name: "empty title keeps old title",
			in:   ContentInput{Title: strPtr(""), Status: strPtr("Published")},
			check: func(t *testing.T, c *models.Content) {
				assert.Equal(t, "Original", c.Title)
				assert.Equal(t, models.ContentStatusPublished, c.Status)
			},
		},
		{
			name: "html only keeps css and rederives excerpt",
			in:   ContentInput{HTML: strPtr("<p>new words</p>")},
			check: func(t *testing.T, c *models.Content) {
				assert.Equal(t, "<p>new words</p>", c.Payload.HTML)
				assert.Equal(t, "p{}", c.Payload.CSS)
				assert.Equal(t, "new words", c.Body)
			},
		},
		{
			name: "blocks replace markup",
			in:   ContentInput{Blocks: &[]models.Block{}},
			check: func(t *testing.T, c *models.Content) {
				assert.Equal(t, models.PayloadBlocks, c.Payload.Kind)
				assert.Equal(t, "", c.Body)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemContent(orig)
			svc := NewContent(store)

			c, err := svc.Update(context.Background(), &ann, orig.ID.String(), tt.in)
			require.NoError(t, err)
			tt.check(t, c)
			assert.Equal(t, ann.ID, c.AuthorID)

			stored, err := svc.Get(context.Background(), orig.ID.String())
			require.NoError(t, err)
			tt.check(t, stored)
		})
	}
}

func TestUpdatePartialBlockPage(t *testing.T) {
	ann := newUser("ann", models.RoleUser)
	orig := seedContent(ann, "Landing", models.ContentStatusPublished)
	orig.Payload = models.BlocksPayload([]models.Block{
		{Type: models.BlockHero, Content: json.RawMessage(`{"title":"Welcome","subtitle":"Hi","bg":""}`)},
	})
	orig.Body = "Welcome Hi"

	t.Run("lone markup field is rejected", func(t *testing.T) {
		for name, in := range map[string]ContentInput{
			"css only":  {CSS: strPtr("h1{color:red}")},
			"html only": {HTML: strPtr("<p>x</p>")},
		} {
			t.Run(name, func(t *testing.T) {
				store := newMemContent(orig)
				_, err := NewContent(store).Update(context.Background(), &ann, orig.ID.String(), in)
				require.Error(t, err)
				assert.Equal(t, KindValidation, KindOf(err))
				assert.Equal(t, orig, store.items[orig.ID])
			})
		}
	})

	t.Run("title only keeps blocks", func(t *testing.T) {
		store := newMemContent(orig)
		c, err := NewContent(store).Update(context.Background(), &ann, orig.ID.String(), ContentInput{Title: strPtr("Home")})
		require.NoError(t, err)
		assert.Equal(t, "Home", c.Title)
		assert.Equal(t, orig.Payload, c.Payload)
		assert.Equal(t, "Welcome Hi", c.Body)
	})

	t.Run("both markup fields switch to markup", func(t *testing.T) {
		store := newMemContent(orig)
		c, err := NewContent(store).Update(context.Background(), &ann, orig.ID.String(), ContentInput{
			HTML: strPtr("<h1>Fresh</h1>"),
			CSS:  strPtr("h1{}"),
		})
		require.NoError(t, err)
		assert.Equal(t, models.PayloadMarkup, c.Payload.Kind)
		assert.Empty(t, c.Payload.Blocks)
		assert.Equal(t, "Fresh", c.Body)
	})
}

func TestUpdateInvalidStatusLeavesRecord(t *testing.T) {
	ann := newUser("ann", models.RoleUser)
	orig := seedContent(ann, "Original", models.ContentStatusDraft)
	store := newMemContent(orig)

	_, err := NewContent(store).Update(context.Background(), &ann, orig.ID.String(), ContentInput{
		Title:  strPtr("Changed"),
		Status: strPtr("Deleted"),
	})
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, orig, store.items[orig.ID])
}

func TestUpdateDeleteOwnership(t *testing.T) {
	ann := newUser("ann", models.RoleUser)
	bob := newUser("bob", models.RoleUser)
	admin := newUser("root", models.RoleAdmin)
	orig := seedContent(ann, "Ann's page", models.ContentStatusDraft)

	tests := []struct {
		name     string
		caller   *models.User
		id       string
		wantKind Kind
	}{
		{name: "other user", caller: &bob, id: orig.ID.String(), wantKind: KindForbidden},
		{name: "anonymous", caller: nil, id: orig.ID.String(), wantKind: KindUnauthenticated},
		{name: "missing record checked before ownership", caller: &bob, id: uuid.NewString(), wantKind: KindNotFound},
		{name: "malformed id", caller: &ann, id: "zzz", wantKind: KindNotFound},
		{name: "owner", caller: &ann, id: orig.ID.String()},
		{name: "admin", caller: &admin, id: orig.ID.String()},
	}

	for _, tt := range tests {
		t.Run(tt.name+" update", func(t *testing.T) {
			store := newMemContent(orig)
			svc := NewContent(store)

			_, err := svc.Update(context.Background(), tt.caller, tt.id, ContentInput{Title: strPtr("Hijacked")})
			if tt.wantKind != KindInternal {
				assert.Equal(t, tt.wantKind, KindOf(err))
				assert.Equal(t, orig, store.items[orig.ID])
				assert.Zero(t, store.updates)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Hijacked", store.items[orig.ID].Title)
			assert.Equal(t, ann.ID, store.items[orig.ID].AuthorID)
		})

		t.Run(tt.name+" delete", func(t *testing.T) {
			store := newMemContent(orig)
			svc := NewContent(store)

			id, err := svc.Delete(context.Background(), tt.caller, tt.id)
			if tt.wantKind != KindInternal {
				assert.Equal(t, tt.wantKind, KindOf(err))
				assert.Contains(t, store.items, orig.ID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, orig.ID, id)
			assert.NotContains(t, store.items, orig.ID)
		})
	}
}

func TestDeleteTwice(t *testing.T) {
	ann := newUser("ann", models.RoleUser)
	orig := seedContent(ann, "Once", models.ContentStatusDraft)
	svc := NewContent(newMemContent(orig))

	_, err := svc.Delete(context.Background(), &ann, orig.ID.String())
	require.NoError(t, err)

	_, err = svc.Delete(context.Background(), &ann, orig.ID.String())
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestContentStoreErrorIsInternal(t *testing.T) {
	ann := newUser("ann", models.RoleUser)
	store := newMemContent()
	store.err = errors.New("db down")
	svc := NewContent(store)

	_, err := svc.List(context.Background(), nil, false)
	assert.Equal(t, KindInternal, KindOf(err))

	_, err = svc.Create(context.Background(), &ann, ContentInput{Title: strPtr("x")})
	assert.Equal(t, KindInternal, KindOf(err))
}
