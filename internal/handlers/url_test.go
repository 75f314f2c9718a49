package handlers_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/events"
	"github.com/serroba/shortlink/internal/handlers"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/serroba/shortlink/internal/shortener"
	"github.com/serroba/shortlink/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const baseURL = "http://localhost:8888"

var errBroken = fmt.Errorf("%w: dial tcp 10.0.0.7:5432: connection refused", shortener.ErrStoreUnavailable)

// brokenStore fails every operation with a transport fault.
type brokenStore struct{}

func (brokenStore) Insert(context.Context, *shortener.Link) error { return errBroken }

func (brokenStore) Lookup(context.Context, shortener.Code) (*shortener.Link, error) {
	return nil, errBroken
}

type capturedEvents struct {
	created []*events.LinkCreated
}

func (c *capturedEvents) publish(_ context.Context, event *events.LinkCreated) error {
	c.created = append(c.created, event)

	return nil
}

func newService(t *testing.T, repo shortener.Repository) *shortener.Service {
	t.Helper()

	gen, err := shortener.NewCodeGenerator(shortener.DefaultCodeLength)
	require.NoError(t, err)

	return shortener.NewService(repo, shortener.NewValidator(), gen, 3, zap.NewNop())
}

func newTestHandler(t *testing.T, repo shortener.Repository) *handlers.URLHandler {
	t.Helper()

	return handlers.NewURLHandler(newService(t, repo), baseURL+"/", messaging.NopPublish[events.LinkCreated](), zap.NewNop())
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()

	var statusErr huma.StatusError
	require.True(t, errors.As(err, &statusErr), "expected huma status error, got %v", err)
	assert.Equal(t, status, statusErr.GetStatus())
}

func TestShortenRaw(t *testing.T) {
	t.Run("returns the full short link as plain text", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		resp, err := handler.ShortenRaw(context.Background(), &handlers.ShortenRawRequest{
			RawBody: []byte("https://example.com/page\n"),
		})

		require.NoError(t, err)
		assert.Equal(t, "text/plain; charset=utf-8", resp.ContentType)
		assert.True(t, strings.HasPrefix(string(resp.Body), baseURL+"/rec/"), string(resp.Body))
		assert.Len(t, strings.TrimPrefix(string(resp.Body), baseURL+"/rec/"), shortener.DefaultCodeLength)
	})

	t.Run("rejects an invalid url with 422 and the diagnostic", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		handler := newTestHandler(t, memStore)

		resp, err := handler.ShortenRaw(context.Background(), &handlers.ShortenRawRequest{RawBody: []byte("not a url")})

		assert.Nil(t, resp)
		requireStatus(t, err, http.StatusUnprocessableEntity)
		assert.Contains(t, err.Error(), "url validation failed")
		assert.Zero(t, memStore.Len())
	})

	t.Run("hides store failures behind an opaque 500", func(t *testing.T) {
		handler := newTestHandler(t, brokenStore{})

		resp, err := handler.ShortenRaw(context.Background(), &handlers.ShortenRawRequest{
			RawBody: []byte("https://example.com"),
		})

		assert.Nil(t, resp)
		requireStatus(t, err, http.StatusInternalServerError)
		assert.NotContains(t, err.Error(), "10.0.0.7")
		assert.NotContains(t, err.Error(), "connection refused")
	})

	t.Run("hides exhausted code attempts behind an opaque 500", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		require.NoError(t, memStore.Insert(context.Background(), &shortener.Link{
			Code:      "AAAAAAAAAA",
			TargetURL: "https://example.com/taken",
		}))

		fixed := func() string { return "AAAAAAAAAA" }
		svc := shortener.NewService(memStore, shortener.NewValidator(), fixed, 3, zap.NewNop())
		captured := &capturedEvents{}
		handler := handlers.NewURLHandler(svc, baseURL, captured.publish, zap.NewNop())

		resp, err := handler.ShortenRaw(context.Background(), &handlers.ShortenRawRequest{
			RawBody: []byte("https://example.com/new"),
		})

		assert.Nil(t, resp)
		requireStatus(t, err, http.StatusInternalServerError)
		assert.Contains(t, err.Error(), "internal server error")
		assert.NotContains(t, err.Error(), "attempts")
		assert.Equal(t, 1, memStore.Len())
		assert.Empty(t, captured.created)
	})

	t.Run("publishes a link created event", func(t *testing.T) {
		captured := &capturedEvents{}
		handler := handlers.NewURLHandler(newService(t, store.NewMemoryStore()), baseURL, captured.publish, zap.NewNop())

		resp, err := handler.ShortenRaw(context.Background(), &handlers.ShortenRawRequest{
			RawBody: []byte("https://example.com/page"),
		})

		require.NoError(t, err)
		require.Len(t, captured.created, 1)
		assert.Equal(t, "https://example.com/page", captured.created[0].TargetURL)
		assert.Equal(t, baseURL+"/rec/"+captured.created[0].Code, string(resp.Body))
		assert.False(t, captured.created[0].CreatedAt.IsZero())
	})

	t.Run("succeeds even when publishing fails", func(t *testing.T) {
		failing := func(context.Context, *events.LinkCreated) error { return errors.New("publish error") }
		handler := handlers.NewURLHandler(newService(t, store.NewMemoryStore()), baseURL, failing, zap.NewNop())

		resp, err := handler.ShortenRaw(context.Background(), &handlers.ShortenRawRequest{
			RawBody: []byte("https://example.com/page"),
		})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Body)
	})
}

func TestShortenForm(t *testing.T) {
	t.Run("reads the url field", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		handler := newTestHandler(t, memStore)

		resp, err := handler.ShortenForm(context.Background(), &handlers.ShortenFormRequest{
			RawBody: []byte("url=https%3A%2F%2Fexample.com%2Fform"),
		})

		require.NoError(t, err)

		code := strings.TrimPrefix(string(resp.Body), baseURL+"/rec/")
		link, err := memStore.Lookup(context.Background(), shortener.Code(code))
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/form", link.TargetURL)
	})

	t.Run("missing field is an invalid url", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		_, err := handler.ShortenForm(context.Background(), &handlers.ShortenFormRequest{RawBody: []byte("other=1")})

		requireStatus(t, err, http.StatusUnprocessableEntity)
	})

	t.Run("malformed form body is rejected", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		_, err := handler.ShortenForm(context.Background(), &handlers.ShortenFormRequest{RawBody: []byte("url=%zz")})

		requireStatus(t, err, http.StatusUnprocessableEntity)
	})
}

func TestCreateShortURL(t *testing.T) {
	t.Run("returns code, short url and canonical target", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		req := &handlers.CreateShortURLRequest{}
		req.Body.URL = "HTTPS://Example.com:443/very/long/path"

		resp, err := handler.CreateShortURL(context.Background(), req)

		require.NoError(t, err)
		assert.Len(t, resp.Body.Code, shortener.DefaultCodeLength)
		assert.Equal(t, baseURL+"/rec/"+resp.Body.Code, resp.Body.ShortURL)
		assert.Equal(t, resp.Body.ShortURL, resp.Location)
		assert.Equal(t, "https://example.com/very/long/path", resp.Body.TargetURL)
	})

	t.Run("same url twice yields different codes", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		req := &handlers.CreateShortURLRequest{}
		req.Body.URL = "https://example.com"

		first, err1 := handler.CreateShortURL(context.Background(), req)
		second, err2 := handler.CreateShortURL(context.Background(), req)

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, first.Body.Code, second.Body.Code)
	})
}

func TestRedirectToURL(t *testing.T) {
	t.Run("redirects to the stored target", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		_ = memStore.Insert(context.Background(), &shortener.Link{Code: "abcdefghij", TargetURL: "https://example.com/page"})
		handler := newTestHandler(t, memStore)

		resp, err := handler.RedirectToURL(context.Background(), &handlers.RedirectRequest{Code: "abcdefghij"})

		require.NoError(t, err)
		assert.Equal(t, http.StatusMovedPermanently, resp.Status)
		assert.Equal(t, "https://example.com/page", resp.Location)
	})

	t.Run("unknown code is a 404", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		resp, err := handler.RedirectToURL(context.Background(), &handlers.RedirectRequest{Code: "zzzzzzzzzz"})

		assert.Nil(t, resp)
		requireStatus(t, err, http.StatusNotFound)
	})

	t.Run("store failure is an opaque 500", func(t *testing.T) {
		handler := newTestHandler(t, brokenStore{})

		_, err := handler.RedirectToURL(context.Background(), &handlers.RedirectRequest{Code: "abcdefghij"})

		requireStatus(t, err, http.StatusInternalServerError)
		assert.NotContains(t, err.Error(), "connection refused")
	})
}

func TestRequestIDContext(t *testing.T) {
	assert.Empty(t, handlers.RequestIDFromContext(context.Background()))

	ctx := handlers.ContextWithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", handlers.RequestIDFromContext(ctx))
}
