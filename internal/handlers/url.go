package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/events"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

const (
	internalErrorMessage = "internal server error"
	notFoundMessage      = "short link not found"
	plainText            = "text/plain; charset=utf-8"
)

// Shortener creates and resolves short links.
type Shortener interface {
	Shorten(ctx context.Context, rawURL string) (*shortener.Link, error)
	Resolve(ctx context.Context, code shortener.Code) (string, error)
}

// URLHandler handles URL shortening operations.
type URLHandler struct {
	service            Shortener
	baseURL            string
	publishLinkCreated messaging.Publish[events.LinkCreated]
	logger             *zap.Logger
}

// NewURLHandler creates a new URL handler. Short links are composed as <baseURL>/rec/<code>.
func NewURLHandler(
	service Shortener,
	baseURL string,
	publishLinkCreated messaging.Publish[events.LinkCreated],
	logger *zap.Logger,
) *URLHandler {
	return &URLHandler{
		service:            service,
		baseURL:            strings.TrimRight(baseURL, "/"),
		publishLinkCreated: publishLinkCreated,
		logger:             logger,
	}
}

type requestIDKey struct{}

// ContextWithRequestID stores the request id used to correlate log lines.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id, or "" when none was set.
func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}

	return ""
}

func (h *URLHandler) ShortenRaw(ctx context.Context, req *ShortenRawRequest) (*ShortLinkResponse, error) {
	link, err := h.shorten(ctx, string(req.RawBody))
	if err != nil {
		return nil, err
	}

	return h.plainLink(link), nil
}

func (h *URLHandler) ShortenForm(ctx context.Context, req *ShortenFormRequest) (*ShortLinkResponse, error) {
	form, err := url.ParseQuery(string(req.RawBody))
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("url validation failed: malformed form body")
	}

	link, err := h.shorten(ctx, form.Get("url"))
	if err != nil {
		return nil, err
	}

	return h.plainLink(link), nil
}

func (h *URLHandler) CreateShortURL(ctx context.Context, req *CreateShortURLRequest) (*CreateShortURLResponse, error) {
	link, err := h.shorten(ctx, req.Body.URL)
	if err != nil {
		return nil, err
	}

	shortURL := h.shortURL(link.Code)

	resp := &CreateShortURLResponse{}
	resp.Location = shortURL
	resp.Body.Code = string(link.Code)
	resp.Body.ShortURL = shortURL
	resp.Body.TargetURL = link.TargetURL

	return resp, nil
}

func (h *URLHandler) RedirectToURL(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	target, err := h.service.Resolve(ctx, shortener.Code(req.Code))
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound(notFoundMessage)
		}

		h.logger.Error("failed to resolve short link",
			zap.String("code", req.Code),
			zap.String("request_id", RequestIDFromContext(ctx)),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError(internalErrorMessage)
	}

	return &RedirectResponse{
		Status:   http.StatusMovedPermanently,
		Location: target,
	}, nil
}

func (h *URLHandler) shorten(ctx context.Context, rawURL string) (*shortener.Link, error) {
	link, err := h.service.Shorten(ctx, rawURL)
	if err != nil {
		var invalid *shortener.InvalidURLError
		if errors.As(err, &invalid) {
			return nil, huma.Error422UnprocessableEntity(invalid.Error())
		}

		h.logger.Error("failed to shorten url",
			zap.String("request_id", RequestIDFromContext(ctx)),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError(internalErrorMessage)
	}

	// The link is committed; a disconnected client must not drop the event.
	event := &events.LinkCreated{
		Code:      string(link.Code),
		TargetURL: link.TargetURL,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.publishLinkCreated(context.WithoutCancel(ctx), event); err != nil {
		h.logger.Error("failed to publish link created event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}

	return link, nil
}

func (h *URLHandler) shortURL(code shortener.Code) string {
	return h.baseURL + "/rec/" + string(code)
}

func (h *URLHandler) plainLink(link *shortener.Link) *ShortLinkResponse {
	return &ShortLinkResponse{
		ContentType: plainText,
		Body:        []byte(h.shortURL(link.Code)),
	}
}
