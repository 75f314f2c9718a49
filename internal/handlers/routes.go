package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers all URL shortener routes.
func RegisterRoutes(api huma.API, urlHandler *URLHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "shorten-raw",
		Method:      http.MethodPost,
		Path:        "/shorten",
		Summary:     "Shorten a URL sent as the request body",
		Description: "Returns the full short link as plain text.",
		Tags:        []string{"URLs"},
	}, urlHandler.ShortenRaw)

	huma.Register(api, huma.Operation{
		OperationID: "shorten-form",
		Method:      http.MethodPost,
		Path:        "/shorten_form",
		Summary:     "Shorten a URL sent as a form field",
		Description: "Reads the url field of a form-encoded body and returns the full short link as plain text.",
		Tags:        []string{"URLs"},
	}, urlHandler.ShortenForm)

	huma.Register(api, huma.Operation{
		OperationID:   "create-short-url",
		Method:        http.MethodPost,
		Path:          "/api/shorten",
		Summary:       "Create short URL",
		Description:   "Creates a short link and returns it as JSON.",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusCreated,
	}, urlHandler.CreateShortURL)

	huma.Register(api, huma.Operation{
		OperationID:   "redirect",
		Method:        http.MethodGet,
		Path:          "/rec/{code}",
		Summary:       "Redirect to original URL",
		Description:   "Redirects to the URL stored under the short code.",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusMovedPermanently,
	}, urlHandler.RedirectToURL)
}
