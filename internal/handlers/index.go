package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Shorten a link</title>
</head>
<body>
  <h1>Shorten a link</h1>
  <form method="post" action="/shorten_form">
    <input type="url" name="url" placeholder="https://example.com/very/long/path" required>
    <button type="submit">Shorten</button>
  </form>
</body>
</html>
`

// RegisterIndex serves the landing page with the shorten form.
func RegisterIndex(router chi.Router) {
	router.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(indexPage))
	})
}
