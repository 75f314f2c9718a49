package handlers

// ShortenRawRequest carries the URL to shorten as the whole request body.
type ShortenRawRequest struct {
	RawBody []byte `contentType:"text/plain"`
}

// ShortenFormRequest carries the URL in the "url" field of a form-encoded body.
type ShortenFormRequest struct {
	RawBody []byte `contentType:"application/x-www-form-urlencoded"`
}

// ShortLinkResponse is the plaintext short link returned by the raw and form endpoints.
type ShortLinkResponse struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// CreateShortURLRequest is the request body for creating a short URL.
type CreateShortURLRequest struct {
	Body struct {
		URL string `doc:"The URL to shorten" example:"https://example.com/very/long/path" json:"url"`
	}
}

// CreateShortURLResponse is the response for a successfully created short URL.
type CreateShortURLResponse struct {
	Location string `doc:"The short URL location" header:"Location"`
	Body     struct {
		Code      string `doc:"The short code"             example:"V1StGXR8_Z"                         json:"code"`
		ShortURL  string `doc:"The full short URL"         example:"http://localhost:8888/rec/V1StGXR8_Z" json:"shortUrl"`
		TargetURL string `doc:"The canonical original URL" example:"https://example.com/very/long/path"   json:"targetUrl"`
	}
}

// RedirectRequest is the request for redirecting a short URL.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"V1StGXR8_Z" path:"code"`
}

// RedirectResponse redirects the client to the target URL.
type RedirectResponse struct {
	Status   int
	Location string `header:"Location"`
}
