package middleware

import (
	"mime"
	"net/http"

	"github.com/airscore/airscore/internal/api/models"
)

// ContentTypeJSON defaults the response Content-Type to application/json.
// Handlers that write another type (problem+json, text metrics) set their
// own header first and win.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "application/json")
		}
		next.ServeHTTP(w, r)
	})
}

// RequireJSON rejects body-carrying requests whose declared Content-Type
// is not application/json. Requests without a Content-Type pass through;
// decoding decides their fate.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			if !jsonContentType(r.Header.Get("Content-Type")) {
				problem := models.NewUnsupportedMediaType(
					GetRequestID(r.Context()),
					"request body must be application/json",
				)
				problem.Instance = r.URL.Path
				problem.Write(w)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// jsonContentType accepts an absent header or any application/json media
// type, parameters included.
func jsonContentType(header string) bool {
	if header == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}
