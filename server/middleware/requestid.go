package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID carries the request id on requests and responses.
const HeaderRequestID = "X-Request-Id"

// maxRequestIDLength bounds client-supplied ids.
const maxRequestIDLength = 128

// RequestID returns middleware that ensures every request carries an
// X-Request-Id. A valid incoming id is kept; otherwise a UUID is generated.
// The id is echoed on the response.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := normalizeRequestID(r.Header.Get(HeaderRequestID))
			r.Header.Set(HeaderRequestID, id)
			w.Header().Set(HeaderRequestID, id)
			next.ServeHTTP(w, r)
		})
	}
}

// GinRequestID is RequestID for the Gin engine. The id is also stored under
// the "request_id" context key.
func GinRequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := normalizeRequestID(c.GetHeader(HeaderRequestID))
		c.Request.Header.Set(HeaderRequestID, id)
		c.Set("request_id", id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

func normalizeRequestID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > maxRequestIDLength || strings.ContainsAny(id, "\r\n") {
		return uuid.New().String()
	}
	return id
}

func requestIDFrom(r *http.Request) string {
	return r.Header.Get(HeaderRequestID)
}
