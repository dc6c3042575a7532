package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/problemkit/logger"
)

// GinErrorHandler is ErrorHandler for the Gin engine. Handlers report
// failures with c.Error(err) (the last one wins) or by panicking. The
// problem response is written after the chain returns unless the handler
// already wrote a body.
func GinErrorHandler(log *logger.Logger, opts ...ErrorHandlerOption) gin.HandlerFunc {
	t := newTranslator(log, opts...)
	return func(c *gin.Context) {
		rec, err := invoke(HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) error {
			c.Next()
			return nil
		}), c.Writer, c.Request)
		if err == nil {
			last := c.Errors.Last()
			if last == nil {
				return
			}
			err = last.Err
		}
		c.Abort()
		committed := 0
		if c.Writer.Written() {
			committed = c.Writer.Status()
		}
		t.translate(c.Writer, c.Request, err, rec, committed)
	}
}
