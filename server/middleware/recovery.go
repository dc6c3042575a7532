package middleware

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"runtime"
	"runtime/debug"
	"strings"
)

const middlewarePackage = "github.com/kbukum/problemkit/server/middleware."

// recovered describes a panic caught while running a downstream handler.
type recovered struct {
	value  any
	stack  []byte
	origin string
}

// panicError turns a recovered value into an error. Error values are kept so
// handlers can panic with typed failures.
func panicError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return stderrors.New(fmt.Sprint(v))
}

// invoke runs next exactly once and converts a panic into an error.
// http.ErrAbortHandler is re-panicked so net/http can abort the connection.
func invoke(next Handler, w http.ResponseWriter, r *http.Request) (rec *recovered, err error) {
	defer func() {
		if v := recover(); v != nil {
			if v == http.ErrAbortHandler {
				panic(v)
			}
			rec = &recovered{value: v, stack: debug.Stack(), origin: panicOrigin()}
			err = panicError(v)
		}
	}()
	return nil, next.ServeHTTPE(w, r)
}

// panicOrigin returns the short name of the function that panicked, found by
// skipping runtime and middleware frames. It must be called from the
// deferred recover function.
func panicOrigin() string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		fn := frame.Function
		if fn != "" && !strings.HasPrefix(fn, "runtime.") && !strings.HasPrefix(fn, middlewarePackage) {
			return shortFuncName(fn)
		}
		if !more {
			return ""
		}
	}
}

// shortFuncName strips the import path: "example.com/app/api.(*Users).Get"
// becomes "api.(*Users).Get".
func shortFuncName(fn string) string {
	if i := strings.LastIndex(fn, "/"); i >= 0 {
		return fn[i+1:]
	}
	return fn
}
