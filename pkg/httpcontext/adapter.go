// Package httpcontext bridges fasthttp handlers and the context-driven
// service layer: every request gets a deadline, a request id, and the
// caller metadata the logs want.
package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

type ctxKey int

const (
	keyRequestID ctxKey = iota
	keyRemoteAddr
	keyUserAgent
)

const requestIDHeader = "X-Request-ID"

// Adapter derives a stdlib context from a fasthttp request.
type Adapter struct {
	timeout time.Duration
}

func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{timeout: timeout}
}

// Attach builds a deadline-bound context carrying the request id and caller
// metadata, and echoes the request id back on the response.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(context.Background(), a.timeout)

	id := requestID(ctx)
	stdCtx = context.WithValue(stdCtx, keyRequestID, id)
	ctx.Response.Header.Set(requestIDHeader, id)

	if addr := ctx.RemoteAddr(); addr != nil {
		stdCtx = context.WithValue(stdCtx, keyRemoteAddr, addr.String())
	}
	if ua := string(ctx.Request.Header.UserAgent()); ua != "" {
		stdCtx = context.WithValue(stdCtx, keyUserAgent, ua)
	}
	return stdCtx, cancel
}

// RequestID returns the request id stored by Attach, or "" outside a request.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)
	return id
}

// RemoteAddr returns the caller address stored by Attach.
func RemoteAddr(ctx context.Context) string {
	addr, _ := ctx.Value(keyRemoteAddr).(string)
	return addr
}

func requestID(ctx *fasthttp.RequestCtx) string {
	if header := strings.TrimSpace(string(ctx.Request.Header.Peek(requestIDHeader))); header != "" {
		return header
	}
	return uuid.NewString()
}
