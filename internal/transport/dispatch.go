package transport

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/arifwid/blog-management/internal"
)

// HandlerFunc is one verb of a view. Returning (nil, nil) makes the shell
// synthesize the default success envelope for the view and verb.
type HandlerFunc func(r *http.Request) (*Response, error)

// View bundles the verb handlers of one resource endpoint together with
// its display name (used in synthesized messages) and its qualified
// identifier (the join key into the permission index). The identifier is
// explicit and assigned at registration, never derived by reflection.
type View struct {
	Name      string
	Qualified string

	Get    HandlerFunc
	Post   HandlerFunc
	Put    HandlerFunc
	Delete HandlerFunc
}

func (v View) handler(verb string) HandlerFunc {
	switch verb {
	case "get":
		return v.Get
	case "post":
		return v.Post
	case "put":
		return v.Put
	case "delete":
		return v.Delete
	default:
		return nil
	}
}

// Display verbs used when composing default messages.
var actionVerbs = map[string]string{
	"get":    "fetch",
	"post":   "create",
	"put":    "update",
	"delete": "delete",
}

// Authorizer runs the per-request authorization check before a handler is
// invoked. A nil error means the returned context carries the caller's
// resolved identity.
type Authorizer interface {
	Authorize(r *http.Request, operationID string) (context.Context, error)
}

// Shell wraps every view invocation: it resolves the verb handler, runs
// the authorization gate, translates failures into the response envelope
// exactly once and synthesizes a success message when the handler returns
// nothing. Handler failures never propagate past the shell.
type Shell struct {
	*BaseHandler
	gate Authorizer
}

// NewShell builds the gated shell used by back-office routes.
func NewShell(base *BaseHandler, gate Authorizer) *Shell {
	return &Shell{BaseHandler: base, gate: gate}
}

// NewPublicShell builds a shell without a gate, for front routes and the
// login route itself.
func NewPublicShell(base *BaseHandler) *Shell {
	return &Shell{BaseHandler: base}
}

// Handle turns a view into a chi-mountable handler.
func (s *Shell) Handle(v View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		verb := strings.ToLower(r.Method)
		handler := v.handler(verb)
		if handler == nil {
			s.WriteEnvelope(w, http.StatusMethodNotAllowed, &Response{
				Ret: internal.RetMethodNotAllowed,
				Msg: "method not allowed",
			})
			return
		}

		if s.gate != nil {
			ctx, err := s.gate.Authorize(r, v.Qualified+"."+verb)
			if err != nil {
				s.writeFailure(w, v, verb, err)
				return
			}
			r = r.WithContext(ctx)
		}

		resp, err := s.invoke(handler, r)
		if err != nil {
			s.writeFailure(w, v, verb, err)
			return
		}
		if resp == nil {
			resp = OKMsg(fmt.Sprintf("%s %s succeeded", v.Name, actionVerbs[verb]), nil)
		}
		s.WriteEnvelope(w, http.StatusOK, resp)
	}
}

// invoke runs the handler, converting a panic into an internal error so a
// request can never take the process down.
func (s *Shell) invoke(handler HandlerFunc, r *http.Request) (resp *Response, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = internal.NewInternalError("handler panicked", fmt.Errorf("%v", rec))
		}
	}()
	return handler(r)
}

func (s *Shell) writeFailure(w http.ResponseWriter, v View, verb string, err error) {
	appErr, ok := internal.IsAppError(err)
	if !ok {
		appErr = internal.NewInternalError("unhandled failure", err)
	}

	switch appErr.Type {
	case internal.ErrorTypeNotFound:
		// The not-found message is composed here from the view's display
		// name and the attempted action, e.g. "article not found, update
		// failed".
		s.WriteEnvelope(w, appErr.StatusCode, &Response{
			Ret: appErr.Ret,
			Msg: fmt.Sprintf("%s not found, %s failed", v.Name, actionVerbs[verb]),
		})
	case internal.ErrorTypeInternal:
		s.Logger.Error("request failed",
			"view", v.Qualified,
			"verb", verb,
			"error", appErr.Error(),
			"cause", appErr.Cause)
		s.WriteEnvelope(w, appErr.StatusCode, &Response{
			Ret: internal.RetInternal,
			Msg: "server failed to respond",
		})
	default:
		s.WriteAppError(w, appErr)
	}
}
