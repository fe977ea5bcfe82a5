package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/arifwid/blog-management/internal"
	"github.com/arifwid/blog-management/pkg/logger"
)

// Response is the uniform envelope every endpoint answers with. Ret zero
// means success; any other value is an application error code.
type Response struct {
	Ret  int    `json:"ret"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

// OK wraps payload data in a success envelope.
func OK(data any) *Response {
	return &Response{Ret: internal.RetOK, Msg: "ok", Data: data}
}

// OKMsg wraps payload data in a success envelope with a custom message.
func OKMsg(msg string, data any) *Response {
	return &Response{Ret: internal.RetOK, Msg: msg, Data: data}
}

// BaseHandler provides common functionality for HTTP handlers.
type BaseHandler struct {
	Logger *slog.Logger
}

func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.L()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes an arbitrary JSON response.
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteEnvelope writes a response envelope with the given HTTP status.
func (h *BaseHandler) WriteEnvelope(w http.ResponseWriter, status int, resp *Response) {
	h.WriteJSON(w, status, resp)
}

// WriteAppError translates an application error into its envelope.
func (h *BaseHandler) WriteAppError(w http.ResponseWriter, appErr *internal.AppError) {
	h.WriteEnvelope(w, appErr.StatusCode, &Response{
		Ret: appErr.Ret,
		Msg: appErr.Error(),
	})
}
