package auth

import (
	"encoding/json"
	"net/http"

	"github.com/arifwid/blog-management/internal"
	"github.com/arifwid/blog-management/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: base,
		Service:     svc,
	}
}

// TokenView is the login endpoint. It is registered on the public shell:
// issuing a token can't require one.
func (h *Handler) TokenView() transport.View {
	return transport.View{
		Name:      "token",
		Qualified: "TokenView",
		Post:      h.login,
	}
}

func (h *Handler) login(r *http.Request) (*transport.Response, error) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		return nil, internal.NewValidationError("invalid request body")
	}

	token, err := h.Service.Login(dto)
	if err != nil {
		return nil, err
	}

	h.Logger.Info("user logged in", "username", dto.Username)
	return transport.OKMsg("login succeeded", token), nil
}
