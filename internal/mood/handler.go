package mood

import (
	"encoding/json"
	"net/http"

	"github.com/arifwid/blog-management/internal"
	"github.com/arifwid/blog-management/internal/transport"
)

type ServiceAPI interface {
	Create(content string) error
	SetVisibility(id int64, visible bool) error
	Delete(id int64) error
	List(visibleOnly bool) ([]Mood, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{BaseHandler: base, Service: svc}
}

func (h *Handler) MoodView() transport.View {
	return transport.View{
		Name:      "mood",
		Qualified: "MoodView",
		Post:      h.create,
		Put:       h.setVisibility,
		Delete:    h.delete,
	}
}

func (h *Handler) MoodsView() transport.View {
	return transport.View{
		Name:      "mood list",
		Qualified: "MoodsView",
		Get:       h.list,
	}
}

// FrontMoodsView lists only the moods flagged visible.
func (h *Handler) FrontMoodsView() transport.View {
	return transport.View{
		Name: "mood list",
		Get:  h.frontList,
	}
}

func (h *Handler) create(r *http.Request) (*transport.Response, error) {
	var dto struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		return nil, internal.NewValidationError("invalid request body")
	}
	return nil, h.Service.Create(dto.Content)
}

func (h *Handler) setVisibility(r *http.Request) (*transport.Response, error) {
	var dto struct {
		ID        int64 `json:"id"`
		IsVisible bool  `json:"is_visible"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		return nil, internal.NewValidationError("invalid request body")
	}
	if dto.ID == 0 {
		return nil, internal.NewRequiredFieldError("id")
	}
	return nil, h.Service.SetVisibility(dto.ID, dto.IsVisible)
}

func (h *Handler) delete(r *http.Request) (*transport.Response, error) {
	var dto struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		return nil, internal.NewValidationError("invalid request body")
	}
	if dto.ID == 0 {
		return nil, internal.NewRequiredFieldError("id")
	}
	return nil, h.Service.Delete(dto.ID)
}

func (h *Handler) list(r *http.Request) (*transport.Response, error) {
	moods, err := h.Service.List(false)
	if err != nil {
		return nil, err
	}
	return transport.OK(moods), nil
}

func (h *Handler) frontList(r *http.Request) (*transport.Response, error) {
	moods, err := h.Service.List(true)
	if err != nil {
		return nil, err
	}
	return transport.OK(moods), nil
}
