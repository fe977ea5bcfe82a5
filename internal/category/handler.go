package category

import (
	"encoding/json"
	"net/http"

	"github.com/arifwid/blog-management/internal"
	"github.com/arifwid/blog-management/internal/transport"
)

type ServiceAPI interface {
	Create(name string) error
	Rename(id int64, name string) error
	Delete(id int64) error
	List() ([]Category, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{BaseHandler: base, Service: svc}
}

func (h *Handler) CategoryView() transport.View {
	return transport.View{
		Name:      "category",
		Qualified: "CategoryView",
		Post:      h.create,
		Put:       h.rename,
		Delete:    h.delete,
	}
}

func (h *Handler) CategoriesView() transport.View {
	return transport.View{
		Name:      "category list",
		Qualified: "CategoriesView",
		Get:       h.list,
	}
}

// FrontCategoriesView serves the same list without the gate.
func (h *Handler) FrontCategoriesView() transport.View {
	return transport.View{
		Name: "category list",
		Get:  h.list,
	}
}

func (h *Handler) create(r *http.Request) (*transport.Response, error) {
	var dto struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		return nil, internal.NewValidationError("invalid request body")
	}
	if dto.Name == "" {
		return nil, internal.NewRequiredFieldError("name")
	}
	return nil, h.Service.Create(dto.Name)
}

func (h *Handler) rename(r *http.Request) (*transport.Response, error) {
	var dto struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		return nil, internal.NewValidationError("invalid request body")
	}
	if dto.ID == 0 {
		return nil, internal.NewRequiredFieldError("id")
	}
	if dto.Name == "" {
		return nil, internal.NewRequiredFieldError("name")
	}
	return nil, h.Service.Rename(dto.ID, dto.Name)
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
	categories, err := h.Service.List()
	if err != nil {
		return nil, err
	}
	return transport.OK(categories), nil
}
