package user

import (
	"encoding/json"
	"net/http"

	"github.com/arifwid/blog-management/internal"
	"github.com/arifwid/blog-management/internal/transport"
)

type ServiceAPI interface {
	Register(username, password string) error
	ChangePassword(username, password string) error
	SetValidity(id int64, active bool) error
	Delete(id int64) error
	List() ([]ListEntry, error)
	Search(fuzzyName string) ([]SearchEntry, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{BaseHandler: base, Service: svc}
}

func (h *Handler) UserView() transport.View {
	return transport.View{
		Name:      "user",
		Qualified: "UserView",
		Post:      h.create,
		Put:       h.changePassword,
		Delete:    h.delete,
	}
}

func (h *Handler) UsersView() transport.View {
	return transport.View{
		Name:      "user list",
		Qualified: "UsersView",
		Get:       h.list,
	}
}

func (h *Handler) UserValidityView() transport.View {
	return transport.View{
		Name:      "user validity",
		Qualified: "UserValidityView",
		Put:       h.setValidity,
	}
}

func (h *Handler) UserSearchListView() transport.View {
	return transport.View{
		Name:      "user search list",
		Qualified: "UserSearchListView",
		Get:       h.search,
	}
}

type credentialsDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) create(r *http.Request) (*transport.Response, error) {
	var dto credentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		return nil, internal.NewValidationError("invalid request body")
	}
	if dto.Username == "" {
		return nil, internal.NewRequiredFieldError("username")
	}
	if dto.Password == "" {
		return nil, internal.NewRequiredFieldError("password")
	}
	if err := h.Service.Register(dto.Username, dto.Password); err != nil {
		return nil, err
	}
	return nil, nil
}

func (h *Handler) changePassword(r *http.Request) (*transport.Response, error) {
	var dto credentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		return nil, internal.NewValidationError("invalid request body")
	}
	if dto.Username == "" {
		return nil, internal.NewRequiredFieldError("username")
	}
	if dto.Password == "" {
		return nil, internal.NewRequiredFieldError("password")
	}
	return nil, h.Service.ChangePassword(dto.Username, dto.Password)
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

func (h *Handler) setValidity(r *http.Request) (*transport.Response, error) {
	var dto struct {
		ID     int64 `json:"id"`
		Active bool  `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		return nil, internal.NewValidationError("invalid request body")
	}
	if dto.ID == 0 {
		return nil, internal.NewRequiredFieldError("id")
	}
	return nil, h.Service.SetValidity(dto.ID, dto.Active)
}

func (h *Handler) list(r *http.Request) (*transport.Response, error) {
	entries, err := h.Service.List()
	if err != nil {
		return nil, err
	}
	return transport.OK(entries), nil
}

func (h *Handler) search(r *http.Request) (*transport.Response, error) {
	entries, err := h.Service.Search(r.URL.Query().Get("fuzzy_name"))
	if err != nil {
		return nil, err
	}
	return transport.OK(entries), nil
}
