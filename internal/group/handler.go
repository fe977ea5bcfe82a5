package group

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/arifwid/blog-management/internal"
	"github.com/arifwid/blog-management/internal/transport"
)

type ServiceAPI interface {
	Create(name string) error
	Rename(id int64, name string) error
	Delete(id int64) error
	List() ([]Group, error)
	Members(groupID int64) ([]Member, error)
	EditMembers(groupID int64, oldMembers, newMembers []int64) error
	PermissionKeys(groupID int64) ([]string, error)
	EditPermissionKeys(groupID int64, checkedKeys []string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{BaseHandler: base, Service: svc}
}

func (h *Handler) GroupView() transport.View {
	return transport.View{
		Name:      "group",
		Qualified: "GroupView",
		Post:      h.create,
		Put:       h.rename,
		Delete:    h.delete,
	}
}

func (h *Handler) GroupsView() transport.View {
	return transport.View{
		Name:      "group list",
		Qualified: "GroupsView",
		Get:       h.list,
	}
}

func (h *Handler) GroupMembersView() transport.View {
	return transport.View{
		Name:      "group members",
		Qualified: "GroupMembersView",
		Get:       h.members,
		Put:       h.editMembers,
	}
}

func (h *Handler) GroupPermissionView() transport.View {
	return transport.View{
		Name:      "group permission",
		Qualified: "GroupPermissionView",
		Get:       h.permissionKeys,
		Put:       h.editPermissionKeys,
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
		GroupID int64  `json:"group_id"`
		Name    string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		return nil, internal.NewValidationError("invalid request body")
	}
	if dto.GroupID == 0 {
		return nil, internal.NewRequiredFieldError("group_id")
	}
	if dto.Name == "" {
		return nil, internal.NewRequiredFieldError("name")
	}
	return nil, h.Service.Rename(dto.GroupID, dto.Name)
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
	groups, err := h.Service.List()
	if err != nil {
		return nil, err
	}
	return transport.OK(groups), nil
}

func (h *Handler) members(r *http.Request) (*transport.Response, error) {
	groupID, err := queryGroupID(r)
	if err != nil {
		return nil, err
	}
	members, err := h.Service.Members(groupID)
	if err != nil {
		return nil, err
	}
	return transport.OK(members), nil
}

func (h *Handler) editMembers(r *http.Request) (*transport.Response, error) {
	var dto struct {
		Group      int64   `json:"group"`
		OldMembers []int64 `json:"old_members"`
		NewMembers []int64 `json:"new_members"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		return nil, internal.NewValidationError("invalid request body")
	}
	if dto.Group == 0 {
		return nil, internal.NewRequiredFieldError("group")
	}
	return nil, h.Service.EditMembers(dto.Group, dto.OldMembers, dto.NewMembers)
}

func (h *Handler) permissionKeys(r *http.Request) (*transport.Response, error) {
	groupID, err := queryGroupID(r)
	if err != nil {
		return nil, err
	}
	keys, err := h.Service.PermissionKeys(groupID)
	if err != nil {
		return nil, err
	}
	if keys == nil {
		keys = []string{}
	}
	return transport.OK(keys), nil
}

func (h *Handler) editPermissionKeys(r *http.Request) (*transport.Response, error) {
	var dto struct {
		Group       int64    `json:"group"`
		CheckedKeys []string `json:"checked_keys"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		return nil, internal.NewValidationError("invalid request body")
	}
	if dto.Group == 0 {
		return nil, internal.NewRequiredFieldError("group")
	}
	return nil, h.Service.EditPermissionKeys(dto.Group, dto.CheckedKeys)
}

func queryGroupID(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("group")
	if raw == "" {
		return 0, internal.NewRequiredFieldError("group")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, internal.NewValidationError("group must be an integer")
	}
	return id, nil
}
