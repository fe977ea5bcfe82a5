// Package menu serves the caller-specific navigation menu and the full
// permission tree used by the admin UI's tree control.
package menu

import (
	"net/http"

	"github.com/arifwid/blog-management/internal"
	"github.com/arifwid/blog-management/internal/auth"
	"github.com/arifwid/blog-management/internal/authority"
	"github.com/arifwid/blog-management/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	tree    authority.Tree
	authSvc auth.ServiceAPI
}

func NewHandler(base *transport.BaseHandler, tree authority.Tree, authSvc auth.ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: base,
		tree:        tree,
		authSvc:     authSvc,
	}
}

func (h *Handler) MenuView() transport.View {
	return transport.View{
		Name:      "menu",
		Qualified: "MenuView",
		Get:       h.getMenu,
	}
}

// PermissionTreeView returns the whole authority configuration, for the
// group-permission editor.
func (h *Handler) PermissionTreeView() transport.View {
	return transport.View{
		Name:      "permission tree",
		Qualified: "PermissionTreeView",
		Get: func(r *http.Request) (*transport.Response, error) {
			return transport.OK(h.tree), nil
		},
	}
}

func (h *Handler) getMenu(r *http.Request) (*transport.Response, error) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return nil, internal.ErrMissingToken
	}

	user, err := h.authSvc.UserByID(claims.ID)
	if err != nil {
		return nil, err
	}

	var keys []string
	if !user.IsAdmin {
		keys, err = h.authSvc.PermissionKeys(user.ID)
		if err != nil {
			return nil, err
		}
	}

	return transport.OK(authority.PruneMenu(h.tree, keys, user.IsAdmin)), nil
}
