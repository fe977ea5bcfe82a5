package article

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/arifwid/blog-management/internal"
	"github.com/arifwid/blog-management/internal/transport"
)

type ServiceAPI interface {
	Get(ctx context.Context, id int64, front bool) (*Detail, error)
	Create(dto CreateDTO) (int64, error)
	Update(dto UpdateDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filtersJSON string) (*ListResult, error)
	ArchiveByCategory() ([]ArchiveEntry, error)
	ArchiveByTag() ([][]any, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{BaseHandler: base, Service: svc}
}

func (h *Handler) ArticleView() transport.View {
	return transport.View{
		Name:      "article",
		Qualified: "ArticleView",
		Get:       h.get,
		Post:      h.create,
		Put:       h.update,
		Delete:    h.delete,
	}
}

func (h *Handler) ArticlesView() transport.View {
	return transport.View{
		Name:      "article list",
		Qualified: "ArticlesView",
		Get:       h.list,
	}
}

// FrontArticleView serves the public article read, which also bumps the
// visit counter.
func (h *Handler) FrontArticleView() transport.View {
	return transport.View{
		Name: "article",
		Get:  h.frontGet,
	}
}

func (h *Handler) FrontArticlesView() transport.View {
	return transport.View{
		Name: "article list",
		Get:  h.list,
	}
}

// ArchiveView aggregates the front-end archive: per-category counts plus
// per-tag usage pairs.
func (h *Handler) ArchiveView() transport.View {
	return transport.View{
		Name: "archive",
		Get:  h.archive,
	}
}

func (h *Handler) get(r *http.Request) (*transport.Response, error) {
	return h.detail(r, false)
}

func (h *Handler) frontGet(r *http.Request) (*transport.Response, error) {
	return h.detail(r, true)
}

func (h *Handler) detail(r *http.Request, front bool) (*transport.Response, error) {
	id, err := queryArticleID(r)
	if err != nil {
		return nil, err
	}
	detail, err := h.Service.Get(r.Context(), id, front)
	if err != nil {
		return nil, err
	}
	return transport.OK(detail), nil
}

func (h *Handler) create(r *http.Request) (*transport.Response, error) {
	var dto CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		return nil, internal.NewValidationError("invalid request body")
	}
	id, err := h.Service.Create(dto)
	if err != nil {
		return nil, err
	}
	return transport.OKMsg("article create succeeded", map[string]int64{"id": id}), nil
}

func (h *Handler) update(r *http.Request) (*transport.Response, error) {
	var dto UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		return nil, internal.NewValidationError("invalid request body")
	}
	return nil, h.Service.Update(dto)
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
	return nil, h.Service.Delete(r.Context(), dto.ID)
}

func (h *Handler) list(r *http.Request) (*transport.Response, error) {
	result, err := h.Service.List(r.Context(), r.URL.Query().Get("filters"))
	if err != nil {
		return nil, err
	}
	return transport.OK(result), nil
}

func (h *Handler) archive(r *http.Request) (*transport.Response, error) {
	categories, err := h.Service.ArchiveByCategory()
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []ArchiveEntry{}
	}
	tags, err := h.Service.ArchiveByTag()
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = [][]any{}
	}
	return transport.OK(map[string]any{
		"categories": categories,
		"tags":       tags,
	}), nil
}

func queryArticleID(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		return 0, internal.NewRequiredFieldError("id")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, internal.NewValidationError("id must be an integer")
	}
	return id, nil
}
