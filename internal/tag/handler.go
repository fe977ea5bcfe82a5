package tag

import (
	"net/http"
	"strconv"

	"github.com/arifwid/blog-management/internal/transport"
)

type ServiceAPI interface {
	NameMap() (map[int64]string, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{BaseHandler: base, Service: svc}
}

// TagMapView returns every tag as an id-to-name map, which is what the
// article editor uses to render stored tag id lists.
func (h *Handler) TagMapView() transport.View {
	return transport.View{
		Name:      "tag map",
		Qualified: "TagMapView",
		Get:       h.nameMap,
	}
}

func (h *Handler) FrontTagMapView() transport.View {
	return transport.View{
		Name: "tag map",
		Get:  h.nameMap,
	}
}

func (h *Handler) nameMap(r *http.Request) (*transport.Response, error) {
	m, err := h.Service.NameMap()
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(m))
	for id, name := range m {
		out[strconv.FormatInt(id, 10)] = name
	}
	return transport.OK(out), nil
}
