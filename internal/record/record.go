package record

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/arifwid/blog-management/internal/transport"
)

// Entry is one site changelog item.
type Entry struct {
	Date    string `json:"date"`
	Content string `json:"content"`
}

// Load reads the changelog file once at startup. An unset path yields an
// empty changelog rather than an error.
func Load(path string) ([]Entry, error) {
	if path == "" {
		return []Entry{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read records file: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse records file %s: %w", path, err)
	}
	return entries, nil
}

type Handler struct {
	*transport.BaseHandler
	entries []Entry
}

func NewHandler(base *transport.BaseHandler, entries []Entry) *Handler {
	if entries == nil {
		entries = []Entry{}
	}
	return &Handler{BaseHandler: base, entries: entries}
}

func (h *Handler) RecordsView() transport.View {
	return transport.View{
		Name: "records",
		Get:  h.list,
	}
}

func (h *Handler) list(r *http.Request) (*transport.Response, error) {
	return transport.OK(h.entries), nil
}
