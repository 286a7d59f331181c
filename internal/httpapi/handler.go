// Package httpapi exposes the assistant's tool-call surface over HTTP for
// the conversational layer: one endpoint accepting a tagged tool request
// per call, plus a catalog listing.
package httpapi

import (
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/dailypantry/pantry-assistant/internal/catalog"
	"github.com/dailypantry/pantry-assistant/internal/session"
)

// maxBodyBytes caps tool request bodies; tool calls are small.
const maxBodyBytes = 64 << 10

// Handler serves the tool-call and catalog endpoints.
type Handler struct {
	sessions *session.Manager
	catalog  catalog.Store
}

// NewHandler constructs a Handler over the session registry and catalog.
func NewHandler(sessions *session.Manager, store catalog.Store) *Handler {
	return &Handler{sessions: sessions, catalog: store}
}

// Register mounts the API routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/session/tool", h.handleTool)
	mux.HandleFunc("GET /api/v1/catalog", h.handleCatalog)
}

// handleTool decodes one tagged tool request, dispatches it to the session,
// and returns the textual result. Boundary rejections map to 400; domain
// outcomes arrive inside the result text.
func (h *Handler) handleTool(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}

	req, err := decodeToolRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	mode := session.ModeGrocery
	if req.Mode != "" {
		if mode, err = session.ParseMode(req.Mode); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	sess, err := h.sessions.GetOrCreate(req.SessionID, mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := sess.Handle(r.Context(), req.Request)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRequest) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		zctx.From(r.Context()).Error("Tool dispatch failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	e := &jx.Encoder{}
	e.ObjStart()
	e.FieldStart("session_id")
	e.Str(req.SessionID)
	e.FieldStart("result")
	e.Str(result)
	e.ObjEnd()
	writeJSON(w, http.StatusOK, e.Bytes())
}

// handleCatalog lists all catalog items in iteration order.
func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.List(r.Context())
	if err != nil {
		zctx.From(r.Context()).Error("Catalog listing failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	e := &jx.Encoder{}
	e.ArrStart()
	for _, it := range items {
		e.ObjStart()
		e.FieldStart("name")
		e.Str(it.Name)
		e.FieldStart("category")
		e.Str(it.Category)
		e.FieldStart("price")
		e.Str(it.Price.StringFixed(2))
		e.FieldStart("units")
		e.Str(it.Units)
		e.FieldStart("tags")
		e.ArrStart()
		for _, tag := range it.Tags {
			e.Str(tag)
		}
		e.ArrEnd()
		e.ObjEnd()
	}
	e.ArrEnd()
	writeJSON(w, http.StatusOK, e.Bytes())
}

func writeError(w http.ResponseWriter, code int, msg string) {
	e := &jx.Encoder{}
	e.ObjStart()
	e.FieldStart("code")
	e.Int(code)
	e.FieldStart("message")
	e.Str(msg)
	e.ObjEnd()
	writeJSON(w, code, e.Bytes())
}

func writeJSON(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}
