package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/muurk/wcagdemo/internal/catalog"
	"github.com/muurk/wcagdemo/internal/dom"
	"github.com/muurk/wcagdemo/internal/logging"
	"github.com/muurk/wcagdemo/internal/version"
)

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	r.Get("/ws/trap", s.handleTrapSocket)

	r.Route("/api/cases", func(r chi.Router) {
		r.Get("/", s.handleListCases)
		r.Get("/{id}", s.handleGetCase)
		r.Get("/{id}/focusable", s.handleFocusable)
	})
	return r
}

// requestLogger logs each request once the handler returns and counts it.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			// Upgraded connections write their status on the hijacked conn.
			if websocket.IsWebSocketUpgrade(r) {
				status = http.StatusSwitchingProtocols
			} else {
				status = http.StatusOK
			}
		}
		logging.LogHTTPRequest(r.RemoteAddr, r.Method, r.URL.Path, status)
		s.metrics.httpRequests.WithLabelValues(r.Method, strconv.Itoa(status)).Inc()
	})
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Cases   int    `json:"cases"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: version.Version,
		Cases:   s.Catalog().Len(),
	})
}

type caseList struct {
	Count int             `json:"count"`
	Cases []*catalog.Case `json:"cases"`
}

// handleListCases serves GET /api/cases. ?pillar= narrows to one principle
// and ?q= fuzzy-searches, best matches first.
func (s *Server) handleListCases(w http.ResponseWriter, r *http.Request) {
	cat := s.Catalog()
	pillar := catalog.Pillar(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("pillar"))))
	if pillar != "" && !pillar.Valid() {
		respondError(w, http.StatusBadRequest, errors.New("unknown pillar "+strconv.Quote(string(pillar))))
		return
	}

	var cases []*catalog.Case
	if q := r.URL.Query().Get("q"); q != "" {
		for _, c := range cat.Search(q) {
			if pillar == "" || c.Pillar == pillar {
				cases = append(cases, c)
			}
		}
	} else {
		cases = cat.ByPillar(pillar)
	}
	if cases == nil {
		cases = []*catalog.Case{}
	}
	respondJSON(w, http.StatusOK, caseList{Count: len(cases), Cases: cases})
}

// handleGetCase serves GET /api/cases/{id}. The id may also be a criterion
// number such as 2.1.2.
func (s *Server) handleGetCase(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookupCase(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, c)
}

type focusableElement struct {
	Tag      string `json:"tag"`
	ID       string `json:"id,omitempty"`
	Label    string `json:"label,omitempty"`
	Disabled bool   `json:"disabled"`
}

type focusableResponse struct {
	Case     string             `json:"case"`
	Variant  catalog.Variant    `json:"variant"`
	Elements []focusableElement `json:"elements"`
}

// handleFocusable serves GET /api/cases/{id}/focusable, listing the
// focusable elements of one example in document order.
func (s *Server) handleFocusable(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookupCase(w, r)
	if !ok {
		return
	}

	variant := catalog.Variant(r.URL.Query().Get("variant"))
	switch variant {
	case "":
		variant = catalog.VariantAccessible
	case catalog.VariantAccessible, catalog.VariantInaccessible:
	default:
		respondError(w, http.StatusBadRequest, errors.New("unknown variant "+strconv.Quote(string(variant))))
		return
	}

	doc, err := dom.ParseString(c.Example(variant))
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err)
		return
	}
	elements := make([]focusableElement, 0)
	for _, el := range doc.FocusableDescendants(doc.Root()) {
		elements = append(elements, focusableElement{
			Tag:      el.Tag(),
			ID:       el.ID(),
			Label:    el.Label(),
			Disabled: el.Disabled(),
		})
	}
	respondJSON(w, http.StatusOK, focusableResponse{Case: c.ID, Variant: variant, Elements: elements})
}

func (s *Server) lookupCase(w http.ResponseWriter, r *http.Request) (*catalog.Case, bool) {
	c, err := s.Catalog().Find(chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrCaseNotFound) {
		respondError(w, http.StatusNotFound, err)
		return nil, false
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return nil, false
	}
	return c, true
}

// respondJSON writes payload as indented JSON.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		logging.Debug("failed to write response", zap.Error(err))
	}
}

type errorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// respondError sends a structured JSON error response.
func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, errorResponse{Error: err.Error(), Status: status})
}
