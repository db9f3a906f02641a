package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"service-partner/internal/apperr"
	"service-partner/internal/domain"
	"service-partner/internal/logx"
)

// PartnerHandler serves HTTP endpoints for partner resources.
type PartnerHandler struct {
	usecase  partnerUsecase
	resolver nearestResolver
	logger   logx.Logger
}

// NewPartnerHandler creates a new PartnerHandler.
func NewPartnerHandler(logger logx.Logger, uc partnerUsecase, resolver nearestResolver) *PartnerHandler {
	return &PartnerHandler{usecase: uc, resolver: resolver, logger: logger}
}

// Create handles POST /api/v1/partners.
func (h *PartnerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPartnerRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if f := req.missingField(); f != "" {
		writeError(h.logger, w, r, http.StatusUnprocessableEntity, "missing field "+f)
		return
	}

	p, err := req.toModel()
	if err != nil {
		h.writeCreateError(w, r, err)
		return
	}

	if err := h.usecase.Create(r.Context(), p); err != nil {
		h.writeCreateError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/partners/"+url.PathEscape(p.ID))
	writeJSON(h.logger, w, r, http.StatusCreated, partnerToResponse(*p))
}

func (h *PartnerHandler) writeCreateError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		gerr *apperr.GeometryError
		ferr *apperr.FieldError
	)
	switch {
	case errors.As(err, &gerr):
		writeError(h.logger, w, r, http.StatusBadRequest, gerr.Error())
	case errors.As(err, &ferr):
		writeError(h.logger, w, r, http.StatusBadRequest, ferr.Error())
	case errors.Is(err, apperr.ErrDuplicateID):
		writeError(h.logger, w, r, http.StatusBadRequest, "duplicate id")
	case errors.Is(err, apperr.ErrDuplicateDocument):
		writeError(h.logger, w, r, http.StatusBadRequest, "duplicate document")
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// GetByID handles GET /api/v1/partners/{id}.
func (h *PartnerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if strings.TrimSpace(id) == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	p, err := h.usecase.Get(r.Context(), id)
	h.writePartner(w, r, p, err)
}

// Search handles GET /api/v1/partners?long=&lat= and GET /api/v1/partners?document=.
func (h *PartnerHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Has("document") {
		doc := strings.TrimSpace(q.Get("document"))
		if doc == "" {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid document")
			return
		}
		p, err := h.usecase.GetByDocument(r.Context(), doc)
		h.writePartner(w, r, p, err)
		return
	}

	pt, ok := parseLongLat(q)
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid coordinates: long and lat must be numbers")
		return
	}

	p, err := h.resolver.Nearest(r.Context(), pt)
	var gerr *apperr.GeometryError
	switch {
	case errors.As(err, &gerr), errors.Is(err, apperr.ErrInvalidQuery):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid coordinates: "+err.Error())
	default:
		h.writePartner(w, r, p, err)
	}
}

func (h *PartnerHandler) writePartner(w http.ResponseWriter, r *http.Request, p *domain.Partner, err error) {
	switch {
	case err != nil:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	case p == nil:
		writeError(h.logger, w, r, http.StatusNotFound, "partner not found")
	default:
		writeJSON(h.logger, w, r, http.StatusOK, partnerToResponse(*p))
	}
}

func parseLongLat(q url.Values) (domain.Position, bool) {
	lon, err := strconv.ParseFloat(strings.TrimSpace(q.Get("long")), 64)
	if err != nil {
		return nil, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(q.Get("lat")), 64)
	if err != nil {
		return nil, false
	}
	return domain.NewPosition(lon, lat), true
}
