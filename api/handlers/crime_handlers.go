package handlers

import (
	"context"
	"errors"
	"net/http"

	"stpaul-crime/config"
	"stpaul-crime/core/crime"
	"stpaul-crime/core/store"
	"stpaul-crime/core/utils"
)

const (
	msgOK              = "OK"
	msgDatabaseError   = "Database error"
	msgCaseExists      = "Case number already exists"
	msgCaseMissing     = "Case number does not exist"
	msgMalformedBody   = "Malformed JSON body"
	msgBodyTooLarge    = "Request body too large"
	msgDatabaseOffline = "Database unavailable"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type CrimeHandler struct {
	cfg           *config.AppConfig
	codes         store.CodesStore
	neighborhoods store.NeighborhoodsStore
	incidents     store.IncidentsStore
	logger        *utils.Logger
}

func NewCrimeHandler(cfg *config.AppConfig, codes store.CodesStore, neighborhoods store.NeighborhoodsStore, incidents store.IncidentsStore, logger *utils.Logger) *CrimeHandler {
	return &CrimeHandler{cfg: cfg, codes: codes, neighborhoods: neighborhoods, incidents: incidents, logger: logger}
}

func (h *CrimeHandler) parseOptions() crime.ParseOptions {
	opts := crime.ParseOptions{DefaultLimit: crime.DefaultLimit}
	if h.cfg != nil {
		opts.DefaultLimit = h.cfg.EffectiveDefaultLimit()
		opts.MaxLimit = h.cfg.Query.MaxLimit
	}
	return opts
}

// parseFilter writes a 400 and returns false when the query string is invalid.
func (h *CrimeHandler) parseFilter(w http.ResponseWriter, r *http.Request, table crime.Table) (crime.FilterCriteria, bool) {
	h.logger.Debugf("%s %s query=%v", r.Method, r.URL.Path, r.URL.Query())
	f, err := crime.ParseFilter(table, r.URL.Query(), h.parseOptions())
	if err != nil {
		writeText(w, http.StatusBadRequest, err.Error())
		return crime.FilterCriteria{}, false
	}
	return f, true
}

func (h *CrimeHandler) ListCodes(w http.ResponseWriter, r *http.Request) {
	f, ok := h.parseFilter(w, r, crime.TableCodes)
	if !ok {
		return
	}
	items, err := h.codes.ListCodes(r.Context(), f)
	if err != nil {
		h.storageError(w, "list codes", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *CrimeHandler) ListNeighborhoods(w http.ResponseWriter, r *http.Request) {
	f, ok := h.parseFilter(w, r, crime.TableNeighborhoods)
	if !ok {
		return
	}
	items, err := h.neighborhoods.ListNeighborhoods(r.Context(), f)
	if err != nil {
		h.storageError(w, "list neighborhoods", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *CrimeHandler) ListIncidents(w http.ResponseWriter, r *http.Request) {
	f, ok := h.parseFilter(w, r, crime.TableIncidents)
	if !ok {
		return
	}
	items, err := h.incidents.ListIncidents(r.Context(), f)
	if err != nil {
		h.storageError(w, "list incidents", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// CreateIncident handles PUT /new-incident. Failures keep the plain-text 500
// responses existing clients rely on.
func (h *CrimeHandler) CreateIncident(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(w, r, h.maxBodyBytes())
	if err != nil {
		writeBodyError(w, err)
		return
	}
	h.logger.Debugf("new incident payload=%v", payload)
	incident, err := crime.ValidateIncident(payload)
	if err != nil {
		writeValidationError(w, err)
		return
	}
	switch err := h.incidents.Insert(r.Context(), incident); {
	case err == nil:
		writeText(w, http.StatusOK, msgOK)
	case errors.Is(err, store.ErrDuplicateCase):
		writeText(w, http.StatusInternalServerError, msgCaseExists)
	default:
		h.storageError(w, "insert incident", err)
	}
}

// RemoveIncident handles DELETE /remove-incident.
func (h *CrimeHandler) RemoveIncident(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(w, r, h.maxBodyBytes())
	if err != nil {
		writeBodyError(w, err)
		return
	}
	h.logger.Debugf("remove incident payload=%v", payload)
	caseNumber, err := crime.ValidateCaseNumber(payload)
	if err != nil {
		writeValidationError(w, err)
		return
	}
	switch err := h.incidents.Remove(r.Context(), caseNumber); {
	case err == nil:
		writeText(w, http.StatusOK, msgOK)
	case errors.Is(err, store.ErrNotFound):
		writeText(w, http.StatusInternalServerError, msgCaseMissing)
	default:
		h.storageError(w, "remove incident", err)
	}
}

func (h *CrimeHandler) storageError(w http.ResponseWriter, op string, err error) {
	h.logger.Errorf("%s: %v", op, err)
	writeText(w, http.StatusInternalServerError, msgDatabaseError)
}

func (h *CrimeHandler) maxBodyBytes() int64 {
	if h.cfg == nil {
		return 0
	}
	return h.cfg.HTTP.MaxBodyBytes
}

func writeValidationError(w http.ResponseWriter, err error) {
	var verr *crime.ValidationError
	if errors.As(err, &verr) {
		writeText(w, http.StatusInternalServerError, verr.Message)
		return
	}
	writeText(w, http.StatusInternalServerError, crime.MsgMissingFields)
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			writeText(w, http.StatusServiceUnavailable, msgDatabaseOffline)
			return
		}
	}
	writeText(w, http.StatusOK, msgOK)
}
