package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/moneyflow/internal/client/models"
	"github.com/dmitrijs2005/moneyflow/internal/client/routes"
	"github.com/dmitrijs2005/moneyflow/internal/client/services"
)

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"authenticated": h.session.IsAuthenticated(),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	res := h.session.Login(r.Context(), req.Email, req.Password)
	switch {
	case res.Success:
		writeJSON(w, http.StatusOK, res)
	case len(res.FieldErrors) > 0:
		writeJSON(w, http.StatusBadRequest, res)
	default:
		writeJSON(w, http.StatusUnauthorized, res)
	}
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	res := h.session.Register(r.Context(), req)
	if !res.Success {
		writeJSON(w, http.StatusBadRequest, res)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Logout(r.Context()); err != nil {
		h.log.Warn(r.Context(), "logout incomplete", "error", err)
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":  "Logged out",
		"redirect": routes.Login,
	})
}

type profileResponse struct {
	User      *models.User `json:"user"`
	ExpiresAt *time.Time   `json:"access_token_expires_at,omitempty"`
}

func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	resp := profileResponse{User: h.session.User()}
	if exp, ok := h.session.AccessTokenExpiry(); ok {
		resp.ExpiresAt = &exp
	}
	writeJSON(w, http.StatusOK, resp)
}

type dashboardResponse struct {
	Filters      string               `json:"filters"`
	Transactions []models.Transaction `json:"transactions"`
}

// Dashboard lists the transactions matching the query string, which also
// becomes the store's filter set.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	filters, err := models.FiltersFromValues(r.URL.Query())
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	list, err := h.store.FetchListWith(r.Context(), filters)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []models.Transaction{}
	}
	writeJSON(w, http.StatusOK, dashboardResponse{Filters: filters.Query(), Transactions: list})
}

func (h *Handlers) Metadata(w http.ResponseWriter, r *http.Request) {
	if err := h.store.FetchMetadata(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.store.Metadata())
}

func (h *Handlers) ensureMetadata(r *http.Request) error {
	if len(h.store.Metadata().TransactionTypes) > 0 {
		return nil
	}
	return h.store.FetchMetadata(r.Context())
}

// optionalID reads a positive id from the query; absent means 0.
func optionalID(r *http.Request, key string) (int64, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return id, nil
}

func (h *Handlers) Categories(w http.ResponseWriter, r *http.Request) {
	typeID, err := optionalID(r, "type")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.ensureMetadata(r); err != nil {
		writeError(w, err)
		return
	}
	cats := h.store.FilteredCategories(typeID)
	if cats == nil {
		cats = []models.Category{}
	}
	writeJSON(w, http.StatusOK, cats)
}

func (h *Handlers) Subcategories(w http.ResponseWriter, r *http.Request) {
	categoryID, err := optionalID(r, "category")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.ensureMetadata(r); err != nil {
		writeError(w, err)
		return
	}
	subs := h.store.FilteredSubcategories(categoryID)
	if subs == nil {
		subs = []models.Subcategory{}
	}
	writeJSON(w, http.StatusOK, subs)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handlers) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid transaction id")
		return
	}
	tx, err := h.store.FetchOne(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *Handlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var in models.TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	tx, err := h.store.Create(r.Context(), in)
	if err != nil && tx == nil {
		writeError(w, err)
		return
	}
	if err != nil {
		h.log.Warn(r.Context(), "transaction created but list reload failed", "id", tx.ID, "error", err)
	}
	writeJSON(w, http.StatusCreated, tx)
}

// patchRequest keeps subcategory_id raw so an explicit null can be told
// apart from an absent key.
type patchRequest struct {
	StatusID          *int64           `json:"status_id"`
	TransactionTypeID *int64           `json:"transaction_type_id"`
	CategoryID        *int64           `json:"category_id"`
	SubcategoryID     json.RawMessage  `json:"subcategory_id"`
	Amount            *decimal.Decimal `json:"amount"`
	Comment           *string          `json:"comment"`
}

func (p patchRequest) toPatch() (models.TransactionPatch, error) {
	patch := models.TransactionPatch{
		StatusID:          p.StatusID,
		TransactionTypeID: p.TransactionTypeID,
		CategoryID:        p.CategoryID,
		Amount:            p.Amount,
		Comment:           p.Comment,
	}
	switch raw := string(p.SubcategoryID); raw {
	case "":
	case "null":
		patch.ClearSubcategory = true
	default:
		var id int64
		if err := json.Unmarshal(p.SubcategoryID, &id); err != nil {
			return models.TransactionPatch{}, errors.New("invalid subcategory_id")
		}
		patch.SubcategoryID = &id
	}
	return patch, nil
}

func (h *Handlers) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	var req patchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if patch.IsEmpty() {
		writeMessage(w, http.StatusBadRequest, "nothing to update")
		return
	}

	tx, err := h.store.Update(r.Context(), id, patch)
	if err != nil && tx == nil {
		writeError(w, err)
		return
	}
	if err != nil {
		h.log.Warn(r.Context(), "transaction updated but list reload failed", "id", id, "error", err)
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *Handlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid transaction id")
		return
	}
	err := h.store.Delete(r.Context(), id)
	if errors.Is(err, services.ErrReload) {
		h.log.Warn(r.Context(), "transaction deleted but list reload failed", "id", id, "error", err)
		err = nil
	}
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
