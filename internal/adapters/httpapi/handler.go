// Package httpapi exposes the board and account directory over JSON HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"stockboard/internal/accounts"
	"stockboard/internal/board"
	"stockboard/pkg/inventory"
)

const (
	inventoryPrefix = "/api/v1/inventory"
	accountsPrefix  = "/api/v1/accounts"
	latestPath      = "/api/v1/notifications/latest"
	fragmentPath    = "/search.html"
	metricsPath     = "/metrics"
)

// Handler routes the JSON API. Column and item numbers in paths are 1-based.
type Handler struct {
	Board         *board.Store
	Accounts      *accounts.Directory
	Notifications *LatestNotification

	// FragmentPath is the search view markup served at /search.html.
	FragmentPath string

	// Metrics serves /metrics when set.
	Metrics http.Handler
}

// NewHandler constructs a handler over store.
func NewHandler(store *board.Store) *Handler {
	return &Handler{Board: store}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Board == nil {
		writeError(w, http.StatusInternalServerError, "board not configured")
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/")
	switch {
	case path == inventoryPrefix || strings.HasPrefix(path, inventoryPrefix+"/"):
		h.handleInventory(w, r, strings.TrimPrefix(strings.TrimPrefix(path, inventoryPrefix), "/"))
	case strings.HasPrefix(path, accountsPrefix+"/"):
		h.handleAccounts(w, r, strings.TrimPrefix(path, accountsPrefix+"/"))
	case path == latestPath:
		h.handleLatest(w, r)
	case path == fragmentPath && r.Method == http.MethodGet:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(SearchFragment(h.FragmentPath))
	case path == metricsPath && h.Metrics != nil:
		h.Metrics.ServeHTTP(w, r)
	default:
		http.NotFound(w, r)
	}
}

type inventoryResponse struct {
	State   inventory.State  `json:"state"`
	Totals  inventory.Totals `json:"totals"`
	Records []recordResponse `json:"records"`
}

type recordResponse struct {
	inventory.SearchRecord
	StockStatus inventory.StockStatus `json:"stockStatus"`
}

func records(in []inventory.SearchRecord) []recordResponse {
	out := make([]recordResponse, len(in))
	for i, r := range in {
		out[i] = recordResponse{SearchRecord: r, StockStatus: r.StockStatus()}
	}
	return out
}

type nameRequest struct {
	Name string `json:"name"`
}

type itemRequest struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Quantity    json.Number `json:"quantity"`
}

type moveRequest struct {
	Target json.Number `json:"target"`
}

func (h *Handler) handleInventory(w http.ResponseWriter, r *http.Request, remainder string) {
	var segments []string
	if remainder != "" {
		segments = strings.Split(remainder, "/")
	}
	switch {
	case len(segments) == 0:
		if !allow(w, r, http.MethodGet) {
			return
		}
		writeJSON(w, http.StatusOK, inventoryResponse{
			State:   h.Board.State(),
			Totals:  h.Board.Totals(),
			Records: records(h.Board.Records()),
		})
	case len(segments) == 1 && segments[0] == "search":
		if !allow(w, r, http.MethodGet) {
			return
		}
		q := r.URL.Query().Get("q")
		writeJSON(w, http.StatusOK, map[string]any{"query": q, "records": records(h.Board.Search(q))})
	case len(segments) == 1 && segments[0] == "totals":
		if !allow(w, r, http.MethodGet) {
			return
		}
		writeJSON(w, http.StatusOK, h.Board.Totals())
	case len(segments) == 1 && segments[0] == "name":
		if !allow(w, r, http.MethodPut) {
			return
		}
		var req nameRequest
		if !decode(w, r, &req) {
			return
		}
		h.respond(w, h.Board.RenameInventory(r.Context(), req.Name), http.StatusOK)
	case len(segments) == 2 && segments[0] == "categories":
		if !allow(w, r, http.MethodPut) {
			return
		}
		column, err := inventory.ParseColumnNumber(segments[1])
		if err != nil {
			h.respond(w, h.Board.Reject(r.Context(), err), http.StatusOK)
			return
		}
		var req nameRequest
		if !decode(w, r, &req) {
			return
		}
		h.respond(w, h.Board.RenameCategory(r.Context(), column, req.Name), http.StatusOK)
	case len(segments) >= 3 && segments[0] == "columns" && segments[2] == "items":
		column, err := inventory.ParseColumnNumber(segments[1])
		if err != nil {
			h.respond(w, h.Board.Reject(r.Context(), err), http.StatusOK)
			return
		}
		h.handleItems(w, r, column, segments[3:])
	default:
		writeError(w, http.StatusNotFound, "inventory endpoint not found")
	}
}

func (h *Handler) handleItems(w http.ResponseWriter, r *http.Request, column int, rest []string) {
	if len(rest) == 0 {
		if !allow(w, r, http.MethodPost) {
			return
		}
		it, ok := h.decodeItem(w, r)
		if !ok {
			return
		}
		h.respond(w, h.Board.AddItem(r.Context(), column, it), http.StatusCreated)
		return
	}
	index, err := strconv.Atoi(rest[0])
	if err != nil || index < 1 {
		writeError(w, http.StatusNotFound, board.MsgProductNotFound)
		return
	}
	index--
	switch {
	case len(rest) == 1 && r.Method == http.MethodPut:
		it, ok := h.decodeItem(w, r)
		if !ok {
			return
		}
		h.respond(w, h.Board.EditItem(r.Context(), column, index, it), http.StatusOK)
	case len(rest) == 1 && r.Method == http.MethodDelete:
		h.respond(w, h.Board.DeleteItem(r.Context(), column, index), http.StatusOK)
	case len(rest) == 2 && rest[1] == "move":
		if !allow(w, r, http.MethodPost) {
			return
		}
		var req moveRequest
		if !decode(w, r, &req) {
			return
		}
		target, err := inventory.ParseColumnNumber(req.Target.String())
		if err != nil {
			h.respond(w, h.Board.Reject(r.Context(), err), http.StatusOK)
			return
		}
		h.respond(w, h.Board.MoveItem(r.Context(), column, index, target), http.StatusOK)
	case len(rest) == 1:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	default:
		writeError(w, http.StatusNotFound, "inventory endpoint not found")
	}
}

func (h *Handler) decodeItem(w http.ResponseWriter, r *http.Request) (inventory.Item, bool) {
	var req itemRequest
	if !decode(w, r, &req) {
		return inventory.Item{}, false
	}
	qty, err := inventory.ParseQuantity(req.Quantity.String())
	if err != nil {
		h.respond(w, h.Board.Reject(r.Context(), err), http.StatusOK)
		return inventory.Item{}, false
	}
	return inventory.Item{Name: req.Name, Description: req.Description, Quantity: qty}, true
}

// respond writes the board state on success and maps err to a status.
func (h *Handler) respond(w http.ResponseWriter, err error, status int) {
	if err != nil {
		writeError(w, statusFor(err), board.ValidationMessage(err))
		return
	}
	writeJSON(w, status, map[string]any{"state": h.Board.State()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, inventory.ErrItemNotFound), errors.Is(err, accounts.ErrUserNotFound):
		return http.StatusNotFound
	case board.IsValidation(err), accounts.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type loginRequest struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

func (h *Handler) handleAccounts(w http.ResponseWriter, r *http.Request, action string) {
	if h.Accounts == nil {
		http.NotFound(w, r)
		return
	}
	if !allow(w, r, http.MethodPost) {
		return
	}
	switch action {
	case "register":
		var req accounts.Registration
		if !decode(w, r, &req) {
			return
		}
		user, err := h.Accounts.Register(r.Context(), req)
		if err != nil {
			writeError(w, statusFor(err), accountMessage(err))
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"user": user})
	case "login":
		var req loginRequest
		if !decode(w, r, &req) {
			return
		}
		session, err := h.Accounts.Login(r.Context(), req.User, req.Password)
		if err != nil {
			writeError(w, statusFor(err), accountMessage(err))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"session": session})
	default:
		writeError(w, http.StatusNotFound, "accounts endpoint not found")
	}
}

func accountMessage(err error) string {
	if statusFor(err) == http.StatusInternalServerError {
		return "account storage unavailable"
	}
	return err.Error()
}

func (h *Handler) handleLatest(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	if h.Notifications == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	n, seq, ok := h.Notifications.Latest()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notification": n, "sequence": seq})
}

func allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
