package transport

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"posadmin/pkg/domain/model"
)

func init() {
	// The dashboard API emits prices and totals as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type responseDTO struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type handler struct {
	store  *Store
	logger *log.Logger
}

// Router serves the stub POS API: the three consumed operations plus the
// orders listing, with the backend's exact response envelope.
func Router(store *Store, logger *log.Logger) http.Handler {
	h := &handler{store: store, logger: logger}

	r := mux.NewRouter()
	r.HandleFunc("/customers", h.listCustomers).Methods(http.MethodGet)
	r.HandleFunc("/products", h.listProducts).Methods(http.MethodGet)
	r.HandleFunc("/orders", h.listOrders).Methods(http.MethodGet)
	r.HandleFunc("/orders", h.createOrder).Methods(http.MethodPost)
	return h.logMiddleware(r)
}

func (h *handler) listCustomers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, responseDTO{Status: "success", Message: "ok", Data: h.store.Customers()})
}

func (h *handler) listProducts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, responseDTO{Status: "success", Message: "ok", Data: h.store.Products()})
}

func (h *handler) listOrders(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, responseDTO{Status: "success", Message: "ok", Data: h.store.Orders()})
}

func (h *handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, responseDTO{Status: "error", Message: "invalid input", Data: err.Error()})
		return
	}

	order, err := h.store.CreateOrder(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, responseDTO{Status: "error", Message: "create order failed", Data: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, responseDTO{Status: "success", Message: "order created", Data: order})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *handler) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"url":        r.URL.Path,
			"remoteAddr": r.RemoteAddr,
		}).Info("got a new request")
		next.ServeHTTP(w, r)
	})
}
