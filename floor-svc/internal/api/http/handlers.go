package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"overcooked-floor/floor-svc/internal/domain"
	"overcooked-floor/floor-svc/internal/service"
)

type Handler struct {
	Sessions service.SessionServiceInterface
	Waves    service.WaveOrchestratorInterface
	Items    service.ItemControllerInterface
	Seats    service.SeatManagerInterface
	QR       service.QRGenerator
	Logger   *zap.Logger
}

func NewHandler(sessions service.SessionServiceInterface, waves service.WaveOrchestratorInterface, items service.ItemControllerInterface, seats service.SeatManagerInterface, qr service.QRGenerator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Sessions: sessions,
		Waves:    waves,
		Items:    items,
		Seats:    seats,
		QR:       qr,
		Logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/sessions", h.openSession).Methods("POST")
	r.HandleFunc("/api/sessions/{id}", h.getSession).Methods("GET")
	r.HandleFunc("/api/sessions/{id}/guests", h.updateGuests).Methods("PATCH")
	r.HandleFunc("/api/sessions/{id}/close", h.closeSession).Methods("POST")
	r.HandleFunc("/api/sessions/{id}/qrcode", h.getSessionQRCode).Methods("GET")

	r.HandleFunc("/api/sessions/{id}/items", h.addItems).Methods("POST")
	r.HandleFunc("/api/sessions/{id}/waves", h.listWaves).Methods("GET")
	r.HandleFunc("/api/sessions/{id}/waves/fire", h.fireWave).Methods("POST")
	r.HandleFunc("/api/sessions/{id}/waves/{number:[0-9]+}/status", h.advanceWave).Methods("POST")

	r.HandleFunc("/api/items/{id}", h.updateItem).Methods("PATCH")
	r.HandleFunc("/api/items/{id}/status", h.itemStatus).Methods("POST")
	r.HandleFunc("/api/items/{id}/void", h.voidItem).Methods("POST")
	r.HandleFunc("/api/items/{id}/refire", h.refireItem).Methods("POST")
	r.HandleFunc("/api/items/{id}/seat", h.assignSeat).Methods("PUT")

	r.HandleFunc("/api/sessions/{id}/seats", h.addSeat).Methods("POST")
	r.HandleFunc("/api/sessions/{id}/seats", h.listSeats).Methods("GET")
	r.HandleFunc("/api/seats/{id}", h.renumberSeat).Methods("PATCH")
	r.HandleFunc("/api/seats/{id}", h.removeSeat).Methods("DELETE")

	r.HandleFunc("/api/sessions/{id}/payments", h.recordPayment).Methods("POST")
	r.HandleFunc("/api/payments/{id}", h.updatePayment).Methods("PATCH")
}

// decode reads an optional JSON body. An empty body leaves dst untouched.
func decode(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "floor-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) openSession(w http.ResponseWriter, r *http.Request) {
	var req service.OpenSessionRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	session, err := h.Sessions.OpenSession(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.Sessions.GetSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) updateGuests(w http.ResponseWriter, r *http.Request) {
	var body struct {
		GuestCount int `json:"guest_count"`
	}
	if err := decode(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}
	session, err := h.Sessions.UpdateGuestCount(r.Context(), mux.Vars(r)["id"], body.GuestCount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) closeSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Payment *service.PaymentRequest `json:"payment"`
	}
	if err := decode(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}
	result, err := h.Sessions.CloseSession(r.Context(), mux.Vars(r)["id"], body.Payment)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) getSessionQRCode(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	if _, err := h.Sessions.GetSession(r.Context(), sessionID); err != nil {
		h.writeError(w, r, err)
		return
	}
	png, err := h.QR.Generate(sessionID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) addItems(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Items []service.NewItem `json:"items"`
	}
	if err := decode(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}
	result, err := h.Waves.AddItems(r.Context(), mux.Vars(r)["id"], body.Items)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *Handler) listWaves(w http.ResponseWriter, r *http.Request) {
	waves, err := h.Waves.ListWaves(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if waves == nil {
		waves = []domain.Wave{}
	}
	writeJSON(w, http.StatusOK, waves)
}

func (h *Handler) fireWave(w http.ResponseWriter, r *http.Request) {
	var req service.FireWaveRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	result, err := h.Waves.FireWave(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) advanceWave(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	number, err := strconv.Atoi(vars["number"])
	if err != nil {
		badRequest(w, "wave number must be an integer")
		return
	}
	var body struct {
		Status domain.ItemStatus `json:"status"`
	}
	if err := decode(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}
	result, err := h.Waves.AdvanceWaveStatus(r.Context(), vars["id"], number, body.Status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) itemStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status domain.ItemStatus `json:"status"`
	}
	if err := decode(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}
	result, err := h.Items.Transition(r.Context(), mux.Vars(r)["id"], body.Status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type reasonBody struct {
	Reason string `json:"reason"`
}

func (h *Handler) voidItem(w http.ResponseWriter, r *http.Request) {
	var body reasonBody
	if err := decode(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}
	result, err := h.Items.VoidItem(r.Context(), mux.Vars(r)["id"], body.Reason)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) refireItem(w http.ResponseWriter, r *http.Request) {
	var body reasonBody
	if err := decode(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}
	result, err := h.Items.RefireItem(r.Context(), mux.Vars(r)["id"], body.Reason)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// updateItem applies a quantity change and/or a notes change. Both share the request's
// correlation id.
func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity *int    `json:"quantity"`
		Notes    *string `json:"notes"`
	}
	if err := decode(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}
	if body.Quantity == nil && body.Notes == nil {
		badRequest(w, "nothing to update")
		return
	}

	itemID := mux.Vars(r)["id"]
	var (
		result *service.ItemResult
		err    error
	)
	if body.Quantity != nil {
		if result, err = h.Items.UpdateQuantity(r.Context(), itemID, *body.Quantity); err != nil {
			h.writeError(w, r, err)
			return
		}
	}
	if body.Notes != nil {
		if result, err = h.Items.UpdateNotes(r.Context(), itemID, *body.Notes); err != nil {
			h.writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) assignSeat(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SeatID *string `json:"seat_id"`
	}
	if err := decode(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}
	result, err := h.Seats.AssignItemSeat(r.Context(), mux.Vars(r)["id"], body.SeatID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) addSeat(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Label string `json:"label"`
	}
	if err := decode(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}
	seat, err := h.Seats.AddSeat(r.Context(), mux.Vars(r)["id"], body.Label)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, seat)
}

func (h *Handler) listSeats(w http.ResponseWriter, r *http.Request) {
	seats, err := h.Seats.ListSeats(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if seats == nil {
		seats = []domain.Seat{}
	}
	writeJSON(w, http.StatusOK, seats)
}

func (h *Handler) renumberSeat(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Number int `json:"number"`
	}
	if err := decode(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}
	seat, err := h.Seats.RenumberSeat(r.Context(), mux.Vars(r)["id"], body.Number)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, seat)
}

func (h *Handler) removeSeat(w http.ResponseWriter, r *http.Request) {
	result, err := h.Seats.RemoveSeat(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	var req service.PaymentRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	result, err := h.Sessions.RecordPayment(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *Handler) updatePayment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status domain.PaymentStatus `json:"status"`
	}
	if err := decode(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}
	payment, err := h.Sessions.UpdatePaymentStatus(r.Context(), mux.Vars(r)["id"], body.Status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}
