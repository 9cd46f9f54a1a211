package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/umajibakery/reservations/internal/catalog"
	kafkax "github.com/umajibakery/reservations/internal/kafka"
	"github.com/umajibakery/reservations/internal/mailer"
	"github.com/umajibakery/reservations/internal/registry"
	"github.com/umajibakery/reservations/internal/reservation"
	"github.com/umajibakery/reservations/internal/sales"
	"github.com/umajibakery/reservations/internal/session"
)

const cancelReasonMaxRunes = 200

// AdminHandler serves the back office: reservation registry, product
// management, sales and customer views. Everything except login sits
// behind the session check.
type AdminHandler struct {
	Sessions *session.Manager
	Registry *registry.Repo
	Products *catalog.Service
	Mailer   *mailer.Client
	Producer *kafkax.Producer
	Service  string
}

func (h *AdminHandler) Register(r *chi.Mux) {
	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", h.login)
		r.Group(func(r chi.Router) {
			r.Use(h.requireSession)
			r.Post("/logout", h.logout)
			r.Get("/reservations", h.listReservations)
			r.Get("/reservations/export", h.exportReservations)
			r.Put("/reservations/{id}/status", h.setStatus)
			r.Post("/reservations/{id}/cancel", h.cancelReservation)
			r.Get("/products", h.listProducts)
			r.Get("/products/alerts", h.productAlerts)
			r.Put("/products/{id}", h.saveProduct)
			r.Put("/products/{id}/stock", h.setStock)
			r.Put("/products/{id}/price", h.setPrice)
			r.Post("/products/{id}/toggle", h.toggleAvailability)
			r.Get("/sales", h.salesReport)
			r.Get("/customers", h.listCustomers)
		})
	})
}

func (h *AdminHandler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, err := h.Sessions.Valid(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "session check failed"})
			return
		}
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *AdminHandler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if err := h.Sessions.Login(r.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, session.ErrBadCredentials) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid username or password"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "login failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged in"})
}

func (h *AdminHandler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Logout(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "logout failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *AdminHandler) listReservations(w http.ResponseWriter, r *http.Request) {
	f := registry.Filter{
		Status:  reservation.Status(r.URL.Query().Get("status")),
		Date:    r.URL.Query().Get("date"),
		Channel: r.URL.Query().Get("type"),
	}
	if f.Status != "" && !reservation.ValidStatus(f.Status) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown status"})
		return
	}
	recs, err := h.Registry.List(r.Context(), f)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not list reservations"})
		return
	}
	if recs == nil {
		recs = []reservation.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

// exportReservations streams the spreadsheet download. scope=advance
// exports pending/confirmed advance orders; scope=all exports the whole
// registry.
func (h *AdminHandler) exportReservations(w http.ResponseWriter, r *http.Request) {
	scope := r.URL.Query().Get("scope")
	if scope == "" {
		scope = "advance"
	}

	recs, err := h.Registry.List(r.Context(), registry.Filter{})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not export reservations"})
		return
	}

	var body []byte
	var prefix string
	switch scope {
	case "advance":
		var advance []reservation.Record
		for _, rec := range recs {
			if rec.Channel == catalog.ChannelAdvance && !rec.Status.Terminal() {
				advance = append(advance, rec)
			}
		}
		body = registry.ExportAdvanceCSV(advance)
		prefix = "advance-reservations"
	case "all":
		body = registry.ExportAllCSV(recs)
		prefix = "reservations"
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "scope must be advance or all"})
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+registry.ExportFilename(prefix, time.Now())+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *AdminHandler) setStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid reservation id"})
		return
	}
	var req struct {
		Status reservation.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if !reservation.ValidStatus(req.Status) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown status"})
		return
	}
	switch err := h.Registry.SetStatus(r.Context(), id, req.Status); {
	case errors.Is(err, registry.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "reservation not found"})
	case errors.Is(err, registry.ErrBadTransition):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not update status"})
	default:
		rec, err := h.Registry.Get(r.Context(), id)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not load reservation"})
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

// cancelReservation mails the customer first, then moves the record to
// cancelled and publishes the event. A failed mail leaves the status
// untouched.
func (h *AdminHandler) cancelReservation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid reservation id"})
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if utf8.RuneCountInString(req.Reason) > cancelReasonMaxRunes {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"errors": map[string]string{"reason": "reason must be 200 characters or fewer"},
		})
		return
	}

	rec, err := h.Registry.Get(r.Context(), id)
	if errors.Is(err, registry.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "reservation not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not load reservation"})
		return
	}
	if !reservation.CanTransition(rec.Status, reservation.StatusCancelled) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "reservation cannot be cancelled from its current status"})
		return
	}
	if err := h.Mailer.SendCancellation(r.Context(), rec, req.Reason); err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "cancellation notice could not be sent"})
		return
	}
	if err := h.Registry.SetStatus(r.Context(), id, reservation.StatusCancelled); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not update status"})
		return
	}

	ev := reservation.Envelope{
		EventID:       uuid.NewString(),
		EventType:     reservation.EventReservationCancelled,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: strconv.Itoa(id),
	}
	ev.Payload = kafkax.MustMarshal(reservation.CancelledPayload{
		ReservationID: id,
		Customer:      rec.Customer,
		Reason:        req.Reason,
	})
	h.Producer.Publish(reservation.PartitionKey(strconv.Itoa(id)), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(reservation.EventReservationCancelled)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)

	rec.Status = reservation.StatusCancelled
	writeJSON(w, http.StatusOK, rec)
}

func (h *AdminHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Products.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not list products"})
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *AdminHandler) productAlerts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Products.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not list products"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sold_out_today": catalog.SoldOutToday(products),
		"low_stock":      catalog.LowStock(products),
	})
}

func (h *AdminHandler) setStock(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	var req struct {
		Channel catalog.Channel `json:"type"`
		Stock   int             `json:"stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	p, err := h.Products.UpdateChannelStock(r.Context(), id, req.Channel, req.Stock)
	h.writeProductResult(w, p, err)
}

func (h *AdminHandler) setPrice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	var req struct {
		Price int `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	p, err := h.Products.UpdatePrice(r.Context(), id, req.Price)
	h.writeProductResult(w, p, err)
}

func (h *AdminHandler) toggleAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	p, err := h.Products.ToggleAvailability(r.Context(), id)
	h.writeProductResult(w, p, err)
}

func (h *AdminHandler) saveProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	var upd catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	upd.ID = id
	p, fieldErrs, err := h.Products.SaveProduct(r.Context(), upd)
	if len(fieldErrs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": fieldErrs})
		return
	}
	h.writeProductResult(w, p, err)
}

func (h *AdminHandler) writeProductResult(w http.ResponseWriter, p catalog.Product, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
	case errors.Is(err, catalog.ErrNegativeStock), errors.Is(err, catalog.ErrBadChannel):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not update product"})
	default:
		writeJSON(w, http.StatusOK, p)
	}
}

func (h *AdminHandler) salesReport(w http.ResponseWriter, r *http.Request) {
	recs, err := h.Registry.List(r.Context(), registry.Filter{})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not build sales report"})
		return
	}
	writeJSON(w, http.StatusOK, sales.Report(recs))
}

func (h *AdminHandler) listCustomers(w http.ResponseWriter, r *http.Request) {
	recs, err := h.Registry.List(r.Context(), registry.Filter{})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not list customers"})
		return
	}
	customers := sales.Search(sales.Customers(recs), r.URL.Query().Get("q"))
	if customers == nil {
		customers = []sales.CustomerSummary{}
	}
	writeJSON(w, http.StatusOK, customers)
}
