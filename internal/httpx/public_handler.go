package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/umajibakery/reservations/internal/cart"
	"github.com/umajibakery/reservations/internal/catalog"
	"github.com/umajibakery/reservations/internal/inventory"
	kafkax "github.com/umajibakery/reservations/internal/kafka"
	"github.com/umajibakery/reservations/internal/mailer"
	"github.com/umajibakery/reservations/internal/reservation"
)

// PublicHandler serves the customer-facing flow: browse, cart, submit,
// contact. Nothing here requires a session beyond the cart id.
type PublicHandler struct {
	Catalog  *catalog.Cache
	Carts    *cart.Store
	Producer *kafkax.Producer
	Mailer   *mailer.Client
	Service  string
}

func (h *PublicHandler) Register(r *chi.Mux) {
	r.Get("/products", h.listProducts)
	r.Get("/pickup-options", h.pickupOptions)
	r.Post("/cart", h.createCart)
	r.Get("/cart/{id}", h.getCart)
	r.Post("/cart/{id}/items", h.addItem)
	r.Put("/cart/{id}/items/{productID}", h.setQuantity)
	r.Delete("/cart/{id}/items/{productID}", h.removeItem)
	r.Post("/reservations", h.createReservation)
	r.Post("/contact", h.sendContact)
}

// listProducts projects the catalog for one reservation channel,
// subtracting whatever the caller's cart already holds.
func (h *PublicHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	channel := catalog.Channel(r.URL.Query().Get("type"))
	if !catalog.ValidReservationChannel(channel) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "type must be today or advance"})
		return
	}
	cartQty := map[int]int{}
	if id := r.URL.Query().Get("cart"); id != "" {
		if c, ok := h.Carts.Get(id); ok {
			cartQty = c.Quantities()
		}
	}
	view := inventory.Derive(h.Catalog.Products(), channel, cartQty, r.URL.Query().Get("category"))
	writeJSON(w, http.StatusOK, view)
}

// pickupOptions returns the date and time choices the reservation form
// offers for a channel.
func (h *PublicHandler) pickupOptions(w http.ResponseWriter, r *http.Request) {
	channel := catalog.Channel(r.URL.Query().Get("type"))
	if !catalog.ValidReservationChannel(channel) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "type must be today or advance"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"dates": reservation.AvailableDates(channel, time.Now()),
		"times": reservation.TimeSlots(),
	})
}

func (h *PublicHandler) createCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, map[string]string{"cart_id": h.Carts.Create()})
}

type cartResp struct {
	Lines         []cart.Line `json:"lines"`
	TotalPrice    int         `json:"total_price"`
	TotalQuantity int         `json:"total_quantity"`
}

func (h *PublicHandler) cartOr404(w http.ResponseWriter, r *http.Request) (*cart.Cart, bool) {
	c, ok := h.Carts.Get(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "cart not found"})
		return nil, false
	}
	return c, true
}

func (h *PublicHandler) getCart(w http.ResponseWriter, r *http.Request) {
	c, ok := h.cartOr404(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, cartResp{
		Lines:         c.Lines(),
		TotalPrice:    c.TotalPrice(),
		TotalQuantity: c.TotalQuantity(),
	})
}

type addItemReq struct {
	ProductID int             `json:"product_id"`
	Channel   catalog.Channel `json:"type"`
}

// addItem appends one unit, refusing to exceed the stock still
// available for the channel after the cart's own holdings.
func (h *PublicHandler) addItem(w http.ResponseWriter, r *http.Request) {
	c, ok := h.cartOr404(w, r)
	if !ok {
		return
	}
	var req addItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if !catalog.ValidReservationChannel(req.Channel) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "type must be today or advance"})
		return
	}
	for _, p := range h.Catalog.Products() {
		if p.ID != req.ProductID {
			continue
		}
		if !p.SellsOn(req.Channel) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "product is not offered on this reservation type"})
			return
		}
		if inventory.Available(p, req.Channel, c.Quantity(p.ID)) == 0 {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "no stock left for this item"})
			return
		}
		c.Add(p)
		writeJSON(w, http.StatusOK, cartResp{
			Lines:         c.Lines(),
			TotalPrice:    c.TotalPrice(),
			TotalQuantity: c.TotalQuantity(),
		})
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
}

func (h *PublicHandler) setQuantity(w http.ResponseWriter, r *http.Request) {
	c, ok := h.cartOr404(w, r)
	if !ok {
		return
	}
	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	c.SetQuantity(productID, req.Quantity)
	writeJSON(w, http.StatusOK, cartResp{
		Lines:         c.Lines(),
		TotalPrice:    c.TotalPrice(),
		TotalQuantity: c.TotalQuantity(),
	})
}

func (h *PublicHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	c, ok := h.cartOr404(w, r)
	if !ok {
		return
	}
	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	c.Remove(productID)
	writeJSON(w, http.StatusOK, cartResp{
		Lines:         c.Lines(),
		TotalPrice:    c.TotalPrice(),
		TotalQuantity: c.TotalQuantity(),
	})
}

type createReservationReq struct {
	CartID   string               `json:"cart_id"`
	Channel  catalog.Channel      `json:"type"`
	Date     string               `json:"date"`
	Time     string               `json:"time"`
	Customer reservation.Customer `json:"customer"`
}

type createReservationResp struct {
	Ref         string                  `json:"ref"`
	Reservation reservation.Reservation `json:"reservation"`
}

// createReservation finalizes the cart into an immutable reservation and
// publishes it. The admin registry is not written here.
func (h *PublicHandler) createReservation(w http.ResponseWriter, r *http.Request) {
	var req createReservationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	c, ok := h.Carts.Get(req.CartID)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "cart not found"})
		return
	}

	draft := reservation.Draft{
		Channel:  req.Channel,
		Date:     req.Date,
		Time:     req.Time,
		Customer: req.Customer,
		Lines:    c.Lines(),
	}
	if errs := draft.Validate(time.Now()); len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
		return
	}

	res := draft.Finalize()
	ref := uuid.NewString()
	ev := reservation.Envelope{
		EventID:       uuid.NewString(),
		EventType:     reservation.EventReservationCreated,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: ref,
	}
	ev.Payload = kafkax.MustMarshal(reservation.CreatedPayload{
		Ref:        ref,
		Channel:    res.Channel,
		Date:       res.Date,
		Time:       res.Time,
		Items:      res.Items,
		TotalPrice: res.TotalPrice,
		Customer:   res.Customer,
	})
	h.Producer.Publish(reservation.PartitionKey(ref), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(reservation.EventReservationCreated)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)

	c.Clear()
	writeJSON(w, http.StatusCreated, createReservationResp{Ref: ref, Reservation: res})
}

func (h *PublicHandler) sendContact(w http.ResponseWriter, r *http.Request) {
	var msg mailer.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if errs := msg.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
		return
	}
	if err := h.Mailer.SendContact(r.Context(), msg); err != nil {
		if errors.Is(err, mailer.ErrSendFailed) {
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "message could not be sent, please try again later"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "message could not be sent, please try again later"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
