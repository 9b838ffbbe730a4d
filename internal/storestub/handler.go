package storestub

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/flugede/storefront-ui/internal/middleware"
	"github.com/flugede/storefront-ui/internal/model"
)

// Сообщения ответов заглушки. Тексты совпадают с настоящим сервером.
const (
	msgSubscribed    = "Subscribed successfully!"
	msgCouponApplied = "Coupon applied successfully!"
	msgCartUpdated   = "Cart updated!"
	msgBadQuantity   = "Invalid quantity!"
)

// Handler реализует HTTP-обработчики заглушки сервера магазина.
type Handler struct {
	store  *Store
	logger *zap.Logger
	csrf   *middleware.CSRFMiddleware
}

// NewHandler создаёт новый экземпляр обработчика заглушки.
func NewHandler(store *Store, logger *zap.Logger, csrf *middleware.CSRFMiddleware) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
		csrf:   csrf,
	}
}

type suggestionsResponse struct {
	Suggestions []model.SuggestionItem `json:"suggestions"`
}

// SearchSuggestions возвращает подсказки поиска по параметру q.
// Короткий запрос даёт пустой список, а не ошибку.
func (h *Handler) SearchSuggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	items := h.store.SearchProducts(query)
	if items == nil {
		items = []model.SuggestionItem{}
	}

	h.writeJSON(w, suggestionsResponse{Suggestions: items})
}

// Subscribe оформляет подписку на рассылку.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")

	if !h.store.Subscribe(email) {
		h.writeJSON(w, model.ActionResult{Success: false})
		return
	}

	h.writeJSON(w, model.ActionResult{Success: true, Message: msgSubscribed})
}

// ApplyCoupon применяет купон к корзине.
func (h *Handler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	code := r.PostFormValue("coupon_code")

	application, reason := h.store.ApplyCoupon(code)
	if !application.Accepted {
		h.writeJSON(w, model.ActionResult{Success: false, Message: reason})
		return
	}

	h.writeJSON(w, model.ActionResult{
		Success:  true,
		Message:  msgCouponApplied,
		Discount: application.DiscountAmount,
	})
}

// UpdateCart меняет количество товара в корзине.
func (h *Handler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	quantity, err := strconv.Atoi(r.PostFormValue("quantity"))
	if err != nil {
		h.writeJSON(w, model.ActionResult{Success: false, Message: msgBadQuantity})
		return
	}

	if !h.store.UpdateQuantity(itemID, quantity) {
		h.writeJSON(w, model.ActionResult{Success: false, Message: msgBadQuantity})
		return
	}

	h.writeJSON(w, model.ActionResult{Success: true, Message: msgCartUpdated})
}

// PageState возвращает снимок страницы оформления заказа вместе со
// свежим токеном защиты от подделки запросов.
func (h *Handler) PageState(w http.ResponseWriter, r *http.Request) {
	state := h.store.PageState()
	state.CSRFToken = h.csrf.Issue()

	h.writeJSON(w, state)
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
