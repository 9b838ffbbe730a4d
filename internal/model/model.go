// Package model содержит доменные сущности витрины магазина.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SuggestionItem описывает один товар в подсказках поиска.
type SuggestionItem struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image,omitempty"`
	URL      string          `json:"url"`
}

// SuggestionResult содержит подсказки вместе с запросом, который их породил.
// Запрос нужен для проверки актуальности ответа при отображении.
type SuggestionResult struct {
	Query string
	Items []SuggestionItem
}

// NotificationKind описывает тип уведомления.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
	NotificationWarning NotificationKind = "warning"
	NotificationInfo    NotificationKind = "info"
)

// Notification описывает временное уведомление пользователю.
type Notification struct {
	ID        uuid.UUID
	Kind      NotificationKind
	Message   string
	CreatedAt time.Time
	TTL       time.Duration
}

// CartLine описывает позицию корзины в отображаемом состоянии страницы.
// Авторитетное количество хранит сервер; клиент держит копию для показа.
type CartLine struct {
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

// CouponApplication описывает результат применения купона.
type CouponApplication struct {
	Code           string
	DiscountAmount decimal.Decimal
	Accepted       bool
}

// ActionResult описывает ответ сервера на действие формы.
type ActionResult struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message,omitempty"`
	Discount decimal.Decimal `json:"discount"`
}

// PageState содержит состояние страницы оформления заказа, которое клиент
// восстанавливает при загрузке и полной перезагрузке.
type PageState struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Tax       decimal.Decimal `json:"tax"`
	Discount  decimal.Decimal `json:"discount"`
	CartLines []CartLine      `json:"cart_lines,omitempty"`
	CSRFToken string          `json:"csrf_token"`
}
