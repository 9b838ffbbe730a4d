// Package dispatch реализует отправку действий форм на сервер магазина
// и раскладку их исходов по уведомлениям и пересчётам.
package dispatch

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/flugede/storefront-ui/internal/checkout"
	"github.com/flugede/storefront-ui/internal/model"
)

// Сообщения для исходов, по которым сервер не прислал собственного текста.
// Тексты совпадают с оригинальной страницей магазина.
const (
	msgGenericError    = "An error occurred. Please try again."
	msgSubscribeFailed = "Subscription failed. Please try again."
	msgEmptyCoupon     = "Please enter a coupon code first."
)

// StoreClient описывает действия форм, которые принимает сервер магазина.
type StoreClient interface {
	Subscribe(ctx context.Context, email, token string) (*model.ActionResult, error)
	ApplyCoupon(ctx context.Context, code, token string) (*model.ActionResult, error)
	UpdateCartQuantity(ctx context.Context, itemID int64, quantity int, token string) (*model.ActionResult, error)
}

// Notifier показывает пользователю временные уведомления.
type Notifier interface {
	Push(kind model.NotificationKind, message string) uuid.UUID
}

// Recalculator пересчитывает итоговую сумму страницы.
type Recalculator interface {
	Recompute()
}

// PageRefresher полностью перечитывает состояние страницы с сервера.
type PageRefresher interface {
	Refresh(ctx context.Context) error
}

// TokenSource выдаёт действующий токен защиты от подделки запросов.
type TokenSource interface {
	Token() string
}

// FormRenderer управляет полями форм на странице.
type FormRenderer interface {
	ClearSubscribeForm()
}

// Dispatcher отправляет именованные действия форм на сервер и
// превращает их исходы в уведомления, изменение скидки и пересчёт
// либо полную перезагрузку состояния страницы.
type Dispatcher struct {
	client        StoreClient
	notifications Notifier
	fields        *checkout.PriceFields
	calculator    Recalculator
	refresher     PageRefresher
	tokens        TokenSource
	forms         FormRenderer
	logger        *zap.Logger
}

// NewDispatcher создаёт диспетчер действий форм.
func NewDispatcher(
	client StoreClient,
	notifications Notifier,
	fields *checkout.PriceFields,
	calculator Recalculator,
	refresher PageRefresher,
	tokens TokenSource,
	forms FormRenderer,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		client:        client,
		notifications: notifications,
		fields:        fields,
		calculator:    calculator,
		refresher:     refresher,
		tokens:        tokens,
		forms:         forms,
		logger:        logger,
	}
}

// Subscribe отправляет подписку на рассылку. Успех очищает форму и
// показывает сообщение сервера; отказ показывает сообщение сервера или
// запасной текст.
func (d *Dispatcher) Subscribe(ctx context.Context, email string) {
	res, err := d.client.Subscribe(ctx, email, d.tokens.Token())
	if err != nil {
		d.logger.Error("subscribe request failed", zap.Error(err))
		d.notifications.Push(model.NotificationError, msgGenericError)
		return
	}

	if !res.Success {
		message := res.Message
		if message == "" {
			message = msgSubscribeFailed
		}
		d.notifications.Push(model.NotificationError, message)
		return
	}

	d.forms.ClearSubscribeForm()
	d.notifications.Push(model.NotificationSuccess, res.Message)
}

// ApplyCoupon применяет код купона. Пустой код отклоняется на клиенте
// без обращения к серверу. Любой ответ сервера, успех или отказ,
// завершается ровно одним пересчётом итога, чтобы отображаемая сумма
// сразу отражала исход.
func (d *Dispatcher) ApplyCoupon(ctx context.Context, code string) {
	if code == "" {
		d.notifications.Push(model.NotificationWarning, msgEmptyCoupon)
		return
	}

	res, err := d.client.ApplyCoupon(ctx, code, d.tokens.Token())
	if err != nil {
		d.logger.Error("apply coupon request failed", zap.String("code", code), zap.Error(err))
		d.notifications.Push(model.NotificationError, msgGenericError)
		return
	}

	if res.Success {
		d.notifications.Push(model.NotificationSuccess, res.Message)
		d.fields.SetDiscount(res.Discount)
	} else {
		message := res.Message
		if message == "" {
			message = msgGenericError
		}
		d.notifications.Push(model.NotificationError, message)
		d.fields.ResetDiscount()
	}

	d.calculator.Recompute()
}

// UpdateQuantity отправляет новое количество товара в корзине. Успешное
// обновление перечитывает состояние страницы целиком: итоги и доставку
// считает сервер, локально ничего не правится. При отказе сервера
// отображаемое количество не меняется до следующей перезагрузки.
func (d *Dispatcher) UpdateQuantity(ctx context.Context, itemID int64, quantity int) {
	res, err := d.client.UpdateCartQuantity(ctx, itemID, quantity, d.tokens.Token())
	if err != nil {
		d.logger.Error("cart update request failed", zap.Int64("itemID", itemID), zap.Error(err))
		d.notifications.Push(model.NotificationError, msgGenericError)
		return
	}

	if !res.Success {
		message := res.Message
		if message == "" {
			message = msgGenericError
		}
		d.notifications.Push(model.NotificationError, message)
		return
	}

	if err := d.refresher.Refresh(ctx); err != nil {
		d.logger.Error("page refresh failed", zap.Error(err))
		d.notifications.Push(model.NotificationError, msgGenericError)
	}
}
