// Package checkout содержит состояние ценовых полей страницы оформления
// заказа и проекцию итоговой суммы.
package checkout

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/flugede/storefront-ui/internal/model"
)

// PriceFields хранит четыре независимых ценовых поля страницы. Это
// единственное разделяемое состояние между обработчиками: пишут его
// применение купона и загрузка страницы, читает пересчёт итога.
type PriceFields struct {
	mu       sync.Mutex
	subtotal decimal.Decimal
	shipping decimal.Decimal
	tax      decimal.Decimal
	discount decimal.Decimal
}

// ParseAmount разбирает денежное значение из строки. Пустые и нечисловые
// значения трактуются как ноль.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Load заполняет поля из состояния страницы, полученного с сервера.
func (p *PriceFields) Load(state *model.PageState) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.subtotal = state.Subtotal
	p.shipping = state.Shipping
	p.tax = state.Tax
	p.discount = state.Discount
}

// SetDiscount устанавливает размер скидки.
func (p *PriceFields) SetDiscount(d decimal.Decimal) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.discount = d
}

// ResetDiscount сбрасывает скидку в ноль. Вызывается при отклонении купона.
func (p *PriceFields) ResetDiscount() {
	p.SetDiscount(decimal.Zero)
}

// Snapshot возвращает текущие значения полей.
func (p *PriceFields) Snapshot() (subtotal, shipping, tax, discount decimal.Decimal) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.subtotal, p.shipping, p.tax, p.discount
}

// Total вычисляет итог по четырём полям с округлением до двух знаков.
func Total(subtotal, shipping, tax, discount decimal.Decimal) decimal.Decimal {
	return subtotal.Add(shipping).Add(tax).Sub(discount).Round(2)
}

// TotalDisplay отображает итоговую сумму.
type TotalDisplay interface {
	ShowTotal(formatted string)
}

// Calculator проецирует итоговую сумму из ценовых полей на дисплей.
// Итог нигде не хранится: каждый вызов Recompute выводит его заново.
// Нулевой display означает, что на странице нет элемента итога, и
// пересчёт ничего не делает.
type Calculator struct {
	fields  *PriceFields
	display TotalDisplay
}

// NewCalculator создаёт калькулятор итога над указанными полями.
func NewCalculator(fields *PriceFields, display TotalDisplay) *Calculator {
	return &Calculator{
		fields:  fields,
		display: display,
	}
}

// Recompute перечитывает поля и выводит итог, округлённый до двух знаков.
// Повторные вызовы без изменения полей дают то же значение.
func (c *Calculator) Recompute() {
	if c.display == nil {
		return
	}

	subtotal, shipping, tax, discount := c.fields.Snapshot()
	c.display.ShowTotal(Total(subtotal, shipping, tax, discount).StringFixed(2))
}
