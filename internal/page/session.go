// Package page связывает состояние страницы витрины с сервером магазина.
package page

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/flugede/storefront-ui/internal/checkout"
	"github.com/flugede/storefront-ui/internal/model"
)

// StateLoader запрашивает состояние страницы у сервера магазина.
type StateLoader interface {
	PageState(ctx context.Context) (*model.PageState, error)
}

// Session владеет состоянием страницы оформления заказа: ценовыми
// полями, копией корзины и токеном защиты от подделки запросов.
// Состояние не переживает сессию и целиком восстанавливается с сервера
// при загрузке и каждой полной перезагрузке.
type Session struct {
	loader     StateLoader
	fields     *checkout.PriceFields
	calculator *checkout.Calculator
	logger     *zap.Logger

	mu    sync.Mutex
	token string
	lines []model.CartLine
}

// NewSession создаёт сессию страницы над указанными полями и калькулятором.
func NewSession(loader StateLoader, fields *checkout.PriceFields, calculator *checkout.Calculator, logger *zap.Logger) *Session {
	return &Session{
		loader:     loader,
		fields:     fields,
		calculator: calculator,
		logger:     logger,
	}
}

// Refresh перечитывает состояние страницы с сервера, заменяет локальную
// копию целиком и пересчитывает итог. Это аналог полной перезагрузки
// страницы: ответ сервера считается единственным источником истины.
func (s *Session) Refresh(ctx context.Context) error {
	state, err := s.loader.PageState(ctx)
	if err != nil {
		return fmt.Errorf("load page state: %w", err)
	}

	s.fields.Load(state)

	s.mu.Lock()
	s.token = state.CSRFToken
	s.lines = append([]model.CartLine(nil), state.CartLines...)
	s.mu.Unlock()

	s.logger.Info("page state refreshed", zap.Int("cartLines", len(state.CartLines)))

	s.calculator.Recompute()
	return nil
}

// Token возвращает действующий токен защиты от подделки запросов.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// CartLines возвращает отображаемую копию позиций корзины.
func (s *Session) CartLines() []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.CartLine(nil), s.lines...)
}
