// Package suggest координирует загрузку и показ подсказок поиска.
package suggest

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/flugede/storefront-ui/internal/model"
)

// MinQueryLength — минимальная длина запроса, при которой показываются
// подсказки. Более короткий ввод немедленно скрывает панель.
const MinQueryLength = 2

const debounceKey = "search"

// Searcher описывает контракт поиска подсказок на сервере магазина.
type Searcher interface {
	SearchSuggestions(ctx context.Context, query string) ([]model.SuggestionItem, error)
}

// Scheduler откладывает запуск действия до паузы во вводе.
type Scheduler interface {
	Schedule(key string, delay time.Duration, action func())
	Cancel(key string)
}

// Renderer отображает панель подсказок.
type Renderer interface {
	ShowSuggestions(result model.SuggestionResult)
	HideSuggestions()
}

// Coordinator управляет жизненным циклом подсказок: откладывает запрос
// до паузы в наборе, отбрасывает устаревшие ответы и скрывает панель
// при ошибках, пустом результате и коротком вводе.
type Coordinator struct {
	searcher  Searcher
	scheduler Scheduler
	renderer  Renderer
	logger    *zap.Logger
	delay     time.Duration

	mu    sync.Mutex
	query string
}

// NewCoordinator создаёт координатор подсказок с указанной задержкой
// перед запросом.
func NewCoordinator(searcher Searcher, scheduler Scheduler, renderer Renderer, logger *zap.Logger, delay time.Duration) *Coordinator {
	return &Coordinator{
		searcher:  searcher,
		scheduler: scheduler,
		renderer:  renderer,
		logger:    logger,
		delay:     delay,
	}
}

// Input обрабатывает очередное значение поискового поля. Ввод короче
// MinQueryLength отменяет запланированный запрос и скрывает панель без
// задержки; остальной откладывается на delay и приводит к запросу.
func (c *Coordinator) Input(ctx context.Context, text string) {
	c.mu.Lock()
	c.query = text
	c.mu.Unlock()

	if len([]rune(text)) < MinQueryLength {
		c.scheduler.Cancel(debounceKey)
		c.renderer.HideSuggestions()
		return
	}

	c.scheduler.Schedule(debounceKey, c.delay, func() {
		c.fetch(ctx, text)
	})
}

// DismissOutside скрывает панель по щелчку вне её контейнера.
func (c *Coordinator) DismissOutside() {
	c.renderer.HideSuggestions()
}

// Select обрабатывает выбор подсказки: панель скрывается один раз, без
// повторного срабатывания обработчика щелчка вне контейнера.
// Возвращается адрес выбранного товара.
func (c *Coordinator) Select(item model.SuggestionItem) string {
	c.renderer.HideSuggestions()
	return item.URL
}

// fetch выполняет запрос и показывает результат, если породивший его
// запрос всё ещё совпадает с текущим вводом. Устаревший ответ
// отбрасывается молча независимо от порядка прихода ответов.
func (c *Coordinator) fetch(ctx context.Context, query string) {
	items, err := c.searcher.SearchSuggestions(ctx, query)
	if err != nil {
		// Ошибка поиска не показывается пользователю: панель скрывается.
		c.logger.Debug("search suggestions failed", zap.String("query", query), zap.Error(err))
		if c.isCurrent(query) {
			c.renderer.HideSuggestions()
		}
		return
	}

	if !c.isCurrent(query) {
		return
	}

	if len(items) == 0 {
		c.renderer.HideSuggestions()
		return
	}

	c.renderer.ShowSuggestions(model.SuggestionResult{Query: query, Items: items})
}

func (c *Coordinator) isCurrent(query string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query == query
}
