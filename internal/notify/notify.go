// Package notify реализует очередь временных уведомлений.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flugede/storefront-ui/internal/model"
)

const (
	defaultTTL  = 3000 * time.Millisecond
	defaultFade = 300 * time.Millisecond
)

// Renderer отображает уведомления. Реализация отвечает только за
// визуальную проекцию и не хранит собственного состояния очереди.
type Renderer interface {
	ShowNotification(n model.Notification)
	FadeNotification(id uuid.UUID)
	RemoveNotification(id uuid.UUID)
}

// Queue хранит видимый набор уведомлений. Каждое уведомление живёт по
// собственному таймеру: истечение одного не затрагивает остальные.
// Снятие двухфазное: сначала затухание, затем удаление из модели, чтобы
// проекция не сдвигала соседние уведомления до конца перехода.
type Queue struct {
	renderer Renderer
	ttl      time.Duration
	fade     time.Duration

	mu      sync.Mutex
	visible []model.Notification
	timers  map[uuid.UUID]*time.Timer
	stopped bool
}

// NewQueue создаёт очередь уведомлений со стандартными временем жизни
// и длительностью затухания.
func NewQueue(renderer Renderer) *Queue {
	return NewQueueWithTimings(renderer, defaultTTL, defaultFade)
}

// NewQueueWithTimings создаёт очередь с указанными временем жизни и
// длительностью затухания.
func NewQueueWithTimings(renderer Renderer, ttl, fade time.Duration) *Queue {
	return &Queue{
		renderer: renderer,
		ttl:      ttl,
		fade:     fade,
		timers:   make(map[uuid.UUID]*time.Timer),
	}
}

// Push добавляет уведомление в видимый набор и взводит таймер его снятия.
// Одинаковые сообщения не склеиваются: каждое уведомление живёт отдельно.
func (q *Queue) Push(kind model.NotificationKind, message string) uuid.UUID {
	n := model.Notification{
		ID:        uuid.New(),
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now(),
		TTL:       q.ttl,
	}

	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return uuid.Nil
	}
	q.visible = append(q.visible, n)
	q.timers[n.ID] = time.AfterFunc(q.ttl, func() { q.expire(n.ID) })
	q.mu.Unlock()

	q.renderer.ShowNotification(n)
	return n.ID
}

// Dismiss немедленно снимает уведомление, не дожидаясь истечения
// времени жизни.
func (q *Queue) Dismiss(id uuid.UUID) {
	q.mu.Lock()
	t, ok := q.timers[id]
	q.mu.Unlock()

	if !ok {
		return
	}
	t.Stop()
	q.remove(id)
}

// Active возвращает снимок видимых уведомлений в порядке добавления.
// Затухающее уведомление остаётся видимым до конца перехода.
func (q *Queue) Active() []model.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]model.Notification, len(q.visible))
	copy(out, q.visible)
	return out
}

// Stop останавливает все таймеры очереди. Висящие уведомления остаются
// в модели, новые не принимаются.
func (q *Queue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.stopped = true
	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
}

// expire начинает затухание и взводит таймер окончательного удаления.
func (q *Queue) expire(id uuid.UUID) {
	q.mu.Lock()
	if _, ok := q.timers[id]; !ok || q.stopped {
		q.mu.Unlock()
		return
	}
	q.timers[id] = time.AfterFunc(q.fade, func() { q.remove(id) })
	q.mu.Unlock()

	q.renderer.FadeNotification(id)
}

func (q *Queue) remove(id uuid.UUID) {
	q.mu.Lock()
	if _, ok := q.timers[id]; !ok {
		q.mu.Unlock()
		return
	}
	delete(q.timers, id)
	for i, n := range q.visible {
		if n.ID == id {
			q.visible = append(q.visible[:i], q.visible[i+1:]...)
			break
		}
	}
	q.mu.Unlock()

	q.renderer.RemoveNotification(id)
}
