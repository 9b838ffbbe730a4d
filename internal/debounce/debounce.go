// Package debounce реализует отложенный запуск действий с подавлением повторов.
package debounce

import (
	"sync"
	"time"
)

// Debouncer откладывает запуск действия до паузы во входных событиях.
// Для каждого ключа в ожидании находится не более одного действия:
// повторное планирование по тому же ключу сбрасывает таймер, а не
// ставит второе срабатывание в очередь.
type Debouncer struct {
	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

// New создаёт новый Debouncer.
func New() *Debouncer {
	return &Debouncer{timers: make(map[string]*time.Timer)}
}

// Schedule отменяет ранее запланированное по ключу key действие, которое
// ещё не сработало, и планирует запуск action через delay. Действие
// выполняется в горутине таймера.
func (d *Debouncer) Schedule(key string, delay time.Duration, action func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if t, ok := d.timers[key]; ok {
		t.Stop()
	}

	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		d.mu.Lock()
		// Срабатывает только таймер, который всё ещё числится за ключом:
		// вытесненный более поздним планированием не запускает действие.
		current := d.timers[key] == t
		if current {
			delete(d.timers, key)
		}
		stopped := d.stopped
		d.mu.Unlock()

		if !current || stopped {
			return
		}
		action()
	})
	d.timers[key] = t
}

// Cancel отменяет запланированное по ключу действие, если оно ещё не сработало.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[key]; ok {
		t.Stop()
		delete(d.timers, key)
	}
}

// Stop отменяет все запланированные действия. После остановки новые
// вызовы Schedule игнорируются.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}
