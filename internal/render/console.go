// Package render содержит консольную проекцию состояния страницы.
package render

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/flugede/storefront-ui/internal/model"
)

// Console печатает состояние страницы в указанный поток. Реализует
// интерфейсы отображения всех координаторов и не хранит состояния:
// что показать, решают владельцы состояния.
type Console struct {
	out io.Writer
}

// NewConsole создаёт консольную проекцию, пишущую в out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// ShowSuggestions печатает список подсказок для запроса.
func (c *Console) ShowSuggestions(result model.SuggestionResult) {
	fmt.Fprintf(c.out, "suggestions for %q:\n", result.Query)
	for _, item := range result.Items {
		fmt.Fprintf(c.out, "  %s  %s  %s\n", item.Name, item.Price.StringFixed(2), item.URL)
	}
}

// HideSuggestions убирает панель подсказок.
func (c *Console) HideSuggestions() {
	fmt.Fprintln(c.out, "suggestions hidden")
}

// ShowNotification печатает уведомление.
func (c *Console) ShowNotification(n model.Notification) {
	fmt.Fprintf(c.out, "[%s] %s\n", n.Kind, n.Message)
}

// FadeNotification начинает затухание уведомления. В консоли переход
// не анимируется.
func (c *Console) FadeNotification(id uuid.UUID) {}

// RemoveNotification убирает уведомление.
func (c *Console) RemoveNotification(id uuid.UUID) {}

// ShowTotal печатает итоговую сумму заказа.
func (c *Console) ShowTotal(formatted string) {
	fmt.Fprintf(c.out, "total: %s\n", formatted)
}

// ClearSubscribeForm очищает форму подписки.
func (c *Console) ClearSubscribeForm() {
	fmt.Fprintln(c.out, "subscribe form cleared")
}
