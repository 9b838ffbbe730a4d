// Package main запускает консольную сессию витрины магазина.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/flugede/storefront-ui/internal/checkout"
	"github.com/flugede/storefront-ui/internal/config"
	"github.com/flugede/storefront-ui/internal/debounce"
	"github.com/flugede/storefront-ui/internal/dispatch"
	"github.com/flugede/storefront-ui/internal/notify"
	"github.com/flugede/storefront-ui/internal/page"
	"github.com/flugede/storefront-ui/internal/render"
	"github.com/flugede/storefront-ui/internal/storeapi"
	"github.com/flugede/storefront-ui/internal/suggest"
)

type app struct {
	suggestions *suggest.Coordinator
	dispatcher  *dispatch.Dispatcher
	calculator  *checkout.Calculator
	session     *page.Session
	out         io.Writer
}

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	client := storeapi.NewClient(cfg.StoreAddress)
	console := render.NewConsole(os.Stdout)

	fields := &checkout.PriceFields{}
	calculator := checkout.NewCalculator(fields, console)
	session := page.NewSession(client, fields, calculator, logger)

	queue := notify.NewQueue(console)
	defer queue.Stop()

	debouncer := debounce.New()
	defer debouncer.Stop()

	suggestions := suggest.NewCoordinator(client, debouncer, console, logger, cfg.DebounceInterval)
	dispatcher := dispatch.NewDispatcher(client, queue, fields, calculator, session, session, console, logger)

	a := &app{
		suggestions: suggestions,
		dispatcher:  dispatcher,
		calculator:  calculator,
		session:     session,
		out:         os.Stdout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Начальная загрузка страницы: состояние целиком приходит с сервера.
	if err := session.Refresh(ctx); err != nil {
		sugar.Warnw("initial page load failed", "error", err.Error())
	}

	lines := make(chan string)

	g, ctx := errgroup.WithContext(ctx)

	// Чтение команд из стандартного ввода.
	g.Go(func() error {
		defer close(lines)

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return nil
			}
		}
		return scanner.Err()
	})

	// Основной цикл сессии.
	g.Go(func() error {
		sugar.Infow("storefront session started", "store", cfg.StoreAddress)
		a.printHelp()

		for {
			select {
			case <-ctx.Done():
				return nil
			case line, ok := <-lines:
				if !ok {
					return nil
				}
				if a.handle(ctx, line) {
					stop()
					return nil
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("session terminated with error", "error", err)
	}
}

// handle разбирает одну команду сессии. Возвращает true, когда сессию
// пора завершать.
func (a *app) handle(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}

	switch parts[0] {
	case "search":
		// Каждая команда search соответствует одному событию ввода в
		// поисковое поле.
		a.suggestions.Input(ctx, strings.TrimSpace(strings.TrimPrefix(line, "search")))

	case "dismiss":
		a.suggestions.DismissOutside()

	case "subscribe":
		if len(parts) != 2 {
			fmt.Fprintln(a.out, "usage: subscribe <email>")
			return false
		}
		a.dispatcher.Subscribe(ctx, parts[1])

	case "coupon":
		code := ""
		if len(parts) > 1 {
			code = parts[1]
		}
		a.dispatcher.ApplyCoupon(ctx, code)

	case "qty":
		if len(parts) != 3 {
			fmt.Fprintln(a.out, "usage: qty <itemID> <quantity>")
			return false
		}
		itemID, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			fmt.Fprintln(a.out, "usage: qty <itemID> <quantity>")
			return false
		}
		quantity, err := strconv.Atoi(parts[2])
		if err != nil {
			fmt.Fprintln(a.out, "usage: qty <itemID> <quantity>")
			return false
		}
		a.dispatcher.UpdateQuantity(ctx, itemID, quantity)

	case "cart":
		for _, line := range a.session.CartLines() {
			fmt.Fprintf(a.out, "item %d x%d\n", line.ItemID, line.Quantity)
		}

	case "total":
		a.calculator.Recompute()

	case "reload":
		if err := a.session.Refresh(ctx); err != nil {
			fmt.Fprintf(a.out, "reload failed: %v\n", err)
		}

	case "quit", "exit":
		return true

	default:
		a.printHelp()
	}

	return false
}

func (a *app) printHelp() {
	fmt.Fprintln(a.out, `commands:
  search <text>        type into the search box
  dismiss              click outside the suggestion panel
  subscribe <email>    submit the newsletter form
  coupon [code]        apply a coupon at checkout
  qty <itemID> <n>     change a cart line quantity
  cart                 show the displayed cart lines
  total                recompute the displayed total
  reload               reload page state from the server
  quit                 end the session`)
}
