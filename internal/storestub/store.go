// Package storestub реализует заглушку сервера магазина в памяти.
// Она отвечает по контрактам настоящего сервера и нужна для локального
// запуска и сквозной проверки клиентской части; данные живут до
// перезапуска процесса.
package storestub

import (
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/flugede/storefront-ui/internal/model"
)

// maxSuggestions — предел количества подсказок в одном ответе.
const maxSuggestions = 5

// Product описывает товар каталога заглушки.
type Product struct {
	ID    int64
	Name  string
	Price decimal.Decimal
	Image string
	URL   string
	Stock int
}

// Coupon описывает купон заглушки.
type Coupon struct {
	Code        string
	Discount    decimal.Decimal
	MinPurchase decimal.Decimal
	Active      bool
}

// Store хранит данные заглушки в памяти.
type Store struct {
	mu          sync.Mutex
	products    []Product
	coupons     map[string]Coupon
	cart        map[int64]int
	discount    decimal.Decimal
	subscribers map[string]struct{}
}

// NewStore создаёт заглушку с демонстрационным каталогом, корзиной
// и набором купонов.
func NewStore() *Store {
	products := []Product{
		{ID: 1, Name: "iPhone 15 Pro Max", Price: decimal.RequireFromString("1199.00"), Image: "/media/iphone-15-pro-max.jpg", URL: "/product/iphone-15-pro-max/", Stock: 10},
		{ID: 2, Name: "Samsung Galaxy S24 Ultra", Price: decimal.RequireFromString("1099.00"), Image: "/media/galaxy-s24-ultra.jpg", URL: "/product/samsung-galaxy-s24-ultra/", Stock: 8},
		{ID: 3, Name: "OnePlus 12", Price: decimal.RequireFromString("699.00"), URL: "/product/oneplus-12/", Stock: 15},
		{ID: 4, Name: "MacBook Pro 14", Price: decimal.RequireFromString("1999.00"), Image: "/media/macbook-pro-14.jpg", URL: "/product/macbook-pro-14/", Stock: 5},
		{ID: 5, Name: "Sony WH-1000XM5", Price: decimal.RequireFromString("349.00"), URL: "/product/sony-wh-1000xm5/", Stock: 20},
		{ID: 6, Name: "Smartwatch Series 9", Price: decimal.RequireFromString("399.00"), URL: "/product/smartwatch-series-9/", Stock: 12},
	}

	coupons := map[string]Coupon{
		"WELCOME10": {Code: "WELCOME10", Discount: decimal.RequireFromString("10.00"), MinPurchase: decimal.RequireFromString("50.00"), Active: true},
		"SAVE50":    {Code: "SAVE50", Discount: decimal.RequireFromString("50.00"), MinPurchase: decimal.RequireFromString("500.00"), Active: true},
		"EXPIRED20": {Code: "EXPIRED20", Discount: decimal.RequireFromString("20.00"), Active: false},
	}

	return &Store{
		products: products,
		coupons:  coupons,
		cart: map[int64]int{
			1: 1,
			5: 2,
		},
		discount:    decimal.Zero,
		subscribers: make(map[string]struct{}),
	}
}

// SearchProducts возвращает товары, имя которых содержит запрос, не
// больше maxSuggestions. Запросы короче двух символов не ищутся.
func (s *Store) SearchProducts(query string) []model.SuggestionItem {
	if len([]rune(query)) < 2 {
		return nil
	}

	needle := strings.ToLower(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.SuggestionItem
	for _, p := range s.products {
		if !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		out = append(out, model.SuggestionItem{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			ImageURL: p.Image,
			URL:      p.URL,
		})
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

// Subscribe записывает адрес в список рассылки. Повторная подписка не
// считается ошибкой.
func (s *Store) Subscribe(email string) bool {
	if !strings.Contains(email, "@") {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribers[email] = struct{}{}
	return true
}

// ApplyCoupon применяет купон к текущей корзине. Второе значение при
// отклонении содержит причину отказа. Отклонённый купон сбрасывает
// скидку.
func (s *Store) ApplyCoupon(code string) (model.CouponApplication, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	coupon, ok := s.coupons[code]
	if !ok {
		s.discount = decimal.Zero
		return model.CouponApplication{Code: code}, "Invalid coupon code!"
	}

	if !coupon.Active || s.subtotalLocked().LessThan(coupon.MinPurchase) {
		s.discount = decimal.Zero
		return model.CouponApplication{Code: code}, "Coupon is not valid or minimum purchase amount not met!"
	}

	s.discount = coupon.Discount
	return model.CouponApplication{
		Code:           code,
		DiscountAmount: coupon.Discount,
		Accepted:       true,
	}, ""
}

// UpdateQuantity меняет количество товара в корзине. Количество должно
// быть положительным и не превышать остаток на складе.
func (s *Store) UpdateQuantity(itemID int64, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cart[itemID]; !ok {
		return false
	}

	product := s.productLocked(itemID)
	if product == nil || quantity <= 0 || quantity > product.Stock {
		return false
	}

	s.cart[itemID] = quantity
	return true
}

// PageState собирает снимок страницы оформления заказа: суммы считает
// только сервер, клиент их не выводит сам.
func (s *Store) PageState() model.PageState {
	s.mu.Lock()
	defer s.mu.Unlock()

	subtotal := s.subtotalLocked()

	shipping := decimal.Zero
	if subtotal.IsPositive() && subtotal.LessThan(decimal.RequireFromString("500")) {
		shipping = decimal.RequireFromString("50.00")
	}

	tax := subtotal.Mul(decimal.RequireFromString("0.18")).Round(2)

	lines := make([]model.CartLine, 0, len(s.cart))
	for id, qty := range s.cart {
		lines = append(lines, model.CartLine{ItemID: id, Quantity: qty})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ItemID < lines[j].ItemID })

	return model.PageState{
		Subtotal:  subtotal,
		Shipping:  shipping,
		Tax:       tax,
		Discount:  s.discount,
		CartLines: lines,
	}
}

func (s *Store) subtotalLocked() decimal.Decimal {
	subtotal := decimal.Zero
	for id, qty := range s.cart {
		if p := s.productLocked(id); p != nil {
			subtotal = subtotal.Add(p.Price.Mul(decimal.NewFromInt(int64(qty))))
		}
	}
	return subtotal
}

func (s *Store) productLocked(id int64) *Product {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i]
		}
	}
	return nil
}
