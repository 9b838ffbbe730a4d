package storeapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/flugede/storefront-ui/internal/model"
)

func TestSearchSuggestions_OK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/search-suggestions/" {
			t.Fatalf("path = %s, want /search-suggestions/", r.URL.Path)
		}
		if q := r.URL.Query().Get("q"); q != "pho" {
			t.Fatalf("q = %q, want %q", q, "pho")
		}

		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"suggestions":[{"id":1,"name":"iPhone 15 Pro Max","price":"1199.00","url":"/product/iphone-15-pro-max/"}]}`)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
	defer ts.Close()

	client := NewClient(ts.URL)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	items, err := client.SearchSuggestions(ctx, "pho")
	if err != nil {
		t.Fatalf("SearchSuggestions error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].Name != "iPhone 15 Pro Max" {
		t.Fatalf("unexpected item: %+v", items[0])
	}
	if !items[0].Price.Equal(decimal.RequireFromString("1199.00")) {
		t.Fatalf("price = %s, want 1199.00", items[0].Price)
	}
}

func TestSearchSuggestions_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewClient(ts.URL)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := client.SearchSuggestions(ctx, "pho"); err == nil {
		t.Fatalf("expected error for status 500")
	}
}

func TestApplyCoupon_SendsFormAndDecodesDiscount(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/apply-coupon/" {
			t.Fatalf("path = %s, want /apply-coupon/", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if code := r.PostFormValue("coupon_code"); code != "WELCOME10" {
			t.Fatalf("coupon_code = %q, want WELCOME10", code)
		}
		if token := r.PostFormValue("csrfmiddlewaretoken"); token != "tok" {
			t.Fatalf("token = %q, want tok", token)
		}

		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"success":true,"message":"Coupon applied successfully!","discount":"10.00"}`)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
	defer ts.Close()

	client := NewClient(ts.URL)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	res, err := client.ApplyCoupon(ctx, "WELCOME10", "tok")
	if err != nil {
		t.Fatalf("ApplyCoupon error: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if !res.Discount.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("discount = %s, want 10.00", res.Discount)
	}
}

func TestApplyCoupon_BusinessRejectionIsNotAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(model.ActionResult{
			Success: false,
			Message: "Invalid coupon code!",
		}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer ts.Close()

	client := NewClient(ts.URL)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	res, err := client.ApplyCoupon(ctx, "BAD", "tok")
	if err != nil {
		t.Fatalf("ApplyCoupon error: %v", err)
	}
	if res.Success {
		t.Fatalf("expected rejection, got %+v", res)
	}
	if res.Message != "Invalid coupon code!" {
		t.Fatalf("message = %q", res.Message)
	}
}

func TestUpdateCartQuantity_PathAndBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cart/update/42/" {
			t.Fatalf("path = %s, want /cart/update/42/", r.URL.Path)
		}
		if q := r.PostFormValue("quantity"); q != "3" {
			t.Fatalf("quantity = %q, want 3", q)
		}

		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"success":true,"message":"Cart updated!"}`)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
	defer ts.Close()

	client := NewClient(ts.URL)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	res, err := client.UpdateCartQuantity(ctx, 42, 3, "tok")
	if err != nil {
		t.Fatalf("UpdateCartQuantity error: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
}

func TestSubscribe_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	client := NewClient(ts.URL)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := client.Subscribe(ctx, "user@example.com", "tok"); err == nil {
		t.Fatalf("expected transport error for closed server")
	}
}

func TestPageState_DecodesFieldsAndToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/page-state/" {
			t.Fatalf("path = %s, want /page-state/", r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"subtotal":"100.00","shipping":"10.00","tax":"5.00","discount":"0","cart_lines":[{"item_id":42,"quantity":2}],"csrf_token":"tok"}`)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
	defer ts.Close()

	client := NewClient(ts.URL)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	state, err := client.PageState(ctx)
	if err != nil {
		t.Fatalf("PageState error: %v", err)
	}
	if !state.Subtotal.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("subtotal = %s, want 100.00", state.Subtotal)
	}
	if state.CSRFToken != "tok" {
		t.Fatalf("token = %q, want tok", state.CSRFToken)
	}
	if len(state.CartLines) != 1 || state.CartLines[0].ItemID != 42 {
		t.Fatalf("unexpected cart lines: %+v", state.CartLines)
	}
}
