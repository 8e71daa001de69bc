package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sabor/restaurant-orders/internal/core/domain"
)

type stubCatalog struct {
	products []domain.Product
	err      error
}

func (s *stubCatalog) List(context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubCatalog) FindByIDs(context.Context, []string) ([]domain.Product, error) {
	return s.products, s.err
}

func TestCatalogHandler_List(t *testing.T) {
	e := newEcho()
	stub := &stubCatalog{products: []domain.Product{
		{ID: "1", Name: "Pizza Margherita", Price: decimal.RequireFromString("35.00"), Category: "Pizza"},
		{ID: "3", Name: "Suco de Laranja", Price: decimal.RequireFromString("8.00"), Category: "Bebida"},
	}}
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/products", nil), rec)

	if err := NewCatalogHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []productResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0].Price != 35 || resp[1].Category != "Bebida" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestCatalogHandler_List_Error(t *testing.T) {
	e := newEcho()
	boom := errors.New("store down")
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/products", nil), httptest.NewRecorder())

	if err := NewCatalogHandler(&stubCatalog{err: boom}).List(c); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}
