package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	cartstore "storefront-cart/internal/cart"
	"storefront-cart/internal/domain"
	"storefront-cart/internal/repository/catalog"
	cartsvc "storefront-cart/internal/service/cart"
	"storefront-cart/internal/storage"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := catalog.NewMemory(
		domain.Product{ID: "p1", Name: "Lamp", PriceCents: 2500, Category: "Home"},
		domain.Product{ID: "p2", Name: "Cable", PriceCents: 700, Category: "Electronics"},
	)
	manager := cartstore.NewManager(storage.NewMemory(), zerolog.Nop())
	svc := cartsvc.New(manager, repo, zerolog.Nop())

	return buildRouter(zerolog.Nop(), nil, Deps{CartSvc: svc, Catalog: repo})
}

func doJSON(t *testing.T, router *gin.Engine, method, path, session string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set(sessionHeader, session)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type cartViewBody struct {
	Items      []domain.LineItem `json:"items"`
	TotalCents int64             `json:"totalCents"`
	ItemCount  int               `json:"itemCount"`
	Loading    bool              `json:"loading"`
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) cartViewBody {
	t.Helper()
	var view cartViewBody
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v (%s)", err, rec.Body.String())
	}
	return view
}

func TestHealthz(t *testing.T) {
	router := testRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status %d", rec.Code)
	}
}

func TestReadyzWithoutDB(t *testing.T) {
	router := testRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/readyz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("readyz status %d", rec.Code)
	}
}

func TestCreateSession(t *testing.T) {
	router := testRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/sessions", "", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("sessions status %d", rec.Code)
	}
	var body struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.SessionID == "" {
		t.Fatalf("empty session id")
	}
}

func TestCartRequiresSessionHeader(t *testing.T) {
	router := testRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/cart", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without session header, got %d", rec.Code)
	}
}

func TestCartFlow(t *testing.T) {
	router := testRouter(t)
	const session = "sess-flow"

	rec := doJSON(t, router, http.MethodGet, "/cart", session, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get empty cart status %d", rec.Code)
	}
	view := decodeView(t, rec)
	if view.ItemCount != 0 || len(view.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", view)
	}

	rec = doJSON(t, router, http.MethodPost, "/cart/items", session, map[string]interface{}{"productId": "p1", "quantity": 2})
	if rec.Code != http.StatusOK {
		t.Fatalf("add status %d: %s", rec.Code, rec.Body.String())
	}
	view = decodeView(t, rec)
	if view.TotalCents != 5000 || view.ItemCount != 2 {
		t.Fatalf("unexpected view after add %+v", view)
	}

	// Quantity defaults to 1 when omitted.
	rec = doJSON(t, router, http.MethodPost, "/cart/items", session, map[string]interface{}{"productId": "p2"})
	if rec.Code != http.StatusOK {
		t.Fatalf("add default qty status %d", rec.Code)
	}
	view = decodeView(t, rec)
	if view.TotalCents != 5700 || view.ItemCount != 3 {
		t.Fatalf("unexpected view after default add %+v", view)
	}

	rec = doJSON(t, router, http.MethodPatch, "/cart/items/p1", session, map[string]interface{}{"quantity": 1})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status %d", rec.Code)
	}
	view = decodeView(t, rec)
	if view.TotalCents != 3200 || view.ItemCount != 2 {
		t.Fatalf("unexpected view after patch %+v", view)
	}

	rec = doJSON(t, router, http.MethodDelete, "/cart/items/p2", session, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete item status %d", rec.Code)
	}
	view = decodeView(t, rec)
	if view.TotalCents != 2500 || view.ItemCount != 1 {
		t.Fatalf("unexpected view after remove %+v", view)
	}

	rec = doJSON(t, router, http.MethodDelete, "/cart", session, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear status %d", rec.Code)
	}
	view = decodeView(t, rec)
	if view.TotalCents != 0 || view.ItemCount != 0 || len(view.Items) != 0 {
		t.Fatalf("unexpected view after clear %+v", view)
	}
}

func TestAddItemValidation(t *testing.T) {
	router := testRouter(t)
	const session = "sess-val"

	rec := doJSON(t, router, http.MethodPost, "/cart/items", session, map[string]interface{}{"productId": "p1", "quantity": 0})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero quantity, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/cart/items", session, map[string]interface{}{"quantity": 1})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing productId, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/cart/items", session, map[string]interface{}{"productId": "ghost", "quantity": 1})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", rec.Code)
	}
}

func TestSessionIsolationOverHTTP(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/cart/items", "sess-a", map[string]interface{}{"productId": "p1", "quantity": 1})
	if rec.Code != http.StatusOK {
		t.Fatalf("add status %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/cart", "sess-b", nil)
	view := decodeView(t, rec)
	if view.ItemCount != 0 {
		t.Fatalf("cart leaked across sessions: %+v", view)
	}
}

func TestCatalogEndpoints(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/products", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("products status %d", rec.Code)
	}
	var list struct {
		Products []domain.Product `json:"products"`
		Count    int              `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode products: %v", err)
	}
	if list.Count != 2 {
		t.Fatalf("expected 2 products, got %+v", list)
	}

	rec = doJSON(t, router, http.MethodGet, "/products?category=Home", "", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode filtered products: %v", err)
	}
	if list.Count != 1 || list.Products[0].ID != "p1" {
		t.Fatalf("unexpected filtered products %+v", list)
	}

	rec = doJSON(t, router, http.MethodGet, "/products/p2", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("product status %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/products/ghost", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/categories", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("categories status %d", rec.Code)
	}
	var cats struct {
		Categories []string `json:"categories"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &cats); err != nil {
		t.Fatalf("decode categories: %v", err)
	}
	if len(cats.Categories) != 2 {
		t.Fatalf("unexpected categories %+v", cats)
	}
}
