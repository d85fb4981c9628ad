//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func createProduct(t *testing.T, name string, price float64, sizes ...map[string]any) string {
	t.Helper()

	resp, raw := postJSON(t, "/api/v1/products", map[string]any{
		"name":  name,
		"price": price,
		"sizes": sizes,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create product: status %d, body %s", resp.StatusCode, raw)
	}
	return mustUnmarshal[idResponse](t, raw).ID
}

func TestCreateProduct(t *testing.T) {
	id := createProduct(t, "Integration Hoodie", 59.99,
		map[string]any{"size": "small", "quantity": 5},
		map[string]any{"size": "large", "quantity": 3},
	)
	if id == "" {
		t.Fatal("expected non-empty product id")
	}
}

func TestCreateProduct_DuplicateSizes(t *testing.T) {
	resp, raw := postJSON(t, "/api/v1/products", map[string]any{
		"name":  "Broken Hoodie",
		"price": 10,
		"sizes": []map[string]any{
			{"size": "small", "quantity": 1},
			{"size": "small", "quantity": 2},
		},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.StatusCode, raw)
	}
	errResp := mustUnmarshal[errorResponse](t, raw)
	if errResp.Detail == "" {
		t.Fatal("expected error detail")
	}
}

func TestListProducts_FilterAndPaginate(t *testing.T) {
	// Unique marker so this test is isolated from other tests' products.
	marker := fmt.Sprintf("pg-%d", len(t.Name()))
	for i := range 3 {
		createProduct(t, fmt.Sprintf("%s shirt %d", marker, i), 10.0+float64(i),
			map[string]any{"size": "zz-filter", "quantity": i})
	}

	resp, raw := getJSON(t, "/api/v1/products?name="+marker+"&limit=2&offset=0")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list products: status %d, body %s", resp.StatusCode, raw)
	}
	list := mustUnmarshal[productListResponse](t, raw)

	if len(list.Data) != 2 {
		t.Fatalf("expected 2 products, got %d", len(list.Data))
	}
	if list.Page.Next == nil || *list.Page.Next != 2 {
		t.Fatalf("expected next=2, got %v", list.Page.Next)
	}
	if list.Page.Previous != nil {
		t.Fatalf("expected no previous, got %v", *list.Page.Previous)
	}
	if list.Page.Limit != 2 {
		t.Fatalf("expected limit=2, got %d", list.Page.Limit)
	}

	resp, raw = getJSON(t, "/api/v1/products?name="+marker+"&limit=2&offset=2")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("second page: status %d", resp.StatusCode)
	}
	list = mustUnmarshal[productListResponse](t, raw)
	if len(list.Data) != 1 {
		t.Fatalf("expected 1 product on last page, got %d", len(list.Data))
	}
	if list.Page.Next != nil {
		t.Fatalf("expected no next on last page, got %v", *list.Page.Next)
	}
	if list.Page.Previous == nil || *list.Page.Previous != 0 {
		t.Fatalf("expected previous=0, got %v", list.Page.Previous)
	}
}

func TestListProducts_SizeFilter(t *testing.T) {
	createProduct(t, "Size Filter Special", 12.5,
		map[string]any{"size": "unique-size-xyz", "quantity": 1})

	resp, raw := getJSON(t, "/api/v1/products?size=unique-size-xyz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, raw)
	}
	list := mustUnmarshal[productListResponse](t, raw)
	if len(list.Data) != 1 {
		t.Fatalf("expected exactly 1 product, got %d", len(list.Data))
	}
	if list.Data[0].Name != "Size Filter Special" {
		t.Fatalf("unexpected product %q", list.Data[0].Name)
	}
}

func TestListProducts_InvalidLimit(t *testing.T) {
	for _, q := range []string{"limit=0", "limit=101", "offset=-1", "limit=abc"} {
		resp, _ := getJSON(t, "/api/v1/products?"+q)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", q, resp.StatusCode)
		}
	}
}
