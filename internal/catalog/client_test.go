package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillium/salescope/internal/common"
)

func TestFetchProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"products": [
				{"id": 1, "title": "iPhone 9", "category": "smartphones", "brand": "Apple", "price": 549},
				{"id": 2, "title": "Laptop Pro", "category": "laptops", "brand": "Acme", "price": 1499.5}
			],
			"total": 2
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 100, 5*time.Second)
	products, err := client.FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, "iPhone 9", products[0].Title)
	assert.Equal(t, "smartphones", products[0].Category)
	assert.Equal(t, "Apple", products[0].Brand)
	assert.Equal(t, 1499.5, products[1].Price)
}

func TestFetchProductsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 100, 5*time.Second)
	products, err := client.FetchProducts(context.Background())
	require.ErrorIs(t, err, common.ErrCatalogUnavailable)
	assert.Empty(t, products)
}

func TestFetchProductsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	server.Close() // connection refused

	client := NewClient(server.URL, 100, time.Second)
	_, err := client.FetchProducts(context.Background())
	require.ErrorIs(t, err, common.ErrCatalogUnavailable)
}

func TestFetchProductsRespectsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewClient(server.URL, 100, 5*time.Second)
	_, err := client.FetchProducts(ctx)
	require.Error(t, err)
}

func TestNewMapping(t *testing.T) {
	products := []Product{
		{ID: 3, Title: "Gamma", Category: "c3", Brand: "b3"},
		{ID: 1, Title: "Alpha", Category: "c1", Brand: "b1"},
		{ID: 0, Title: "No ID"},
		{ID: 3, Title: "Gamma Duplicate"},
		{ID: 2, Title: "Beta", Category: "c2", Brand: "b2"},
	}

	m := NewMapping(products)
	assert.Equal(t, 3, m.Len())

	info, ok := m.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, "Alpha", info.Title)

	_, ok = m.Lookup(99)
	assert.False(t, ok)

	// A repeated ID takes the later entry's data but keeps its original
	// position in the scan order.
	info, ok = m.Lookup(3)
	require.True(t, ok)
	assert.Equal(t, "Gamma Duplicate", info.Title)

	// Scan visits entries in catalog response order.
	var order []string
	_, found := m.Scan(func(_ int, info ProductInfo) bool {
		order = append(order, info.Title)
		return false
	})
	assert.False(t, found)
	assert.Equal(t, []string{"Gamma Duplicate", "Alpha", "Beta"}, order)

	// Scan stops at the first hit.
	info, found = m.Scan(func(id int, _ ProductInfo) bool {
		return id == 1
	})
	require.True(t, found)
	assert.Equal(t, "Alpha", info.Title)
}
