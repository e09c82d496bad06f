package storefront

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teleshop/client/internal/domain/cart"
	"github.com/teleshop/client/internal/domain/catalog"
	"github.com/teleshop/client/internal/domain/order"
	"github.com/teleshop/client/internal/infrastructure/backend"
	"github.com/teleshop/client/internal/infrastructure/host"
	"github.com/teleshop/client/internal/infrastructure/localstore"
)

// fakeAPI is a recording CatalogAPI with pluggable responses.
type fakeAPI struct {
	mu sync.Mutex

	productsFn   func(category string) ([]catalog.Product, error)
	categoriesFn func() ([]string, error)
	categories   []string
	createFn     func(req backend.CreateOrderRequest) (order.Receipt, error)
	createCalls  int
}

func (f *fakeAPI) Products(ctx context.Context, category string) ([]catalog.Product, error) {
	f.mu.Lock()
	fn := f.productsFn
	f.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(category)
}

func (f *fakeAPI) Categories(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	fn := f.categoriesFn
	f.mu.Unlock()
	if fn == nil {
		return f.categories, nil
	}
	return fn()
}

func (f *fakeAPI) CreateOrder(ctx context.Context, req backend.CreateOrderRequest) (order.Receipt, error) {
	f.mu.Lock()
	f.createCalls++
	fn := f.createFn
	f.mu.Unlock()
	if fn == nil {
		return order.Receipt{}, nil
	}
	return fn(req)
}

func (f *fakeAPI) orderCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createCalls
}

var _ CatalogAPI = (*fakeAPI)(nil)

func testProducts() []catalog.Product {
	return []catalog.Product{
		{ID: 1, Name: "Mug", Price: decimal.NewFromInt(100), Stock: 5, Category: "kitchen", ImageURL: "https://cdn.example.com/mug.png"},
		{ID: 2, Name: "Cap", Price: decimal.NewFromInt(50), Stock: 0, Category: "apparel"},
	}
}

func newTestController(t *testing.T, api *fakeAPI) (*Controller, *host.Stub, localstore.Store) {
	t.Helper()
	store := localstore.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	stub := host.NewStub(nil)
	ctrl := NewController(api,
		localstore.NewCartStore(store, nil),
		localstore.NewPrefsStore(store, nil),
		stub, nil)
	return ctrl, stub, store
}

func TestStartRestoresPersistedCart(t *testing.T) {
	api := &fakeAPI{productsFn: func(string) ([]catalog.Product, error) { return testProducts(), nil }}
	ctrl, stub, store := newTestController(t, api)
	ctx := context.Background()

	seed := localstore.NewCartStore(store, nil)
	seed.Save(ctx, seedCart())

	ctrl.Start(ctx)

	view := ctrl.Render()
	assert.Equal(t, 3, view.Cart.Badge)
	assert.True(t, stub.Expanded)
	assert.True(t, stub.BackButtonVisible)
	assert.Len(t, view.Catalog.Products, 2)
}

func seedCart() cart.Cart {
	return cart.Empty().
		Add(1, "Mug", decimal.NewFromInt(100), 2, "").
		Add(2, "Cap", decimal.NewFromInt(50), 1, "")
}

func TestFetchProductsDegradesToEmptyWithNotice(t *testing.T) {
	api := &fakeAPI{productsFn: func(string) ([]catalog.Product, error) {
		return nil, backend.ErrUnavailable
	}}
	ctrl, _, _ := newTestController(t, api)

	ctrl.FetchProducts(context.Background(), catalog.CategoryAll)

	view := ctrl.Render()
	assert.Empty(t, view.Catalog.Products)
	assert.Equal(t, noticeCatalogUnavailable, view.Notice)

	ctrl.DismissNotice()
	assert.Empty(t, ctrl.Render().Notice)
}

func TestFetchProductsFiltersLocally(t *testing.T) {
	// the fake ignores the category parameter, like a backend that doesn't
	// implement the filter
	api := &fakeAPI{productsFn: func(string) ([]catalog.Product, error) { return testProducts(), nil }}
	ctrl, _, _ := newTestController(t, api)

	ctrl.FetchProducts(context.Background(), "kitchen")

	view := ctrl.Render()
	require.Len(t, view.Catalog.Products, 1)
	assert.Equal(t, "Mug", view.Catalog.Products[0].Name)
}

func TestFetchCategoriesDegradesToEmptyWithNotice(t *testing.T) {
	api := &fakeAPI{categories: []string{"kitchen", "apparel"}}
	ctrl, _, _ := newTestController(t, api)
	ctx := context.Background()

	ctrl.FetchCategories(ctx)
	assert.Equal(t, []string{"kitchen", "apparel"}, ctrl.Render().Catalog.Categories)

	api.mu.Lock()
	api.categoriesFn = func() ([]string, error) { return nil, backend.ErrUnavailable }
	api.mu.Unlock()
	ctrl.FetchCategories(ctx)

	view := ctrl.Render()
	assert.Empty(t, view.Catalog.Categories, "failed fetch must not keep the stale list")
	assert.Equal(t, noticeCatalogUnavailable, view.Notice)
}

func TestFetchProductsDiscardsStaleCompletion(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	api := &fakeAPI{}
	api.productsFn = func(category string) ([]catalog.Product, error) {
		if category == "slow" {
			close(started)
			<-release
			return []catalog.Product{{ID: 99, Name: "Stale"}}, nil
		}
		return testProducts(), nil
	}
	ctrl, _, _ := newTestController(t, api)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ctrl.FetchProducts(ctx, "slow")
	}()

	<-started
	ctrl.FetchProducts(ctx, catalog.CategoryAll)
	close(release)
	wg.Wait()

	view := ctrl.Render()
	require.Len(t, view.Catalog.Products, 2)
	assert.Equal(t, catalog.CategoryAll, view.Catalog.SelectedCategory)
}

func TestOpenDetail(t *testing.T) {
	api := &fakeAPI{productsFn: func(string) ([]catalog.Product, error) { return testProducts(), nil }}
	ctrl, _, _ := newTestController(t, api)
	ctx := context.Background()
	ctrl.FetchProducts(ctx, catalog.CategoryAll)

	t.Run("opens a known product", func(t *testing.T) {
		ctrl.OpenDetail(1)
		view := ctrl.Render()
		require.NotNil(t, view.Detail)
		assert.Equal(t, "Mug", view.Detail.Product.Name)
		assert.Equal(t, "$100.00", view.Detail.Price)
		ctrl.CloseDetail()
	})

	t.Run("stale product id is a silent no-op", func(t *testing.T) {
		ctrl.OpenDetail(404)
		assert.Nil(t, ctrl.Render().Detail)
	})
}

func TestAddToCartFromDetail(t *testing.T) {
	api := &fakeAPI{productsFn: func(string) ([]catalog.Product, error) { return testProducts(), nil }}
	ctrl, _, _ := newTestController(t, api)
	ctx := context.Background()
	ctrl.FetchProducts(ctx, catalog.CategoryAll)

	t.Run("rejects above last-known stock", func(t *testing.T) {
		ctrl.OpenDetail(1)
		ctrl.AddToCartFromDetail(ctx, 99)

		view := ctrl.Render()
		assert.Equal(t, noticeOutOfStock, view.Notice)
		assert.Zero(t, view.Cart.Badge)
		assert.NotNil(t, view.Detail, "detail stays open on rejection")
		ctrl.CloseDetail()
		ctrl.DismissNotice()
	})

	t.Run("adds and closes the detail", func(t *testing.T) {
		ctrl.OpenDetail(1)
		ctrl.AddToCartFromDetail(ctx, 2)

		view := ctrl.Render()
		assert.Nil(t, view.Detail)
		assert.Equal(t, 2, view.Cart.Badge)
		assert.Equal(t, "$200.00", view.Cart.Total)
	})
}

func TestChangeQuantityPersists(t *testing.T) {
	api := &fakeAPI{productsFn: func(string) ([]catalog.Product, error) { return testProducts(), nil }}
	ctrl, _, store := newTestController(t, api)
	ctx := context.Background()
	ctrl.FetchProducts(ctx, catalog.CategoryAll)

	ctrl.OpenDetail(1)
	ctrl.AddToCartFromDetail(ctx, 2)
	ctrl.ChangeQuantity(ctx, 1, -1)

	reloaded := localstore.NewCartStore(store, nil).Load(ctx)
	item, ok := reloaded.Find(1)
	require.True(t, ok)
	assert.Equal(t, 1, item.Quantity)

	// decrementing to zero removes the line
	ctrl.ChangeQuantity(ctx, 1, -1)
	assert.True(t, localstore.NewCartStore(store, nil).Load(ctx).IsEmpty())
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("empty cart makes no network call", func(t *testing.T) {
		api := &fakeAPI{}
		ctrl, _, _ := newTestController(t, api)

		ctrl.Checkout(ctx)

		assert.Zero(t, api.orderCalls())
		assert.Equal(t, noticeCartEmpty, ctrl.Render().Notice)
	})

	t.Run("failure leaves the cart untouched", func(t *testing.T) {
		api := &fakeAPI{
			productsFn: func(string) ([]catalog.Product, error) { return testProducts(), nil },
			createFn: func(backend.CreateOrderRequest) (order.Receipt, error) {
				return order.Receipt{}, &backend.RejectionError{Message: "insufficient stock"}
			},
		}
		ctrl, _, _ := newTestController(t, api)
		ctrl.FetchProducts(ctx, catalog.CategoryAll)
		ctrl.OpenDetail(1)
		ctrl.AddToCartFromDetail(ctx, 2)
		before := ctrl.Cart()

		ctrl.Checkout(ctx)

		assert.True(t, ctrl.Cart().Equals(before))
		assert.Equal(t, "insufficient stock", ctrl.Render().Notice)
		assert.Nil(t, ctrl.Render().Receipt)
	})

	t.Run("success clears the cart and surfaces the receipt", func(t *testing.T) {
		api := &fakeAPI{
			productsFn: func(string) ([]catalog.Product, error) { return testProducts(), nil },
			createFn: func(req backend.CreateOrderRequest) (order.Receipt, error) {
				return order.Receipt{OrderID: 42, Total: req.Total}, nil
			},
		}
		ctrl, _, store := newTestController(t, api)
		ctrl.FetchProducts(ctx, catalog.CategoryAll)
		ctrl.OpenDetail(1)
		ctrl.AddToCartFromDetail(ctx, 2)
		ctrl.OpenCart()

		ctrl.Checkout(ctx)

		view := ctrl.Render()
		require.NotNil(t, view.Receipt)
		assert.Equal(t, int64(42), view.Receipt.OrderID)
		assert.Equal(t, "$200.00", view.Receipt.Total)
		assert.False(t, view.Cart.Open)
		assert.Zero(t, view.Cart.Badge)
		assert.True(t, localstore.NewCartStore(store, nil).Load(ctx).IsEmpty())
	})

	t.Run("uses host identity when present", func(t *testing.T) {
		var captured backend.CreateOrderRequest
		api := &fakeAPI{
			productsFn: func(string) ([]catalog.Product, error) { return testProducts(), nil },
			createFn: func(req backend.CreateOrderRequest) (order.Receipt, error) {
				captured = req
				return order.Receipt{OrderID: 1, Total: req.Total}, nil
			},
		}
		ctrl, stub, _ := newTestController(t, api)
		stub.WithUser(host.User{ID: 777, Name: "Ada"})
		ctrl.FetchProducts(ctx, catalog.CategoryAll)
		ctrl.OpenDetail(1)
		ctrl.AddToCartFromDetail(ctx, 1)

		ctrl.Checkout(ctx)

		assert.Equal(t, int64(777), captured.BuyerID)
		assert.Equal(t, "Ada", captured.BuyerName)
		require.Len(t, captured.Items, 1)
		assert.Equal(t, "https://cdn.example.com/mug.png", captured.Items[0].ImageURL)
	})
}

func TestCloseTopOverlay(t *testing.T) {
	api := &fakeAPI{
		productsFn: func(string) ([]catalog.Product, error) { return testProducts(), nil },
		createFn: func(req backend.CreateOrderRequest) (order.Receipt, error) {
			return order.Receipt{OrderID: 9, Total: req.Total}, nil
		},
	}
	ctrl, stub, _ := newTestController(t, api)
	ctx := context.Background()
	ctrl.Start(ctx)

	ctrl.OpenCart()
	ctrl.OpenDetail(1)

	// back button closes detail first, then the cart, then is a no-op
	stub.PressBack()
	view := ctrl.Render()
	assert.Nil(t, view.Detail)
	assert.True(t, view.Cart.Open)

	stub.PressBack()
	assert.False(t, ctrl.Render().Cart.Open)

	stub.PressBack()
	stub.PressBack()
	assert.False(t, ctrl.Render().Cart.Open)

	// an open receipt is the topmost overlay
	ctrl.OpenDetail(1)
	ctrl.AddToCartFromDetail(ctx, 1)
	ctrl.Checkout(ctx)
	require.NotNil(t, ctrl.Render().Receipt)
	stub.PressBack()
	assert.Nil(t, ctrl.Render().Receipt)
}

func TestSetThemePersists(t *testing.T) {
	api := &fakeAPI{}
	ctrl, stub, store := newTestController(t, api)
	ctx := context.Background()

	ctrl.SetTheme(ctx, "dark")

	assert.Equal(t, "dark", ctrl.Render().Theme)
	assert.Equal(t, "#1c1c1e", stub.HeaderColor)
	assert.Equal(t, "dark", localstore.NewPrefsStore(store, nil).Theme(ctx, "light"))
}
