package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teleshop/client/internal/domain/order"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL}, nil)
	require.NoError(t, err)
	return client, server
}

func TestConfigValidate(t *testing.T) {
	assert.Error(t, (&Config{}).Validate())
	assert.NoError(t, (&Config{BaseURL: "http://localhost:8080"}).Validate())
	assert.Error(t, (&Config{BaseURL: "http://x", TimeoutSeconds: -1}).Validate())
}

func TestProducts(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_, _ = w.Write([]byte(`[{"id":1,"name":"Bread","price":100.5,"stock":3,"category":"bakery"}]`))
	}))

	t.Run("category filter is passed through", func(t *testing.T) {
		products, err := client.Products(context.Background(), "bakery")
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "category=bakery", gotQuery)
		assert.Equal(t, "Bread", products[0].Name)
		assert.True(t, products[0].Price.Equal(decimal.RequireFromString("100.5")))
	})

	t.Run("the all sentinel sends no filter", func(t *testing.T) {
		_, err := client.Products(context.Background(), "all")
		require.NoError(t, err)
		assert.Equal(t, "", gotQuery)
	})
}

func TestCreateOrder(t *testing.T) {
	t.Run("success returns receipt with order id", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/create-order", r.URL.Path)

			var req CreateOrderRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, int64(0), req.BuyerID)
			require.Len(t, req.Items, 1)

			_, _ = w.Write([]byte(`{"success":true,"orderId":4242}`))
		}))

		receipt, err := client.CreateOrder(context.Background(), CreateOrderRequest{
			BuyerName: "Guest",
			Items:     []CreateOrderItem{{ProductID: 1, Name: "Bread", UnitPrice: decimal.NewFromInt(100), Quantity: 2}},
			Total:     decimal.NewFromInt(200),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(4242), receipt.OrderID)
	})

	t.Run("rejection surfaces the server message", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":false,"error":"product 1 is out of stock"}`))
		}))

		_, err := client.CreateOrder(context.Background(), CreateOrderRequest{})
		require.Error(t, err)
		assert.Equal(t, "product 1 is out of stock", UserMessage(err, "fallback"))
	})

	t.Run("transport failure maps to ErrUnavailable", func(t *testing.T) {
		client, err := NewClient(Config{BaseURL: "http://127.0.0.1:1", TimeoutSeconds: 1}, nil)
		require.NoError(t, err)

		_, err = client.CreateOrder(context.Background(), CreateOrderRequest{})
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.Equal(t, "fallback", UserMessage(err, "fallback"))
	})
}

func TestErrorMapping(t *testing.T) {
	t.Run("plain 500 maps to ErrRequestFailed", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		_, err := client.Categories(context.Background())
		assert.ErrorIs(t, err, ErrRequestFailed)
	})

	t.Run("4xx with envelope maps to RejectionError", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"success":false,"error":"name is required"}`))
		}))
		err := client.CreateProduct(context.Background(), ProductInput{})
		require.Error(t, err)
		assert.Equal(t, "name is required", UserMessage(err, "fallback"))
	})

	t.Run("garbage body maps to ErrInvalidResponse", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>oops</html>`))
		}))
		_, err := client.Categories(context.Background())
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})
}

func TestSetOrderStatus(t *testing.T) {
	var gotPath, gotStatus string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotStatus = body["status"]
		_, _ = w.Write([]byte(`{"success":true}`))
	}))

	require.NoError(t, client.SetOrderStatus(context.Background(), 17, order.StatusProcessing))
	assert.Equal(t, "/api/admin/orders/17/status", gotPath)
	assert.Equal(t, "processing", gotStatus)
}

func TestUploadImage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "photo.png", header.Filename)
		_, _ = w.Write([]byte(`{"success":true,"url":"https://cdn/photo.png"}`))
	}))

	url, err := client.UploadImage(context.Background(), "photo.png", []byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/photo.png", url)
}

func TestCourierEndpoints(t *testing.T) {
	t.Run("login", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/courier/login", r.URL.Path)
			_, _ = w.Write([]byte(`{"success":true,"courier":{"id":9,"name":"Ivan"},"token":"tok-9"}`))
		}))

		who, token, err := client.Login(context.Background(), "ivan", "secret")
		require.NoError(t, err)
		assert.Equal(t, int64(9), who.ID)
		assert.Equal(t, "tok-9", token)
	})

	t.Run("orders buckets with polymorphic address", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "courier_id=9", r.URL.RawQuery)
			_, _ = w.Write([]byte(`{
				"active":[{"id":1,"address":"Tverskaya 1","delivery_status":"assigned","total":10}],
				"today":[{"id":2,"address":{"city":"Moscow","street":"Arbat"},"delivery_status":"picked_up","total":20}],
				"completed":[]
			}`))
		}))

		buckets, err := client.CourierOrders(context.Background(), 9)
		require.NoError(t, err)
		require.Len(t, buckets.Active, 1)
		require.Len(t, buckets.Today, 1)
		assert.Equal(t, order.AddressRaw, buckets.Active[0].Address.Kind())
		assert.Equal(t, order.AddressParsed, buckets.Today[0].Address.Kind())
		assert.Equal(t, order.DeliveryPickedUp, buckets.Today[0].DeliveryStatus)
	})

	t.Run("update delivery status", func(t *testing.T) {
		var got UpdateDeliveryRequest
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`{"success":true}`))
		}))

		err := client.UpdateDeliveryStatus(context.Background(), UpdateDeliveryRequest{
			OrderID: 3, CourierID: 9, Status: order.DeliveryDelivered, Photo: "base64data", Notes: "left at door",
		})
		require.NoError(t, err)
		assert.Equal(t, order.DeliveryDelivered, got.Status)
		assert.Equal(t, "base64data", got.Photo)
	})
}
