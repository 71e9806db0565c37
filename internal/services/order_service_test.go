package services

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/marketflow-backend/internal/database"
	"github.com/javajoker/marketflow-backend/internal/models"
)

func newTestOrders() *OrderService {
	return NewOrderService(database.SeedOrders(), "https://market.example/")
}

func TestOrderLookup(t *testing.T) {
	orders := newTestOrders()

	assert.Len(t, orders.List(), 3)

	order, err := orders.Get("ORD-7741-K")
	require.NoError(t, err)
	assert.Equal(t, "Abstract 3D Renders", order.ProductName)

	_, err = orders.Get("ORD-0000-Z")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderDownload(t *testing.T) {
	orders := newTestOrders()

	download, err := orders.Download("ORD-8829-X", "/qr")
	require.NoError(t, err)
	assert.True(t, download.PaymentVerified)
	assert.Equal(t, "https://market.example/#/buyer/download/ORD-8829-X", download.DownloadURL)
	assert.Equal(t, "/qr", download.QRCodeURL)

	processing, err := orders.Download("ORD-6215-M", "")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, processing.Status)
	assert.False(t, processing.PaymentVerified)
}

func TestOrderQRCodeIsPNG(t *testing.T) {
	orders := newTestOrders()

	data, err := orders.QRCode("ORD-8829-X", 128)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())

	_, err = orders.QRCode("missing", 0)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestResolveScan(t *testing.T) {
	orders := newTestOrders()

	cases := []struct {
		payload string
		want    string
	}{
		{"ORD-8829-X", "ORD-8829-X"},
		{"  ord-7741-k ", "ORD-7741-K"},
		{"https://market.example/#/buyer/download/ORD-6215-M", "ORD-6215-M"},
		{"http://localhost:3000/#/buyer/download/ORD-8829-X?src=qr", "ORD-8829-X"},
		{"marketflow://buyer/download/ORD-7741-K#top", "ORD-7741-K"},
	}
	for _, tc := range cases {
		order, err := orders.ResolveScan(tc.payload)
		require.NoError(t, err, tc.payload)
		assert.Equal(t, tc.want, order.ID, tc.payload)
	}

	for _, payload := range []string{"", "https://market.example/#/buyer/download/", "ORD-1"} {
		_, err := orders.ResolveScan(payload)
		assert.ErrorIs(t, err, ErrOrderNotFound, payload)
	}
}
