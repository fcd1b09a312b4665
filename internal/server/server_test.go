package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/tenderbase/internal/clock"
	"github.com/smallbiznis/tenderbase/internal/config"
	orderdomain "github.com/smallbiznis/tenderbase/internal/order/domain"
	orderrepository "github.com/smallbiznis/tenderbase/internal/order/repository"
	orderservice "github.com/smallbiznis/tenderbase/internal/order/service"
	portfolioservice "github.com/smallbiznis/tenderbase/internal/portfolio/service"
	productdomain "github.com/smallbiznis/tenderbase/internal/product/domain"
	productrepository "github.com/smallbiznis/tenderbase/internal/product/repository"
	productservice "github.com/smallbiznis/tenderbase/internal/product/service"
	"github.com/smallbiznis/tenderbase/internal/seed"
	tenderdomain "github.com/smallbiznis/tenderbase/internal/tender/domain"
	tenderrepository "github.com/smallbiznis/tenderbase/internal/tender/repository"
	tenderservice "github.com/smallbiznis/tenderbase/internal/tender/service"
	"github.com/smallbiznis/tenderbase/pkg/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(
		&productdomain.Product{},
		&tenderdomain.Tender{},
		&orderdomain.Order{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	sysClock := clock.NewSystemClock()
	productRepo := productrepository.Provide()
	tenderRepo := tenderrepository.Provide()
	orderRepo := orderrepository.Provide()

	productSvc := productservice.New(productservice.Params{
		DB: dbConn, Log: log, GenID: node, Clock: sysClock, Repo: productRepo,
	})
	tenderSvc := tenderservice.New(tenderservice.Params{
		DB: dbConn, Log: log, GenID: node, Clock: sysClock,
		Repo: tenderRepo, OrderRepo: orderRepo, ProductRepo: productRepo,
	})
	orderSvc := orderservice.New(orderservice.Params{
		DB: dbConn, Log: log, GenID: node, Clock: sysClock,
		Repo: orderRepo, TenderRepo: tenderRepo, ProductRepo: productRepo,
	})
	portfolioSvc := portfolioservice.New(portfolioservice.Params{
		Log: log, Clock: sysClock, Tenders: tenderSvc,
		Reporting: config.NewStaticReportingConfigHolder(config.DefaultReportingConfig()),
	})
	seeder := seed.New(seed.Params{DB: dbConn, Log: log, GenID: node, Clock: sysClock})

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	return NewServer(ServerParams{
		Gin:          engine,
		Cfg:          config.Config{Environment: "test"},
		ProductSvc:   productSvc,
		TenderSvc:    tenderSvc,
		OrderSvc:     orderSvc,
		PortfolioSvc: portfolioSvc,
		Seeder:       seeder,
	})
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

func dataField(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestProductLifecycle(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/products", gin.H{
		"name":            "Office Chair",
		"sku":             "CHAIR-001",
		"unit_sale_price": "150",
		"unit_cost":       "100",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := dataField(t, w)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	w = doJSON(t, srv, http.MethodGet, "/api/products/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "CHAIR-001", dataField(t, w)["sku"])

	w = doJSON(t, srv, http.MethodPost, "/api/products", gin.H{
		"name":            "Copy Chair",
		"sku":             "CHAIR-001",
		"unit_sale_price": "120",
		"unit_cost":       "90",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, srv, http.MethodDelete, "/api/products/"+id, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/products/"+id, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTenderValidateAndDetail(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/tenders", gin.H{"client": "City Council"})
	require.Equal(t, http.StatusCreated, w.Code)
	tenderID, _ := dataField(t, w)["id"].(string)

	w = doJSON(t, srv, http.MethodPost, "/api/tenders/"+tenderID+"/validate", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/products", gin.H{
		"name":            "Laptop",
		"sku":             "LAPTOP-001",
		"unit_sale_price": "1200",
		"unit_cost":       "800",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	productID, _ := dataField(t, w)["id"].(string)

	w = doJSON(t, srv, http.MethodPost, "/api/orders", gin.H{
		"tender_id":        tenderID,
		"product_id":       productID,
		"awarded_quantity": 25,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/tenders/"+tenderID+"/validate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/tenders/"+tenderID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := dataField(t, w)
	require.Equal(t, float64(1), detail["product_count"])
	require.Equal(t, "10000", fmt.Sprint(detail["total_margin"]))
}

func TestOrderValidationStatus(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/orders", gin.H{
		"tender_id":        "1",
		"product_id":       "2",
		"awarded_quantity": 0,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPortfolioReportAfterSeed(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/dev/seed", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Seeding twice must not duplicate anything.
	w = doJSON(t, srv, http.MethodPost, "/dev/seed", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/portfolio/report", nil)
	require.Equal(t, http.StatusOK, w.Code)
	report := dataField(t, w)
	require.Equal(t, float64(3), report["tender_count"])
	require.Equal(t, float64(6), report["product_count"])
	// Chairs 100x50 + desks 50x100, laptops 25x400, mixed 40x50+10x400+20x100.
	require.Equal(t, "28000", fmt.Sprint(report["total_margin"]))
	require.Equal(t, false, report["has_losses"])
	dist, ok := report["distribution"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "28000", fmt.Sprint(dist["profitable_value"]))
	require.Equal(t, "0", fmt.Sprint(dist["losing_value"]))
}
