package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/tenderbase/internal/config"
	"github.com/smallbiznis/tenderbase/internal/observability"
	obsmiddleware "github.com/smallbiznis/tenderbase/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/tenderbase/internal/observability/metrics"
	obstracing "github.com/smallbiznis/tenderbase/internal/observability/tracing"
	"github.com/smallbiznis/tenderbase/internal/order"
	orderdomain "github.com/smallbiznis/tenderbase/internal/order/domain"
	"github.com/smallbiznis/tenderbase/internal/portfolio"
	portfoliodomain "github.com/smallbiznis/tenderbase/internal/portfolio/domain"
	"github.com/smallbiznis/tenderbase/internal/product"
	productdomain "github.com/smallbiznis/tenderbase/internal/product/domain"
	"github.com/smallbiznis/tenderbase/internal/seed"
	"github.com/smallbiznis/tenderbase/internal/tender"
	tenderdomain "github.com/smallbiznis/tenderbase/internal/tender/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	product.Module,
	tender.Module,
	order.Module,
	portfolio.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	productSvc   productdomain.Service
	tenderSvc    tenderdomain.Service
	orderSvc     orderdomain.Service
	portfolioSvc portfoliodomain.Service
	seeder       *seed.Seeder
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	ProductSvc   productdomain.Service
	TenderSvc    tenderdomain.Service
	OrderSvc     orderdomain.Service
	PortfolioSvc portfoliodomain.Service
	Seeder       *seed.Seeder
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		productSvc:   p.ProductSvc,
		tenderSvc:    p.TenderSvc,
		orderSvc:     p.OrderSvc,
		portfolioSvc: p.PortfolioSvc,
		seeder:       p.Seeder,
	}

	svc.registerAPIRoutes()
	svc.registerDevRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Products --------
	api.GET("/products", s.ListProducts)
	api.POST("/products", s.CreateProduct)
	api.GET("/products/:id", s.GetProductByID)
	api.PATCH("/products/:id", s.UpdateProduct)
	api.DELETE("/products/:id", s.DeleteProduct)

	// -------- Tenders --------
	api.GET("/tenders", s.ListTenders)
	api.POST("/tenders", s.CreateTender)
	api.GET("/tenders/:id", s.GetTenderByID)
	api.PATCH("/tenders/:id", s.UpdateTender)
	api.DELETE("/tenders/:id", s.DeleteTender)
	api.POST("/tenders/:id/validate", s.ValidateTender)

	// -------- Orders --------
	api.GET("/orders", s.ListOrders)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrderByID)
	api.PATCH("/orders/:id", s.UpdateOrder)
	api.DELETE("/orders/:id", s.DeleteOrder)

	// -------- Portfolio --------
	api.GET("/portfolio/report", s.GetPortfolioReport)
}

func (s *Server) registerDevRoutes() {
	if s.cfg.IsProduction() {
		return
	}

	dev := s.engine.Group("/dev")
	dev.POST("/seed", s.SeedSampleData)
}
