package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/udyamworks/billbook/internal/business"
	businessdomain "github.com/udyamworks/billbook/internal/business/domain"
	"github.com/udyamworks/billbook/internal/config"
	"github.com/udyamworks/billbook/internal/customer"
	customerdomain "github.com/udyamworks/billbook/internal/customer/domain"
	"github.com/udyamworks/billbook/internal/dashboard"
	dashboarddomain "github.com/udyamworks/billbook/internal/dashboard/domain"
	"github.com/udyamworks/billbook/internal/invoice"
	invoicedomain "github.com/udyamworks/billbook/internal/invoice/domain"
	"github.com/udyamworks/billbook/internal/product"
	productdomain "github.com/udyamworks/billbook/internal/product/domain"
	"github.com/udyamworks/billbook/internal/reference"
	referencedomain "github.com/udyamworks/billbook/internal/reference/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	business.Module,
	customer.Module,
	product.Module,
	invoice.Module,
	dashboard.Module,
	reference.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(cors.New(corsConfig(cfg)))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func corsConfig(cfg config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", HeaderRequestID}
	corsCfg.AllowCredentials = true

	allowAll := len(cfg.CORSOrigins) == 0
	for _, origin := range cfg.CORSOrigins {
		if origin == "*" {
			allowAll = true
		}
	}
	if allowAll {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	return corsCfg
}

func registerGin(cfg config.Config, log *zap.Logger) *gin.Engine {
	registerValidators()
	return NewEngine(cfg, log)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
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
	log          *zap.Logger
	genID        *snowflake.Node
	businessSvc  businessdomain.Service
	customerSvc  customerdomain.Service
	productSvc   productdomain.Service
	invoiceSvc   invoicedomain.Service
	dashboardSvc dashboarddomain.Service
	referenceSvc referencedomain.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	Log          *zap.Logger
	GenID        *snowflake.Node
	BusinessSvc  businessdomain.Service
	CustomerSvc  customerdomain.Service
	ProductSvc   productdomain.Service
	InvoiceSvc   invoicedomain.Service
	DashboardSvc dashboarddomain.Service
	ReferenceSvc referencedomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		log:          p.Log.Named("http.server"),
		genID:        p.GenID,
		businessSvc:  p.BusinessSvc,
		customerSvc:  p.CustomerSvc,
		productSvc:   p.ProductSvc,
		invoiceSvc:   p.InvoiceSvc,
		dashboardSvc: p.DashboardSvc,
		referenceSvc: p.ReferenceSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.GET("/", s.APIRoot)

	api.GET("/business", s.GetBusinessSettings)
	api.POST("/business", s.UpsertBusinessSettings)
	api.POST("/business/upload-logo", s.UploadBusinessLogo)

	api.POST("/businesses", s.CreateBusiness)
	api.GET("/businesses", s.ListBusinesses)
	api.GET("/businesses/:id", s.GetBusinessByID)
	api.PUT("/businesses/:id", s.UpdateBusiness)
	api.DELETE("/businesses/:id", s.DeleteBusiness)

	api.POST("/customers", s.CreateCustomer)
	api.GET("/customers", s.ListCustomers)
	api.GET("/customers/:id", s.GetCustomerByID)
	api.PUT("/customers/:id", s.UpdateCustomer)
	api.DELETE("/customers/:id", s.DeleteCustomer)

	api.POST("/products", s.CreateProduct)
	api.GET("/products", s.ListProducts)
	api.GET("/products/:id", s.GetProductByID)
	api.PUT("/products/:id", s.UpdateProduct)
	api.DELETE("/products/:id", s.DeleteProduct)

	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices", s.ListInvoices)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.PUT("/invoices/:id", s.UpdateInvoice)
	api.PUT("/invoices/:id/payment", s.UpdateInvoicePayment)
	api.DELETE("/invoices/:id", s.DeleteInvoice)
	api.POST("/invoices/:id/restore", s.RestoreInvoice)

	api.GET("/dashboard/stats", s.GetDashboard)

	api.GET("/gst-rates", s.ListGSTRates)
	api.GET("/hsn-codes", s.ListHSNCodes)
}

func (s *Server) APIRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": s.cfg.AppName,
		"version": s.cfg.AppVersion,
		"status":  "ok",
	})
}
