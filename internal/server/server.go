package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	commissiondomain "github.com/railzwaylabs/commissions/internal/commission/domain"
	"github.com/railzwaylabs/commissions/internal/config"
	ledgerdomain "github.com/railzwaylabs/commissions/internal/ledger/domain"
	paymentmethoddomain "github.com/railzwaylabs/commissions/internal/paymentmethod/domain"
	ratetierdomain "github.com/railzwaylabs/commissions/internal/ratetier/domain"
	reportdomain "github.com/railzwaylabs/commissions/internal/report/domain"
	sellerdomain "github.com/railzwaylabs/commissions/internal/seller/domain"
	"github.com/railzwaylabs/commissions/internal/server/docs"
	vehiclemodeldomain "github.com/railzwaylabs/commissions/internal/vehiclemodel/domain"
	"github.com/rs/cors"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Cfg           config.Config
	Log           *zap.Logger
	Gatherer      prometheus.Gatherer
	LedgerSvc     ledgerdomain.Service
	CommissionSvc commissiondomain.Service
	ReportSvc     reportdomain.Service
	SellerSvc     sellerdomain.Service
	ModelSvc      vehiclemodeldomain.Service
	MethodSvc     paymentmethoddomain.Service
	RateTierSvc   ratetierdomain.Service
}

type Server struct {
	cfg           config.Config
	log           *zap.Logger
	gatherer      prometheus.Gatherer
	ledgerSvc     ledgerdomain.Service
	commissionSvc commissiondomain.Service
	reportSvc     reportdomain.Service
	sellerSvc     sellerdomain.Service
	modelSvc      vehiclemodeldomain.Service
	methodSvc     paymentmethoddomain.Service
	rateTierSvc   ratetierdomain.Service
}

func New(p Params) *Server {
	if p.Cfg.AppVersion != "" {
		docs.SwaggerInfo.Version = p.Cfg.AppVersion
	}
	return &Server{
		cfg:           p.Cfg,
		log:           p.Log.Named("server"),
		gatherer:      p.Gatherer,
		ledgerSvc:     p.LedgerSvc,
		commissionSvc: p.CommissionSvc,
		reportSvc:     p.ReportSvc,
		sellerSvc:     p.SellerSvc,
		modelSvc:      p.ModelSvc,
		methodSvc:     p.MethodSvc,
		rateTierSvc:   p.RateTierSvc,
	}
}

// Engine builds the gin router with every route registered.
func (s *Server) Engine() *gin.Engine {
	if s.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(requestID(), accessLog(s.log), recovery(s.log))

	r.GET("/healthz", s.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	r.GET("/swagger/doc.json", s.SwaggerDoc)

	api := r.Group("/api")
	s.registerRoutes(api)
	return r
}

func (s *Server) registerRoutes(api *gin.RouterGroup) {
	api.POST("/uploads/sales", s.UploadSales)
	api.POST("/uploads/proposals", s.UploadProposals)
	api.GET("/uploads", s.ListUploads)
	api.POST("/ledgers/clear", s.ClearLedgers)

	commissions := api.Group("/commissions")
	commissions.GET("/sellers", s.GetSellerSummary)
	commissions.GET("/cities", s.GetCitySummary)
	commissions.GET("/sellers/:name/orders", s.GetSellerOrders)
	commissions.POST("/rate", s.ResolveRate)
	commissions.POST("/calculate", s.CalculateCommission)
	commissions.POST("/process", s.ProcessCommissions)
	commissions.GET("/runs", s.ListRuns)
	commissions.GET("/runs/:id", s.GetRun)
	commissions.GET("/runs/:id/export", s.ExportRun)
	commissions.GET("/records", s.ListCommissionRecords)

	api.POST("/present-value/simulate", s.SimulatePresentValue)

	api.GET("/sellers", s.ListSellers)
	api.POST("/sellers", s.CreateSeller)
	api.GET("/sellers/:id", s.GetSeller)
	api.PUT("/sellers/:id", s.UpdateSeller)
	api.DELETE("/sellers/:id", s.DeleteSeller)

	api.GET("/vehicle_models", s.ListVehicleModels)
	api.POST("/vehicle_models", s.CreateVehicleModel)
	api.GET("/vehicle_models/:id", s.GetVehicleModel)
	api.PUT("/vehicle_models/:id", s.UpdateVehicleModel)
	api.DELETE("/vehicle_models/:id", s.DeleteVehicleModel)

	api.GET("/payment_methods", s.ListPaymentMethods)
	api.POST("/payment_methods", s.CreatePaymentMethod)
	api.GET("/payment_methods/:id", s.GetPaymentMethod)
	api.PUT("/payment_methods/:id/present_value", s.UpdatePaymentMethodPresentValue)
	api.POST("/payment_methods/:id/deactivate", s.DeactivatePaymentMethod)
	api.DELETE("/payment_methods/:id", s.DeletePaymentMethod)

	api.GET("/progressive_tables", s.ListProgressiveTables)
	api.POST("/progressive_tables", s.CreateProgressiveTable)
	api.DELETE("/progressive_tables/:id", s.DeleteProgressiveTable)

	api.GET("/rate_tiers", s.ListRateTiers)
	api.POST("/rate_tiers", s.CreateRateTier)
	api.GET("/rate_tiers/:id", s.GetRateTier)
	api.PUT("/rate_tiers/:id", s.UpdateRateTier)
	api.DELETE("/rate_tiers/:id", s.DeleteRateTier)
}

// Handler wraps the engine with the CORS policy.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.HTTP.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader, checksumHeader, countHeader, "Content-Disposition"},
		AllowCredentials: false,
	})
	return c.Handler(s.Engine())
}

// Start serves HTTP for the lifetime of the app.
func Start(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:              s.cfg.HTTP.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			s.log.Info("http server listening", zap.String("addr", ln.Addr().String()))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
