// AutoCenter Jülich dealership API
// @title AutoCenter Jülich API
// @version 1.0
// @description Vehicle listings from mobile.de with filtering, detail pages, a live filter socket and the contact form
// @host localhost:8080
// @BasePath /

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/mohamad-kareem/Autocenter-Juelich/docs"
	"github.com/mohamad-kareem/Autocenter-Juelich/internal/config"
	"github.com/mohamad-kareem/Autocenter-Juelich/internal/contact"
	"github.com/mohamad-kareem/Autocenter-Juelich/internal/handlers"
	"github.com/mohamad-kareem/Autocenter-Juelich/internal/middleware"
	"github.com/mohamad-kareem/Autocenter-Juelich/internal/mobilede"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration", "err", err)
	}

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warn("Unknown log level, keeping info", "level", cfg.LogLevel)
	}
	log.SetReportTimestamp(true)

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	if !cfg.ProviderConfigured() {
		log.Warn("mobile.de credentials incomplete, vehicle requests will fail")
	}
	if cfg.SMTPHost == "" {
		log.Warn("SMTP_HOST not set, contact requests will fail")
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if !cfg.Release() {
		r.Use(gin.Logger())
	}

	// Cloudflare tunnel and docker networks
	if err := r.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
		"172.16.0.0/12",
		"10.0.0.0/8",
		"192.168.0.0/16",
	}); err != nil {
		log.Fatal("Invalid trusted proxies", "err", err)
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	r.Use(cors.New(corsConfig))

	r.Use(middleware.SecurityHeaders(cfg.Release()))
	r.Use(middleware.HTTPMethodFilter([]string{http.MethodGet, http.MethodPost, http.MethodOptions, http.MethodHead}))
	r.Use(middleware.UserAgentFilter())
	r.Use(middleware.SecurityScanDetection())
	r.Use(middleware.HoneypotEndpoints(3 * time.Second))

	apiLimiter := middleware.NewRateLimiter("api", cfg.APIRateLimit, cfg.APIRateBurst)
	defer apiLimiter.Stop()
	contactLimiter := middleware.NewRateLimiter("contact", cfg.ContactRateLimit, cfg.ContactRateBurst)
	defer contactLimiter.Stop()

	ads := mobilede.NewClient(mobilede.Config{
		BaseURL:  cfg.MobileDEBaseURL,
		Username: cfg.MobileDEUsername,
		Password: cfg.MobileDEPassword,
		SellerID: cfg.MobileDESellerID,
	}, &http.Client{Timeout: cfg.ProviderTimeout})

	mailer := contact.NewSMTPMailer(contact.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Secure:   cfg.SMTPSecure,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
	})

	vehicleHandler := handlers.NewVehicleHandler(ads, cfg.SiteLocation)
	contactHandler := handlers.NewContactHandler(contact.NewService(mailer, cfg.SMTPFrom, cfg.ContactTo))
	liveHandler := handlers.NewLiveHandler(vehicleHandler, cfg.CORSOrigins, cfg.QuerySyncWindow)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		limited := api.Group("", middleware.RateLimitMiddleware(apiLimiter))
		limited.GET("/vehicles", vehicleHandler.ListVehicles)
		limited.GET("/vehicles/:id", vehicleHandler.GetVehicle)
		limited.GET("/live", liveHandler.Serve)

		api.POST("/contact", middleware.RateLimitMiddleware(contactLimiter), contactHandler.Submit)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port, "mode", gin.Mode())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("Shutting down", "grace", cfg.ShutdownGraceTime)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGraceTime)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "err", err)
	}
}
