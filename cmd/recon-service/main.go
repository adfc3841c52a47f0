package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bitbucket.org/mmdatafocus/recon_backend/config"
	"bitbucket.org/mmdatafocus/recon_backend/models"
	"bitbucket.org/mmdatafocus/recon_backend/reconsvc"
	"bitbucket.org/mmdatafocus/recon_backend/utils"
)

const defaultPort = "8080"

func main() {
	port := os.Getenv("RECON_SERVICE_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(func(c *gin.Context) {
		cid := c.GetHeader("x-correlation-id")
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Request = c.Request.WithContext(utils.SetCorrelationIdInContext(c.Request.Context(), cid))
		c.Next()
	})
	r.Use(func(c *gin.Context) {
		if c.Request.URL.Path == "/healthz" {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		if config.GetDB() == nil {
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Next()
	})

	r.POST("/pubsub/reconcile", reconsvc.PubSubPushHandler())
	r.POST("/reconcile/trigger", reconsvc.TriggerHandler())
	r.GET("/reconcile/latest", reconsvc.LatestRunHandler())
	r.GET("/reconcile/export", reconsvc.ExportRunsHandler())

	// Cloud Run: listen first, connect DB after (see config.ConnectDatabaseWithRetry).
	go func() {
		config.ConnectDatabaseWithRetry()
		models.MigrateTable()
	}()

	srv := &http.Server{Addr: ":" + port, Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("recon-service listen failed")
		}
	}()
	logger.WithField("port", port).Info("recon-service listening")

	<-sigCtx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("recon-service shutdown failed")
	}
}
