package reconsvc

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"bitbucket.org/mmdatafocus/recon_backend/models/reports"
)

// LatestRunHandler returns the most recent reconciliation summary as JSON.
func LatestRunHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		run, err := LatestRun(c.Request.Context())
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no reconciliation run yet"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, run)
	}
}

// TriggerHandler publishes a reconcile request; the run happens async via the
// push subscription.
func TriggerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestedBy := c.Query("requested_by")
		if requestedBy == "" {
			requestedBy = "manual"
		}
		if err := PublishReconcileRequest(c.Request.Context(), requestedBy); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusAccepted)
	}
}

// ExportRunsHandler streams recent runs as an xlsx attachment.
func ExportRunsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		f, err := reports.ExportRunsExcel(c.Request.Context(), 30)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment; filename=reconciliation_runs.xlsx")
		if err := f.Write(c.Writer); err != nil {
			c.Status(http.StatusInternalServerError)
		}
	}
}
