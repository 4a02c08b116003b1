package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/invoicedesk/internal/invoice/domain"
	"github.com/smallbiznis/invoicedesk/internal/seed"
	"go.uber.org/zap"
)

// Seed loads the fixture set. It is only routed outside production.
func (s *Server) Seed(c *gin.Context) {
	if s.cfg.IsProduction() {
		AbortWithError(c, ErrNotFound)
		return
	}

	ctx := c.Request.Context()
	summary, err := seed.Run(ctx, s.db, s.log)
	if err != nil {
		s.log.Error("seed database", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := s.views.Revalidate(ctx, invoicedomain.InvoicesPath); err != nil {
		s.log.Warn("revalidate invoices view", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Database seeded successfully",
		"summary": summary,
	})
}
