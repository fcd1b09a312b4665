package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetPortfolioReport(c *gin.Context) {
	resp, err := s.portfolioSvc.Report(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// SeedSampleData loads the demo catalog. Registered outside production only.
func (s *Server) SeedSampleData(c *gin.Context) {
	if err := s.seeder.Run(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"seeded": true}})
}
