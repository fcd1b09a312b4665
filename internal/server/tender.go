package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	tenderdomain "github.com/smallbiznis/tenderbase/internal/tender/domain"
	"github.com/smallbiznis/tenderbase/pkg/db/pagination"
)

type createTenderRequest struct {
	Client      string         `json:"client"`
	Description *string        `json:"description"`
	Metadata    map[string]any `json:"metadata"`
}

func (s *Server) CreateTender(c *gin.Context) {
	var req createTenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.tenderSvc.Create(c.Request.Context(), tenderdomain.CreateRequest{
		Client:      strings.TrimSpace(req.Client),
		Description: req.Description,
		Metadata:    req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListTenders(c *gin.Context) {
	var query struct {
		pagination.Pagination

		Client string `form:"client"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.tenderSvc.ListSummaries(c.Request.Context(), tenderdomain.ListRequest{
		Pagination: query.Pagination,
		Client:     strings.TrimSpace(query.Client),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetTenderByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.tenderSvc.GetWithOrders(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateTender(c *gin.Context) {
	var req tenderdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.tenderSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteTender(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.tenderSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) ValidateTender(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.tenderSvc.Validate(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"valid": true}})
}
