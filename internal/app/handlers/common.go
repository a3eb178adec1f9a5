package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/praxisapp/praxis/internal/app/middleware"
	"github.com/praxisapp/praxis/internal/domain/query"
	"github.com/praxisapp/praxis/internal/domain/repositories"
	"github.com/praxisapp/praxis/pkg/logger"
)

// Pagination is the paging summary returned with every list response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPagination derives the summary from the applied page and the
// unfiltered-by-paging total.
func NewPagination(page query.Page, total int64) Pagination {
	return Pagination{
		Page:  page.Page,
		Limit: page.Limit,
		Total: total,
		Pages: page.Pages(total),
	}
}

// Response helpers. Every payload carries a success flag; list payloads nest
// the entity collection and pagination under data.

func respondOK(c *gin.Context, data gin.H) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondCreated(c *gin.Context, message string, data gin.H) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": message, "data": data})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

func respondList(c *gin.Context, key string, items interface{}, pagination Pagination) {
	respondOK(c, gin.H{key: items, "pagination": pagination})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondRepoError maps a repository failure to a response. Not-found keeps
// its message; anything else is logged with detail and sanitized to a
// generic 500.
func respondRepoError(c *gin.Context, log *logger.Logger, err error, notFoundMessage string) {
	if errors.Is(err, repositories.ErrNotFound) {
		respondError(c, http.StatusNotFound, notFoundMessage)
		return
	}
	log.Error("request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"user_id", c.GetUint(middleware.UserIDKey),
		"error", err)
	respondError(c, http.StatusInternalServerError, "Internal server error")
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

// parsePage reads the paging parameters with their defaults.
func parsePage(c *gin.Context) query.Page {
	return query.ParsePage(c.Query("page"), c.Query("limit"))
}
