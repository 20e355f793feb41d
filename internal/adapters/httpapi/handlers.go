package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/riskdash/riskdash/internal/adapters/store"
	"github.com/riskdash/riskdash/internal/core"
)

const maxPageSize = 100

type analyzeRequest struct {
	Content     string `json:"content"`
	MessageType string `json:"message_type"`
	Sender      string `json:"sender"`
	Subject     string `json:"subject"`
	PhoneNumber string `json:"phone_number"`
}

type socialMediaRequest struct {
	Content   string   `json:"content"`
	Platforms []string `json:"platforms"`
}

func (s *Server) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "content is required"})
		return
	}

	channel := core.Channel(strings.ToLower(strings.TrimSpace(req.MessageType)))
	if channel == "" {
		channel = core.ChannelEmail
	}

	rec, err := s.service.Analyze(c.Request.Context(), core.AnalyzeRequest{
		Content:     s.textProc.Process(req.Content, s.maxContentBytes),
		Channel:     channel,
		Sender:      req.Sender,
		Subject:     req.Subject,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		s.logger.Error("Analysis failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "analysis failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": rec})
}

func (s *Server) analyzeSocialMedia(c *gin.Context) {
	var req socialMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "content is required"})
		return
	}
	if len(req.Platforms) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "at least one platform is required"})
		return
	}

	content := s.textProc.Process(req.Content, s.maxContentBytes)
	verdicts := s.service.AnalyzeForPlatforms(c.Request.Context(), content, req.Platforms)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": verdicts})
}

func (s *Server) listScans(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 {
		limit = 20
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	filter := core.ListFilter{
		Channel:   core.Channel(c.Query("message_type")),
		Result:    core.Result(c.Query("result")),
		Ascending: c.DefaultQuery("direction", "desc") == "asc",
	}

	records, next, err := s.service.History(c.Request.Context(), filter, c.Query("cursor"), limit)
	if err != nil {
		if errors.Is(err, store.ErrBadCursor) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid cursor"})
			return
		}
		s.logger.Error("Failed to list scans", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to list scans"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": records, "next_cursor": next})
}

func (s *Server) getScan(c *gin.Context) {
	rec, err := s.service.Scan(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "scan not found"})
			return
		}
		s.logger.Error("Failed to fetch scan", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch scan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": rec})
}

func (s *Server) deleteScan(c *gin.Context) {
	err := s.service.DeleteScan(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "scan not found"})
			return
		}
		s.logger.Error("Failed to delete scan", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to delete scan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) analytics(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	if days <= 0 {
		days = 7
	}
	if days > 365 {
		days = 365
	}

	summary, err := s.service.Analytics(c.Request.Context(), days)
	if err != nil {
		s.logger.Error("Failed to compute analytics", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to compute analytics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": summary})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
