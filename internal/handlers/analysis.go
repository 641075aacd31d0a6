package handlers

import (
	"net/http"
	"time"

	"github.com/alimgiray/codestats/internal/services"
	"github.com/alimgiray/codestats/pkg/config"
	"github.com/alimgiray/codestats/pkg/logger"
	"github.com/gin-gonic/gin"
)

// AnalyzeRequest is the JSON body of POST /api/analyze
type AnalyzeRequest struct {
	RepositoryPath string   `json:"repository_path" binding:"required"`
	Days           *int     `json:"days"`
	Since          *string  `json:"since"`
	Until          *string  `json:"until"`
	IncludeUsers   []string `json:"include_users"`
	ExcludeUsers   []string `json:"exclude_users"`
}

type AnalysisHandler struct {
	analysisService *services.AnalysisService
}

func NewAnalysisHandler(analysisService *services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
	}
}

// Analyze runs the statistics pipeline against a local repository and
// returns the aggregated result as JSON
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	since, err := parseDateParam(req.Since)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid since date, expected YYYY-MM-DD"})
		return
	}
	until, err := parseDateParam(req.Until)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid until date, expected YYYY-MM-DD"})
		return
	}

	cfg := config.DefaultAnalysisConfig()
	cfg.IncludeUsers = req.IncludeUsers
	cfg.ExcludeUsers = req.ExcludeUsers

	result, err := h.analysisService.AnalyzeRepository(&services.AnalysisRequest{
		RepositoryPath: req.RepositoryPath,
		Config:         cfg,
		Days:           req.Days,
		Since:          since,
		Until:          until,
	})
	if err != nil {
		logger.WithError(err).Errorf("analysis failed for %s", req.RepositoryPath)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// parseDateParam parses an optional YYYY-MM-DD request parameter
func parseDateParam(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
