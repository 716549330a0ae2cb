package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"finmanager/internal/buildinfo"
	apperrors "finmanager/internal/errors"
	"finmanager/internal/logger"
)

// ingestLevels are the levels a client may log at.
var ingestLevels = map[string]logger.Level{
	"info":  logger.LevelInfo,
	"warn":  logger.LevelWarn,
	"error": logger.LevelError,
}

// SystemHandler serves backend status and ingests client log entries.
type SystemHandler struct {
	log         *logger.Logger
	environment string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(log *logger.Logger, environment string) *SystemHandler {
	return &SystemHandler{log: log, environment: environment}
}

// BackendInfo describes the running backend.
type BackendInfo struct {
	Version     string `json:"version" example:"1.0.0"`
	Status      string `json:"status" example:"Online"`
	Environment string `json:"environment" example:"development"`
}

// SystemInfoResponse is the body of GET /system/info.
type SystemInfoResponse struct {
	Backend BackendInfo `json:"backend"`
}

// LogRequest is a client log entry. Level and Message are decoded loosely so
// that type errors get the specific messages below. Level defaults to info
// only when the key is absent; an explicit null is rejected.
type LogRequest struct {
	Level   json.RawMessage `json:"level" swaggertype:"string" enums:"info,warn,error" default:"info"`
	Message any             `json:"message" swaggertype:"string"`
	Meta    map[string]any  `json:"meta"`
}

// StatusResponse acknowledges an accepted request.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// GetInfo reports backend version, status and environment
// @Summary     System info
// @Tags        system
// @Produce     json
// @Success     200 {object} SystemInfoResponse
// @Router      /system/info [get]
func (h *SystemHandler) GetInfo(c *gin.Context) {
	c.JSON(http.StatusOK, SystemInfoResponse{Backend: BackendInfo{
		Version:     buildinfo.Version,
		Status:      "Online",
		Environment: h.environment,
	}})
}

// IngestLog writes a client log entry into the backend log
// @Summary     Ingest a client log entry
// @Description Accepts info, warn and error entries. Rate limited per client IP.
// @Tags        system
// @Accept      json
// @Produce     json
// @Param       request body LogRequest true "Log entry"
// @Success     200 {object} StatusResponse
// @Failure     400 {object} ErrorResponse "Invalid level or message"
// @Failure     429 {object} ErrorResponse "Rate limited"
// @Router      /system/logs [post]
func (h *SystemHandler) IngestLog(c *gin.Context) {
	var req LogRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(c, h.log, invalidInput(err), "Failed to ingest log")
		return
	}

	level, err := ingestLevel(req.Level)
	if err != nil {
		respondWithError(c, h.log, err, "Failed to ingest log")
		return
	}
	message, ok := req.Message.(string)
	if !ok || message == "" {
		respondWithError(c, h.log, apperrors.ErrInvalidLogMessage, "Failed to ingest log")
		return
	}

	fields := map[string]any{"timestamp": time.Now().UTC().Format(time.RFC3339)}
	for k, v := range req.Meta {
		fields[k] = v
	}
	fields["source"] = "frontend"

	h.log.LogMap(level, message, fields)
	c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

func ingestLevel(raw json.RawMessage) (logger.Level, error) {
	if len(raw) == 0 {
		return logger.LevelInfo, nil
	}
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return 0, apperrors.ErrInvalidLogLevel
	}
	level, ok := ingestLevels[name]
	if !ok {
		return 0, apperrors.ErrInvalidLogLevel
	}
	return level, nil
}
