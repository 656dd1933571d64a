package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luvi2001/yfcapp/internal/model"
	"github.com/luvi2001/yfcapp/internal/service"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type StatsHandler struct {
	stats  *service.StatsService
	export *service.ExportService
}

func NewStatsHandler(stats *service.StatsService, export *service.ExportService) *StatsHandler {
	return &StatsHandler{stats: stats, export: export}
}

func (h *StatsHandler) Team(c *gin.Context) {
	var req model.WindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.stats.TeamWindow(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// TeamExport takes startDate and endDate from the query string.
func (h *StatsHandler) TeamExport(c *gin.Context) {
	var req model.WindowRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	var buf bytes.Buffer
	if err := h.export.WriteTeamWindow(c.Request.Context(), req, &buf); err != nil {
		fail(c, err)
		return
	}
	name := fmt.Sprintf("team-%s-%s.xlsx", req.StartDate, req.EndDate)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, xlsxMIME, buf.Bytes())
}

func (h *StatsHandler) Progress(c *gin.Context) {
	var req model.WindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.stats.ProgressWindow(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
