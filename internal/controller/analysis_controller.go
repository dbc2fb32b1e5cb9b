package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"smartexam_backend/internal/compiler"
	"smartexam_backend/internal/service"
	"smartexam_backend/internal/util"
)

type AnalysisController struct {
	Service *service.AnalysisService
}

func NewAnalysisController(svc *service.AnalysisService) *AnalysisController {
	return &AnalysisController{Service: svc}
}

// @Summary Analyze a question paper
// @Tags analysis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.AnalyzeRequest true "Paper text with optional syllabus"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/papers/analyze [post]
func (c *AnalysisController) Analyze(ctx *gin.Context) {
	var req service.AnalyzeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.Analyze(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, compiler.ErrEmptyInput) {
			util.BadRequest(ctx, "paper text is empty")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, resp)
}

// @Summary List analysis jobs
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "Filter by job status"
// @Success 200 {object} util.Response
// @Router /api/jobs [get]
func (c *AnalysisController) ListJobs(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	status := ctx.Query("status")

	jobs, total, err := c.Service.ListJobs(page, limit, status)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  jobs,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary Get one analysis job
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/jobs/{id} [get]
func (c *AnalysisController) GetJob(ctx *gin.Context) {
	job, err := c.Service.GetJob(ctx.Param("id"))
	if err != nil {
		c.respondJobError(ctx, err)
		return
	}

	util.Success(ctx, job)
}

// @Summary Get a job's quality report
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/jobs/{id}/report [get]
func (c *AnalysisController) GetReport(ctx *gin.Context) {
	report, err := c.Service.GetReport(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.respondJobError(ctx, err)
		return
	}

	util.Success(ctx, report)
}

// @Summary Get a job's markup document
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/jobs/{id}/markup [get]
func (c *AnalysisController) GetMarkup(ctx *gin.Context) {
	job, err := c.Service.GetJob(ctx.Param("id"))
	if err != nil {
		c.respondJobError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"markup": job.Markup,
		"url":    job.MarkupURL,
	})
}

// @Summary Get a job's token stream
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/jobs/{id}/tokens [get]
func (c *AnalysisController) GetTokens(ctx *gin.Context) {
	job, err := c.Service.GetJob(ctx.Param("id"))
	if err != nil {
		c.respondJobError(ctx, err)
		return
	}

	util.Success(ctx, job.Tokens)
}

// @Summary Get a job's annotated question list
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/jobs/{id}/ast [get]
func (c *AnalysisController) GetAST(ctx *gin.Context) {
	job, err := c.Service.GetJob(ctx.Param("id"))
	if err != nil {
		c.respondJobError(ctx, err)
		return
	}

	util.Success(ctx, job.Questions)
}

// @Summary Get a job's dashboard summary
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/jobs/{id}/dashboard [get]
func (c *AnalysisController) GetDashboard(ctx *gin.Context) {
	view, err := c.Service.GetDashboard(ctx.Param("id"))
	if err != nil {
		c.respondJobError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// @Summary Delete an analysis job
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/jobs/{id} [delete]
func (c *AnalysisController) DeleteJob(ctx *gin.Context) {
	if err := c.Service.DeleteJob(ctx.Request.Context(), ctx.Param("id")); err != nil {
		c.respondJobError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}

func (c *AnalysisController) respondJobError(ctx *gin.Context, err error) {
	if errors.Is(err, util.ErrJobNotFound) {
		util.NotFound(ctx)
		return
	}
	util.LogInternalError(ctx, err)
}
