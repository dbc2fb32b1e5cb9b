package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"smartexam_backend/internal/compiler"
	"smartexam_backend/internal/model"
	"smartexam_backend/internal/repository"
	"smartexam_backend/internal/util"
	"smartexam_backend/pkg/logger"
	"smartexam_backend/pkg/monitoring"
)

// AnalyzeRequest is one paper submitted for analysis.
type AnalyzeRequest struct {
	PaperText    string `json:"paperText" binding:"required"`
	SyllabusText string `json:"syllabusText"`
	SyllabusRef  string `json:"syllabusRef"`
}

// AnalyzeResponse is the synchronous result of one analysis run.
type AnalyzeResponse struct {
	JobID     string                  `json:"jobId"`
	Status    string                  `json:"status"`
	Subject   string                  `json:"subject"`
	Score     int                     `json:"score"`
	Report    *compiler.Report        `json:"report"`
	Questions []compiler.QuestionNode `json:"questions"`
	MarkupURL string                  `json:"markupUrl,omitempty"`
}

// DashboardView is the flattened per-job summary used by frontends.
type DashboardView struct {
	JobID           string   `json:"jobId"`
	Status          string   `json:"status"`
	Subject         string   `json:"subject"`
	Score           int      `json:"score"`
	QuestionCount   int      `json:"questionCount"`
	DeclaredMarks   int      `json:"declaredMarks"`
	CalculatedMarks int      `json:"calculatedMarks"`
	DeclaredTime    int      `json:"declaredTime"`
	EstimatedTime   int      `json:"estimatedTime"`
	Warnings        []string `json:"warnings"`
	Suggestions     []string `json:"suggestions"`
	CreatedAt       string   `json:"createdAt"`
}

type AnalysisService struct {
	JobRepo *repository.AnalysisJobRepository
	Storage *StorageService

	mu         sync.RWMutex
	thresholds compiler.Thresholds
}

func NewAnalysisService(jobRepo *repository.AnalysisJobRepository, storage *StorageService, th compiler.Thresholds) *AnalysisService {
	return &AnalysisService{JobRepo: jobRepo, Storage: storage, thresholds: th}
}

// SetThresholds swaps the analysis tuning, used by config hot-reload.
// In-flight runs keep the thresholds they started with.
func (s *AnalysisService) SetThresholds(th compiler.Thresholds) {
	s.mu.Lock()
	s.thresholds = th
	s.mu.Unlock()
}

func (s *AnalysisService) currentThresholds() compiler.Thresholds {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.thresholds
}

// Analyze runs the compiler pipeline over one paper snapshot, persists the
// job and its artifacts, and returns the completed job. An empty or
// whitespace-only paper is recorded as a rejected job and reported as a
// client error.
func (s *AnalysisService) Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResponse, error) {
	start := time.Now()

	result, err := compiler.Run(compiler.Input{
		RawText:      req.PaperText,
		SyllabusText: req.SyllabusText,
		SyllabusRef:  req.SyllabusRef,
	}, compiler.Options{Thresholds: s.currentThresholds()})

	if err != nil {
		if errors.Is(err, compiler.ErrEmptyInput) {
			job := &model.AnalysisJob{
				Status:     model.JobRejected,
				InputChars: len(req.PaperText),
			}
			if dbErr := s.JobRepo.Create(job); dbErr != nil {
				logger.Log.Error("Failed to persist rejected job", zap.Error(dbErr))
			}
			monitoring.ObserveAnalysis(model.JobRejected, time.Since(start), 0)
			return nil, err
		}
		monitoring.ObserveAnalysis(model.JobFailed, time.Since(start), 0)
		return nil, err
	}

	reportJSON, err := json.Marshal(result.Report)
	if err != nil {
		return nil, err
	}
	tokensJSON, err := json.Marshal(result.Tokens)
	if err != nil {
		return nil, err
	}
	questionsJSON, err := json.Marshal(result.Questions)
	if err != nil {
		return nil, err
	}

	job := &model.AnalysisJob{
		Status:          model.JobCompleted,
		Subject:         result.Header.Subject,
		SyllabusRef:     req.SyllabusRef,
		DeclaredMarks:   result.Header.TotalMarks,
		CalculatedMarks: result.Report.Statistics.TotalMarksCalculated,
		DeclaredTime:    result.Header.TotalTime,
		EstimatedTime:   result.Report.Statistics.EstimatedTimeMinutes,
		QuestionCount:   len(result.Questions),
		Score:           result.Report.CrispnessScore,
		InputChars:      len(req.PaperText),
		Markup:          result.Markup,
		Report:          reportJSON,
		Tokens:          tokensJSON,
		Questions:       questionsJSON,
	}

	if err := s.JobRepo.Create(job); err != nil {
		monitoring.ObserveAnalysis(model.JobFailed, time.Since(start), 0)
		return nil, err
	}

	s.storeArtifacts(ctx, job, result)
	s.JobRepo.CacheReport(ctx, job.ID, job.Report)

	monitoring.ObserveAnalysis(model.JobCompleted, time.Since(start), job.Score)

	return &AnalyzeResponse{
		JobID:     job.ID,
		Status:    job.Status,
		Subject:   job.Subject,
		Score:     job.Score,
		Report:    result.Report,
		Questions: result.Questions,
		MarkupURL: job.MarkupURL,
	}, nil
}

// storeArtifacts uploads the markup document and the raw source snapshot.
// Storage failures are logged and tolerated: the job row already carries
// everything the API serves.
func (s *AnalysisService) storeArtifacts(ctx context.Context, job *model.AnalysisJob, result *compiler.Result) {
	markupURL, err := s.Storage.Upload(ctx, "jobs/"+job.ID+"/input.qp",
		strings.NewReader(result.Markup), int64(len(result.Markup)), "text/plain")
	if err != nil {
		logger.Log.Warn("Failed to store markup artifact", zap.String("job_id", job.ID), zap.Error(err))
	}

	sourceURL, err := s.Storage.Upload(ctx, "jobs/"+job.ID+"/source.txt",
		strings.NewReader(result.CleanText), int64(len(result.CleanText)), "text/plain")
	if err != nil {
		logger.Log.Warn("Failed to store source artifact", zap.String("job_id", job.ID), zap.Error(err))
	}

	if markupURL == "" && sourceURL == "" {
		return
	}

	job.MarkupURL = markupURL
	job.SourceURL = sourceURL
	if err := s.JobRepo.DB.Model(job).Updates(map[string]interface{}{
		"markup_url": markupURL,
		"source_url": sourceURL,
	}).Error; err != nil {
		logger.Log.Warn("Failed to record artifact URLs", zap.String("job_id", job.ID), zap.Error(err))
	}
}

func (s *AnalysisService) GetJob(id string) (*model.AnalysisJob, error) {
	job, err := s.JobRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrJobNotFound
		}
		return nil, err
	}
	return job, nil
}

func (s *AnalysisService) ListJobs(page, limit int, status string) ([]model.AnalysisJob, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.JobRepo.FindPage(page, limit, status)
}

func (s *AnalysisService) GetReport(ctx context.Context, id string) (json.RawMessage, error) {
	report, err := s.JobRepo.GetReport(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrJobNotFound
		}
		return nil, err
	}
	return report, nil
}

func (s *AnalysisService) GetDashboard(id string) (*DashboardView, error) {
	job, err := s.GetJob(id)
	if err != nil {
		return nil, err
	}

	view := &DashboardView{
		JobID:           job.ID,
		Status:          job.Status,
		Subject:         job.Subject,
		Score:           job.Score,
		QuestionCount:   job.QuestionCount,
		DeclaredMarks:   job.DeclaredMarks,
		CalculatedMarks: job.CalculatedMarks,
		DeclaredTime:    job.DeclaredTime,
		EstimatedTime:   job.EstimatedTime,
		Warnings:        []string{},
		Suggestions:     []string{},
		CreatedAt:       job.CreatedAt.Format(time.RFC3339),
	}

	if len(job.Report) > 0 {
		var report compiler.Report
		if err := json.Unmarshal(job.Report, &report); err == nil {
			view.Warnings = report.Warnings
			view.Suggestions = report.Suggestions
		}
	}

	return view, nil
}

// DeleteJob removes the job row, its cached report and its stored
// artifacts.
func (s *AnalysisService) DeleteJob(ctx context.Context, id string) error {
	job, err := s.GetJob(id)
	if err != nil {
		return err
	}

	if err := s.JobRepo.Delete(ctx, job.ID); err != nil {
		return err
	}

	for _, name := range []string{"jobs/" + job.ID + "/input.qp", "jobs/" + job.ID + "/source.txt"} {
		if err := s.Storage.Delete(ctx, name); err != nil {
			logger.Log.Warn("Failed to delete artifact", zap.String("object", name), zap.Error(err))
		}
	}

	return nil
}
