package usecase

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReportQuery holds the moderation queue filters.
type ReportQuery struct {
	request.PaginatedRequest
	Status      *string
	ContentType *string
}

type ModerationService interface {
	// Authenticated users
	ReportContent(ctx context.Context, reporterID uuid.UUID, req *request.CreateReportRequest) (*response.ReportResponse, error)
	WithdrawReport(ctx context.Context, reporterID uuid.UUID, reportID string) error

	// Staff
	GetReports(ctx context.Context, q *ReportQuery) (*response.PaginatedResponse[response.ReportResponse], error)
	DismissReport(ctx context.Context, moderatorID uuid.UUID, reportID string) (*response.ReportResponse, error)
	RemoveReportedContent(ctx context.Context, moderatorID uuid.UUID, reportID string) (*response.ReportResponse, error)
}

type moderationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewModerationService(repo *repository.Repository, log *zap.Logger) ModerationService {
	return &moderationService{
		repo: repo,
		log:  log.With(zap.String("service", "moderation")),
	}
}

func (s *moderationService) ReportContent(ctx context.Context, reporterID uuid.UUID, req *request.CreateReportRequest) (*response.ReportResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	contentType := entity.ContentType(req.ContentType)
	contentID, err := parseID(req.ContentType, req.ContentID)
	if err != nil {
		return nil, err
	}

	report := &entity.ReportedContent{
		Base:        newBase(),
		ContentType: contentType,
		ReporterID:  reporterID,
		Reason:      req.Reason,
		Status:      entity.ReportStatusPending,
	}

	// The reported content must exist
	switch contentType {
	case entity.ContentTypeReview:
		review, err := s.repo.Review.FindByID(ctx, contentID)
		if err != nil {
			return nil, fmt.Errorf("get review: %w", err)
		}
		if review == nil {
			return nil, fmt.Errorf("review %s not found", req.ContentID)
		}
		report.ReviewID = &contentID
	case entity.ContentTypeReply:
		reply, err := s.repo.Reply.FindByID(ctx, contentID)
		if err != nil {
			return nil, fmt.Errorf("get reply: %w", err)
		}
		if reply == nil {
			return nil, fmt.Errorf("reply %s not found", req.ContentID)
		}
		report.ReplyID = &contentID
	}

	pending, err := s.repo.Report.FindPending(ctx, reporterID, contentType, contentID)
	if err != nil {
		return nil, fmt.Errorf("check existing report: %w", err)
	}
	if pending != nil {
		return nil, fmt.Errorf("content already reported and awaiting review")
	}

	if err := s.repo.Report.Create(ctx, report); err != nil {
		s.log.Error("Failed to create report", zap.Error(err), zap.String("content_id", req.ContentID))
		return nil, fmt.Errorf("create report: %w", err)
	}

	s.log.Info("Content reported",
		zap.String("report_id", report.ID.String()),
		zap.String("content_type", req.ContentType),
		zap.String("content_id", req.ContentID),
		zap.String("reporter_id", reporterID.String()),
	)

	resp := response.ReportToResponse(report)
	return &resp, nil
}

func (s *moderationService) find(ctx context.Context, reportID string) (*entity.ReportedContent, error) {
	id, err := parseID("report", reportID)
	if err != nil {
		return nil, err
	}

	report, err := s.repo.Report.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	if report == nil {
		return nil, fmt.Errorf("report %s not found", reportID)
	}
	return report, nil
}

func (s *moderationService) WithdrawReport(ctx context.Context, reporterID uuid.UUID, reportID string) error {
	report, err := s.find(ctx, reportID)
	if err != nil {
		return err
	}
	if report.ReporterID != reporterID {
		return fmt.Errorf("forbidden: report belongs to another user")
	}

	withdrawn, err := s.repo.Report.Withdraw(ctx, report.ID)
	if err != nil {
		return fmt.Errorf("withdraw report: %w", err)
	}
	if !withdrawn {
		return fmt.Errorf("report already %s and cannot be withdrawn", report.Status)
	}

	s.log.Info("Report withdrawn", zap.String("report_id", reportID))
	return nil
}

func (s *moderationService) GetReports(ctx context.Context, q *ReportQuery) (*response.PaginatedResponse[response.ReportResponse], error) {
	filter := entity.ReportFilter{Status: q.Status, ContentType: q.ContentType}
	if q.Status != nil {
		switch entity.ReportStatus(*q.Status) {
		case entity.ReportStatusPending, entity.ReportStatusDismissed, entity.ReportStatusResolved:
		default:
			return nil, fmt.Errorf("invalid report status %q", *q.Status)
		}
	}
	if q.ContentType != nil {
		switch entity.ContentType(*q.ContentType) {
		case entity.ContentTypeReview, entity.ContentTypeReply:
		default:
			return nil, fmt.Errorf("invalid content type %q", *q.ContentType)
		}
	}

	reports, err := s.repo.Report.FindAll(ctx, filter, q.Limit(), q.Offset())
	if err != nil {
		s.log.Error("Failed to get reports", zap.Error(err))
		return nil, fmt.Errorf("get reports: %w", err)
	}

	total, err := s.repo.Report.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}

	return response.NewPaginatedResponse(response.ReportsToResponse(reports), q.Page, q.Limit(), total), nil
}

func (s *moderationService) DismissReport(ctx context.Context, moderatorID uuid.UUID, reportID string) (*response.ReportResponse, error) {
	report, err := s.find(ctx, reportID)
	if err != nil {
		return nil, err
	}

	dismissed, err := s.repo.Report.Dismiss(ctx, report.ID, moderatorID)
	if err != nil {
		return nil, fmt.Errorf("dismiss report: %w", err)
	}
	if !dismissed {
		return nil, fmt.Errorf("report already %s", report.Status)
	}

	s.log.Info("Report dismissed",
		zap.String("report_id", reportID),
		zap.String("moderator_id", moderatorID.String()),
	)
	return s.reload(ctx, report.ID)
}

func (s *moderationService) RemoveReportedContent(ctx context.Context, moderatorID uuid.UUID, reportID string) (*response.ReportResponse, error) {
	report, err := s.find(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.Status != entity.ReportStatusPending {
		return nil, fmt.Errorf("report already %s", report.Status)
	}

	// A removed review changes its movie's rating
	var movieID *uuid.UUID
	if report.ContentType == entity.ContentTypeReview {
		review, err := s.repo.Review.FindByID(ctx, report.ContentID())
		if err != nil {
			return nil, fmt.Errorf("get review: %w", err)
		}
		if review != nil {
			movieID = &review.MovieID
		}
	}

	resolved, err := s.repo.Report.ResolveContent(ctx, report, moderatorID)
	if err != nil {
		return nil, fmt.Errorf("remove reported content: %w", err)
	}

	if movieID != nil {
		if err := refreshMovieRating(ctx, s.repo, *movieID); err != nil {
			s.log.Warn("Failed to update movie rating", zap.Error(err), zap.String("movie_id", movieID.String()))
		}
	}

	s.log.Info("Reported content removed",
		zap.String("report_id", reportID),
		zap.String("moderator_id", moderatorID.String()),
		zap.Int64("reports_resolved", resolved),
	)
	return s.reload(ctx, report.ID)
}

func (s *moderationService) reload(ctx context.Context, id uuid.UUID) (*response.ReportResponse, error) {
	report, err := s.repo.Report.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	if report == nil {
		return nil, fmt.Errorf("report %s not found", id)
	}

	resp := response.ReportToResponse(report)
	return &resp, nil
}
