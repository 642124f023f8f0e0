package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/swasthya/migrant-access-api/internal/apperrors"
	"github.com/swasthya/migrant-access-api/internal/models"
)

const (
	summaryUnavailable = "AI summary is currently unavailable. Please review the health records directly."
	summaryNoRecords   = "No health records available to summarize."
)

// SummaryService produces a best-effort AI summary of a migrant's record
// history. Access is gated on the same ReadRecords capability as the raw
// records; only the summarization itself is allowed to fail soft.
type SummaryService struct {
	records    *RecordService
	summarizer Summarizer
	logger     *logrus.Logger
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(records *RecordService, summarizer Summarizer, logger *logrus.Logger) *SummaryService {
	return &SummaryService{
		records:    records,
		summarizer: summarizer,
		logger:     logger,
	}
}

// Summarize returns an AI-generated summary of the subject's health
// records. Grant failures are returned as-is; any summarizer failure
// degrades to a fixed fallback string with a 200 response.
func (s *SummaryService) Summarize(ctx context.Context, grantID, subjectID string) (*models.SummaryResponse, *apperrors.ServiceError) {
	records, svcErr := s.records.ReadRecords(ctx, grantID, subjectID)
	if svcErr != nil {
		return nil, svcErr
	}

	response := &models.SummaryResponse{SubjectID: subjectID}

	if len(records) == 0 {
		response.Summary = summaryNoRecords
		return response, nil
	}

	if !s.summarizer.IsEnabled() {
		response.Summary = summaryUnavailable
		return response, nil
	}

	summary, err := s.summarizer.Summarize(ctx, formatRecordText(records))
	if err != nil {
		s.logger.WithError(err).WithField("subject_id", subjectID).
			Warn("Summarizer call failed, returning fallback")
		response.Summary = summaryUnavailable
		return response, nil
	}

	response.Summary = summary
	return response, nil
}

// formatRecordText flattens the record history into the plain-text form
// fed to the summarizer, newest first as returned by the store.
func formatRecordText(records []models.HealthRecord) string {
	var b strings.Builder
	for i, record := range records {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, record.Title, record.Content)
	}
	return b.String()
}
