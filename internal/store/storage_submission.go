package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/models"
)

// exportPageSize is the page size used when a caller needs every submission.
const exportPageSize = models.MaxLimit

// submissionStorage maps [models.Submission] onto the submissions collection.
type submissionStorage struct {
	documents DocumentStore
	logger    *logger.Logger
}

// NewSubmissionStorage constructs a [SubmissionStorage] on top of documents.
func NewSubmissionStorage(documents DocumentStore, logger *logger.Logger) SubmissionStorage {
	return &submissionStorage{documents: documents, logger: logger}
}

func (s *submissionStorage) Create(ctx context.Context, submission models.Submission) (models.Submission, error) {
	payload, err := ToDocument(submission)
	if err != nil {
		return models.Submission{}, err
	}

	doc, err := s.documents.Create(ctx, CollectionSubmissions, payload)
	if err != nil {
		return models.Submission{}, err
	}

	return submissionFromDocument(doc)
}

func (s *submissionStorage) Get(ctx context.Context, id string) (models.Submission, error) {
	doc, err := s.documents.Get(ctx, CollectionSubmissions, id)
	if err != nil {
		return models.Submission{}, err
	}

	return submissionFromDocument(doc)
}

func (s *submissionStorage) Update(ctx context.Context, submission models.Submission) (models.Submission, error) {
	patch, err := ToDocument(map[string]any{
		"status":                   submission.Status,
		"answers":                  submission.Answers,
		models.DocumentKeyRevision: submission.Revision,
	})
	if err != nil {
		return models.Submission{}, err
	}

	doc, err := s.documents.Update(ctx, CollectionSubmissions, submission.ID, patch)
	if err != nil {
		return models.Submission{}, err
	}

	return submissionFromDocument(doc)
}

func (s *submissionStorage) Delete(ctx context.Context, id string) error {
	return s.documents.Delete(ctx, CollectionSubmissions, id)
}

func (s *submissionStorage) List(ctx context.Context, formID string, query models.ListQuery) (models.Page[models.Submission], error) {
	opts := listOptions(query, map[string]string{parentIDKey: formID})

	page, err := s.documents.List(ctx, CollectionSubmissions, opts)
	if err != nil {
		return models.Page[models.Submission]{}, err
	}

	submissions, err := submissionsFromDocuments(ctx, page.Data)
	if err != nil {
		return models.Page[models.Submission]{}, err
	}

	return models.Page[models.Submission]{Data: submissions, Pagination: page.Pagination}, nil
}

func (s *submissionStorage) ListAll(ctx context.Context, formID string) ([]models.Submission, error) {
	opts := models.ListOptions{
		Filter: map[string]string{parentIDKey: formID},
		Limit:  exportPageSize,
		SortBy: models.DocumentKeyCreatedAt,
		Order:  models.OrderAsc,
	}

	all := make([]models.Submission, 0)
	for page := 1; ; page++ {
		opts.Page = page

		result, err := s.documents.List(ctx, CollectionSubmissions, opts)
		if err != nil {
			return nil, err
		}

		submissions, err := submissionsFromDocuments(ctx, result.Data)
		if err != nil {
			return nil, err
		}
		all = append(all, submissions...)

		if page >= result.Pagination.Pages {
			return all, nil
		}
	}
}

func (s *submissionStorage) ExistsFromIP(ctx context.Context, formID, ip string) (bool, error) {
	page, err := s.documents.List(ctx, CollectionSubmissions, models.ListOptions{
		Filter: map[string]string{
			parentIDKey:          formID,
			"metadata.ipAddress": ip,
		},
		Limit: 1,
	})
	if err != nil {
		return false, err
	}

	return page.Pagination.Total > 0, nil
}

func submissionFromDocument(doc models.Document) (models.Submission, error) {
	var submission models.Submission
	if err := FromDocument(doc, &submission); err != nil {
		return models.Submission{}, fmt.Errorf("submission %s: %w", doc.ID(), err)
	}
	if submission.Answers == nil {
		submission.Answers = map[string]any{}
	}
	return submission, nil
}

func submissionsFromDocuments(ctx context.Context, docs []models.Document) ([]models.Submission, error) {
	submissions := make([]models.Submission, 0, len(docs))
	for _, doc := range docs {
		submission, err := submissionFromDocument(doc)
		if err != nil {
			logger.FromContext(ctx).Err(err).
				Str("func", "submissionStorage.List").
				Str("submission_id", doc.ID()).
				Msg("failed to decode stored submission")
			return nil, err
		}
		submissions = append(submissions, submission)
	}
	return submissions, nil
}
