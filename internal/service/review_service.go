package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"docboard/internal/domain"
	"docboard/internal/export"
	"docboard/internal/port"
	"docboard/internal/review"
)

// OpenReviewOutput is what a freshly opened review session exposes to the
// boundary: the working field set, per-field confidence bands, and warnings
// that must be surfaced before approval.
type OpenReviewOutput struct {
	Document domain.ReviewDocument            `json:"document"`
	Fields   []domain.ExtractedField          `json:"fields"`
	Bands    map[string]domain.ConfidenceBand `json:"bands"`
	Warnings []string                         `json:"warnings"`
	Preview  []byte                           `json:"-"`
}

// ReviewService defines the document review workflow contract. One session
// may be open per document; approve and reject are terminal.
type ReviewService interface {
	ListPending(ctx context.Context, offset, limit int) ([]domain.ReviewDocument, int, error)
	Open(ctx context.Context, id uuid.UUID) (*OpenReviewOutput, error)
	EditField(ctx context.Context, id uuid.UUID, field, value string) ([]domain.ExtractedField, error)
	Approve(ctx context.Context, id uuid.UUID) (*domain.ReviewDocument, error)
	Reject(ctx context.Context, id uuid.UUID) (*domain.ReviewDocument, error)
	CloseSession(id uuid.UUID)
	ExportQueue(ctx context.Context) (*excelize.File, string, error)
}

type reviewService struct {
	docRepo    port.ReviewDocumentRepository
	storage    port.ObjectStorage
	notifier   port.ReviewNotifier
	reviewerTo string

	mu       sync.Mutex
	target   uuid.UUID
	sessions map[uuid.UUID]*review.Session
}

// NewReviewService creates a new ReviewService implementation. reviewerTo is
// the notification recipient; empty disables outcome notifications.
func NewReviewService(
	docRepo port.ReviewDocumentRepository,
	storage port.ObjectStorage,
	notifier port.ReviewNotifier,
	reviewerTo string,
) ReviewService {
	return &reviewService{
		docRepo:    docRepo,
		storage:    storage,
		notifier:   notifier,
		reviewerTo: reviewerTo,
		sessions:   make(map[uuid.UUID]*review.Session),
	}
}

func (s *reviewService) ListPending(ctx context.Context, offset, limit int) ([]domain.ReviewDocument, int, error) {
	return s.docRepo.ListPending(ctx, offset, limit)
}

// Open fetches the document and acquires its preview. The fetch is a remote
// call; by the time it returns the operator may already have opened another
// document, in which case the stale result is dropped without touching the
// newer session.
func (s *reviewService) Open(ctx context.Context, id uuid.UUID) (*OpenReviewOutput, error) {
	s.mu.Lock()
	s.target = id
	s.mu.Unlock()

	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	session, err := review.Open(ctx, *doc, s.storage)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.target != id {
		s.mu.Unlock()
		session.Close()
		log.Printf("reviewService.Open: dropping stale open result for document %s", id)
		return nil, domain.ErrStaleReviewTarget
	}
	if prev, ok := s.sessions[id]; ok {
		prev.Close()
	}
	s.sessions[id] = session
	s.mu.Unlock()

	return &OpenReviewOutput{
		Document: *doc,
		Fields:   session.Fields(),
		Bands:    session.Bands(),
		Warnings: session.LowConfidenceWarnings(),
		Preview:  session.Preview().Bytes(),
	}, nil
}

func (s *reviewService) session(id uuid.UUID) *review.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

func (s *reviewService) dropSession(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	if s.target == id {
		s.target = uuid.Nil
	}
}

func (s *reviewService) EditField(_ context.Context, id uuid.UUID, field, value string) ([]domain.ExtractedField, error) {
	session := s.session(id)
	if session == nil {
		return nil, domain.ErrDocumentNotFound
	}
	if err := session.Edit(field, value); err != nil {
		return nil, err
	}
	return session.Fields(), nil
}

func (s *reviewService) Approve(ctx context.Context, id uuid.UUID) (*domain.ReviewDocument, error) {
	session := s.session(id)
	if session == nil {
		return nil, domain.ErrDocumentNotFound
	}

	final, err := session.Approve()
	if err != nil {
		return nil, err
	}
	s.dropSession(id)

	return s.commitOutcome(ctx, id, domain.ReviewStateApproved, final)
}

func (s *reviewService) Reject(ctx context.Context, id uuid.UUID) (*domain.ReviewDocument, error) {
	session := s.session(id)
	if session == nil {
		return nil, domain.ErrDocumentNotFound
	}

	if err := session.Reject(); err != nil {
		return nil, err
	}
	s.dropSession(id)

	// Edits are discarded on reject; the stored extraction stands.
	return s.commitOutcome(ctx, id, domain.ReviewStateRejected, nil)
}

func (s *reviewService) commitOutcome(ctx context.Context, id uuid.UUID, state domain.ReviewState, final []domain.ExtractedField) (*domain.ReviewDocument, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.State != domain.ReviewStatePendingReview {
		// Another actor already closed this review.
		return nil, domain.ErrStaleReviewTarget
	}

	now := time.Now().UTC()
	doc.State = state
	doc.ReviewedAt = &now
	if final != nil {
		doc.ExtractedData = final
	}

	log.Printf("reviewService.commitOutcome: document %s -> %s", id, state)

	if err := s.docRepo.UpdateOutcome(ctx, doc); err != nil {
		return nil, fmt.Errorf("persisting review outcome: %w", err)
	}

	// Notification failures never unwind a committed outcome.
	if s.notifier != nil && s.reviewerTo != "" {
		if nerr := s.notifier.SendReviewOutcome(ctx, s.reviewerTo, doc); nerr != nil {
			log.Printf("reviewService.commitOutcome: outcome notification failed for %s: %v", id, nerr)
		}
	}
	return doc, nil
}

func (s *reviewService) CloseSession(id uuid.UUID) {
	session := s.session(id)
	if session == nil {
		return
	}
	session.Close()
	s.dropSession(id)
}

func (s *reviewService) ExportQueue(ctx context.Context) (*excelize.File, string, error) {
	docs, _, err := s.docRepo.ListPending(ctx, 0, 10000)
	if err != nil {
		return nil, "", fmt.Errorf("listing pending documents: %w", err)
	}
	f, err := export.NewReviewQueueWorkbook(docs)
	if err != nil {
		return nil, "", fmt.Errorf("building workbook: %w", err)
	}
	return f, export.BuildFilename("review_queue"), nil
}
