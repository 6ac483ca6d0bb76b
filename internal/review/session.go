// Package review implements the document review workflow: a session opened
// on a pending document, confidence-scored field edits, and terminal
// approve/reject transitions. Extraction happens upstream; sessions only
// consume documents that are already pending review with populated fields.
package review

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"docboard/internal/domain"
	"docboard/internal/port"
)

// Preview is the transient display resource held while a document is open
// for review. It is acquired on session open and released on every exit
// path; Release is idempotent.
type Preview struct {
	data     []byte
	released bool
}

// Bytes returns the preview content, or nil after release.
func (p *Preview) Bytes() []byte {
	if p.released {
		return nil
	}
	return p.data
}

// Release drops the preview content.
func (p *Preview) Release() {
	p.data = nil
	p.released = true
}

// Session is one open review of a single document. A session is terminal
// after Approve, Reject, or Close; further edits fail with ErrReviewClosed.
type Session struct {
	doc     domain.ReviewDocument
	preview *Preview
	closed  bool
}

// Open starts a review session, acquiring the preview from object storage.
// Documents not in pending review cannot be opened.
func Open(ctx context.Context, doc domain.ReviewDocument, storage port.ObjectStorage) (*Session, error) {
	if doc.State != domain.ReviewStatePendingReview {
		return nil, domain.ErrDocumentNotReviewable
	}

	data, err := storage.Download(ctx, doc.StorageBucket, doc.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("fetching preview for %s: %w", doc.ID, domain.ErrDownloadFailed)
	}

	working := doc
	working.ExtractedData = append([]domain.ExtractedField(nil), doc.ExtractedData...)

	return &Session{
		doc:     working,
		preview: &Preview{data: data},
	}, nil
}

// DocumentID identifies the session's target; async fetch results must be
// checked against it before committing, so a result for a document the
// operator already navigated away from is dropped.
func (s *Session) DocumentID() uuid.UUID {
	return s.doc.ID
}

// Preview returns the held display resource.
func (s *Session) Preview() *Preview {
	return s.preview
}

// Fields returns the current (possibly edited) field set.
func (s *Session) Fields() []domain.ExtractedField {
	return append([]domain.ExtractedField(nil), s.doc.ExtractedData...)
}

// Edit updates exactly one field's value. Confidence is deliberately left
// untouched: it reflects original extraction quality, so reviewers can see
// which fields needed correction.
func (s *Session) Edit(name, value string) error {
	if s.closed {
		return domain.ErrReviewClosed
	}
	for i := range s.doc.ExtractedData {
		if s.doc.ExtractedData[i].Name == name {
			s.doc.ExtractedData[i].Value = value
			return nil
		}
	}
	return domain.ErrUnknownField
}

// Bands maps each field name to its confidence band.
func (s *Session) Bands() map[string]domain.ConfidenceBand {
	bands := make(map[string]domain.ConfidenceBand, len(s.doc.ExtractedData))
	for _, f := range s.doc.ExtractedData {
		bands[f.Name] = domain.BandFor(f.Confidence)
	}
	return bands
}

// LowConfidenceWarnings lists per-field warnings that must be surfaced
// before approval. Approval itself is not blocked.
func (s *Session) LowConfidenceWarnings() []string {
	var warnings []string
	for _, f := range s.doc.ExtractedData {
		if domain.BandFor(f.Confidence) == domain.BandLow {
			warnings = append(warnings, fmt.Sprintf("field %q extracted with low confidence (%.2f); verify before approving", f.Name, f.Confidence))
		}
	}
	return warnings
}

// Approve terminates the session, returning the full edited field set as
// the canonical record. The preview is released.
func (s *Session) Approve() ([]domain.ExtractedField, error) {
	if s.closed {
		return nil, domain.ErrReviewClosed
	}
	final := s.Fields()
	s.close()
	return final, nil
}

// Reject terminates the session without persisting edits. The preview is
// released.
func (s *Session) Reject() error {
	if s.closed {
		return domain.ErrReviewClosed
	}
	s.close()
	return nil
}

// Close abandons the session (navigation away, dialog close). Safe to call
// after Approve or Reject.
func (s *Session) Close() {
	if !s.closed {
		s.close()
	}
}

func (s *Session) close() {
	s.closed = true
	s.preview.Release()
}
