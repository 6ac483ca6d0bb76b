package ses

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"docboard/internal/domain"
	"docboard/internal/port"
)

type sesNotifier struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESNotifier creates a new SES-backed ReviewNotifier.
func NewSESNotifier(region, fromAddress, fromName, frontendURL string) (port.ReviewNotifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesNotifier{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		frontendURL: frontendURL,
	}, nil
}

func (s *sesNotifier) SendReviewOutcome(ctx context.Context, toEmail string, doc *domain.ReviewDocument) error {
	docURL := fmt.Sprintf("%s/?tab=review&doc=%s", s.frontendURL, url.QueryEscape(doc.ID.String()))

	outcome := outcomeLabel(doc.State)
	subject := fmt.Sprintf("Document %s: %s", outcome, doc.FileName)
	htmlBody := buildOutcomeHTML(doc, outcome, docURL)
	textBody := fmt.Sprintf("The document %q (%s) has been %s.\n\nView it here:\n%s\n\nDocboard",
		doc.FileName, doc.DocumentType, strings.ToLower(outcome), docURL)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func outcomeLabel(state domain.ReviewState) string {
	switch state {
	case domain.ReviewStateApproved:
		return "Approved"
	case domain.ReviewStateRejected:
		return "Rejected"
	default:
		return "Updated"
	}
}

func buildOutcomeHTML(doc *domain.ReviewDocument, outcome, docURL string) string {
	color := "#4F46E5"
	if doc.State == domain.ReviewStateRejected {
		color = "#DC2626"
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Document %s</h2>
  <p>The document <strong>%s</strong> (%s) has been reviewed.</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: %s; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">View Document</a>
  </p>
  <p>Or copy and paste this link into your browser:</p>
  <p style="word-break: break-all; color: #666;">%s</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Docboard - Document Management Platform</p>
</body>
</html>`, outcome, doc.FileName, doc.DocumentType, docURL, color, docURL)
}
