package service

import (
	"context"
	"fmt"

	"bridgeseed-backend/internal/domain"
	"bridgeseed-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSendGridEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) send(ctx context.Context, to, toName, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	logger.ExternalServiceCall("sendgrid", "send", "subject", subject)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return &domain.DependencyError{Dependency: "email provider", Err: err}
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return &domain.DependencyError{Dependency: "email provider", Err: err}
	}
	logger.ExternalServiceResult("sendgrid", "send", nil)
	return nil
}

func (s *sendGridEmailService) SendSubmissionReceipt(ctx context.Context, email, name string, tx *domain.Transaction) error {
	subject := fmt.Sprintf("We received your submission (%s)", tx.ReferenceCode)
	body := fmt.Sprintf(
		"Hello %s,\n\nWe received your %s and it is now awaiting verification.\n\nReference code: %s\n\nPlease keep this code; the team uses it to match your bank transfer. You will get another email once verification is complete.\n\nThe BridgeSeed Team",
		name, describeKind(tx.Kind), tx.ReferenceCode)
	return s.send(ctx, email, name, subject, body)
}

func (s *sendGridEmailService) SendVerificationResult(ctx context.Context, email, name string, tx *domain.Transaction) error {
	var subject, body string
	switch tx.Status {
	case domain.TransactionStatusVerified:
		subject = fmt.Sprintf("Your %s has been verified", describeKind(tx.Kind))
		body = fmt.Sprintf(
			"Hello %s,\n\nGood news: your %s (ref %s) has been verified. Any points earned are already on your profile.\n\nThank you for supporting the community.\n\nThe BridgeSeed Team",
			name, describeKind(tx.Kind), tx.ReferenceCode)
	case domain.TransactionStatusRejected:
		subject = fmt.Sprintf("Your %s could not be verified", describeKind(tx.Kind))
		body = fmt.Sprintf(
			"Hello %s,\n\nUnfortunately your %s (ref %s) could not be verified.",
			name, describeKind(tx.Kind), tx.ReferenceCode)
		if tx.RejectionReason != "" {
			body += fmt.Sprintf("\n\nReason: %s", tx.RejectionReason)
		}
		body += "\n\nYou are welcome to submit again with a corrected receipt.\n\nThe BridgeSeed Team"
	default:
		return fmt.Errorf("no notification for transaction status %s", tx.Status)
	}
	return s.send(ctx, email, name, subject, body)
}

func (s *sendGridEmailService) SendBadgeResult(ctx context.Context, email, name string, req *domain.BadgeRequest) error {
	var subject, body string
	switch req.Status {
	case domain.BadgeRequestStatusApproved:
		subject = fmt.Sprintf("You earned the %s badge", req.BadgeName)
		body = fmt.Sprintf(
			"Hello %s,\n\nCongratulations, the %s badge is now on your profile.\n\nThe BridgeSeed Team",
			name, req.BadgeName)
	case domain.BadgeRequestStatusRejected:
		subject = fmt.Sprintf("Your %s badge request was declined", req.BadgeName)
		body = fmt.Sprintf(
			"Hello %s,\n\nYour request for the %s badge was declined by the team.\n\nThe BridgeSeed Team",
			name, req.BadgeName)
	default:
		return fmt.Errorf("no notification for badge request status %s", req.Status)
	}
	return s.send(ctx, email, name, subject, body)
}

func (s *sendGridEmailService) SendPendingDigest(ctx context.Context, adminEmail string, pendingTransactions, pendingBadges int) error {
	subject := "BridgeSeed verification queue digest"
	body := fmt.Sprintf(
		"Good morning,\n\nThe verification queue currently holds:\n\n  Transactions awaiting review: %d\n  Badge requests awaiting review: %d\n\nThe BridgeSeed Team",
		pendingTransactions, pendingBadges)
	return s.send(ctx, adminEmail, "Admin", subject, body)
}

func (s *sendGridEmailService) SendStalePurchaseNotice(ctx context.Context, adminEmail string, item *domain.MarketplaceItem) error {
	subject := fmt.Sprintf("Purchase claim on %q needs attention", item.Title)
	body := fmt.Sprintf(
		"Good morning,\n\nThe purchase claim on %q (%d MAD) has been waiting for verification for several days. Please approve or reject it so the item does not stay off the market.\n\nThe BridgeSeed Team",
		item.Title, item.PriceMAD)
	return s.send(ctx, adminEmail, "Admin", subject, body)
}

func describeKind(kind domain.TransactionKind) string {
	switch kind {
	case domain.TransactionKindCashDonation:
		return "cash donation"
	case domain.TransactionKindItemDonation:
		return "item donation"
	case domain.TransactionKindPurchase:
		return "purchase"
	}
	return "submission"
}

// noopEmailService is used when no SendGrid key is configured, for
// local development.
type noopEmailService struct{}

func NewNoopEmailService() EmailService {
	return noopEmailService{}
}

func (noopEmailService) SendSubmissionReceipt(ctx context.Context, email, name string, tx *domain.Transaction) error {
	logger.Debug("Email disabled, skipping submission receipt", "to", email)
	return nil
}

func (noopEmailService) SendVerificationResult(ctx context.Context, email, name string, tx *domain.Transaction) error {
	logger.Debug("Email disabled, skipping verification result", "to", email)
	return nil
}

func (noopEmailService) SendBadgeResult(ctx context.Context, email, name string, req *domain.BadgeRequest) error {
	logger.Debug("Email disabled, skipping badge result", "to", email)
	return nil
}

func (noopEmailService) SendPendingDigest(ctx context.Context, adminEmail string, pendingTransactions, pendingBadges int) error {
	logger.Debug("Email disabled, skipping pending digest", "to", adminEmail)
	return nil
}

func (noopEmailService) SendStalePurchaseNotice(ctx context.Context, adminEmail string, item *domain.MarketplaceItem) error {
	logger.Debug("Email disabled, skipping stale purchase notice", "to", adminEmail)
	return nil
}
