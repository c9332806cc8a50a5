package receipts

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"axiso-backend/internal/application/access"
	"axiso-backend/internal/application/emails"
	"axiso-backend/internal/application/payments"
	"axiso-backend/internal/application/projects"
	"axiso-backend/internal/constants"
	"axiso-backend/internal/domain"
	"axiso-backend/internal/pkg/validation"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Service struct {
	DB       *gorm.DB
	Payments *payments.Service
	Assets   Assets
	// OutputDir, when set, also keeps a copy of every rendered receipt.
	OutputDir   string
	NewDocument func() Document
	// Mailer is nil when email delivery is not configured.
	Mailer emails.Sender
}

// ForPayment assembles the receipt for a recorded payment.
func (s *Service) ForPayment(ctx context.Context, sess access.Session, paymentID string) (Receipt, error) {
	if err := sess.Require(constants.ViewReceipts); err != nil {
		return Receipt{}, err
	}
	ph, p, err := s.Payments.Get(ctx, paymentID)
	if err != nil {
		return Receipt{}, err
	}
	return FromPayment(*p, *ph), nil
}

// ForAdvance assembles the receipt for a project's advance payment.
func (s *Service) ForAdvance(ctx context.Context, sess access.Session, projectID string) (Receipt, error) {
	if err := sess.Require(constants.ViewReceipts); err != nil {
		return Receipt{}, err
	}
	p, err := projects.Find(ctx, s.DB, projectID, false)
	if err != nil {
		return Receipt{}, err
	}
	if !p.AdvancePayment.IsPositive() {
		return Receipt{}, domain.Invalid("project has no advance payment")
	}
	return FromAdvance(*p), nil
}

// Render lays out r as a PDF and returns its bytes.
func (s *Service) Render(r Receipt) ([]byte, error) {
	doc := s.NewDocument()
	Layout(doc, r, s.availableAssets())
	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		log.Error().Err(err).Str("reference", r.ReferenceNumber).Msg("render receipt failed")
		return nil, err
	}
	if s.OutputDir != "" {
		path := filepath.Join(s.OutputDir, r.Filename())
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("could not save receipt copy")
		}
	}
	return buf.Bytes(), nil
}

// availableAssets drops images that are not readable, so a missing logo
// never fails a receipt.
func (s *Service) availableAssets() Assets {
	a := s.Assets
	if a.LogoPath != "" && !readable(a.LogoPath) {
		log.Warn().Str("path", a.LogoPath).Msg("receipt logo missing")
		a.LogoPath = ""
	}
	if a.SignaturePath != "" && !readable(a.SignaturePath) {
		log.Warn().Str("path", a.SignaturePath).Msg("receipt signature missing")
		a.SignaturePath = ""
	}
	return a
}

func readable(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

// Email renders r and sends it to the customer's address on file.
func (s *Service) Email(ctx context.Context, r Receipt) (string, error) {
	if s.Mailer == nil {
		return "", fmt.Errorf("%w: delivery not configured", domain.ErrMailDelivery)
	}
	to := r.CustomerEmail
	if !validation.IsValidEmail(to) {
		return "", domain.Invalid("customer has no valid email address")
	}
	pdf, err := s.Render(r)
	if err != nil {
		return "", err
	}
	err = s.Mailer.Send(ctx, emails.Message{
		ToEmail: to,
		ToName:  r.ReceivedFrom,
		Subject: "Payment receipt " + r.ReferenceNumber,
		HTML: emails.Layout(emails.ReceiptContent(emails.ReceiptFacts{
			CustomerName: r.ReceivedFrom,
			Amount:       groupedAmount(r),
			Date:         r.DisplayDate(),
			Reference:    r.ReferenceNumber,
			Mode:         r.PaymentMode,
		})),
		Attachments: []emails.Attachment{{Name: r.Filename(), Content: pdf}},
	})
	if err != nil {
		log.Error().Err(err).Str("reference", r.ReferenceNumber).Msg("send receipt email failed")
		return "", fmt.Errorf("send receipt: %w: %w", domain.ErrMailDelivery, err)
	}
	log.Info().Str("reference", r.ReferenceNumber).Msg("receipt emailed")
	return to, nil
}
