package email

import (
	"fmt"
	"time"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

// Service sends transactional mail through Resend. Without an API key
// it degrades to a logged no-op; mail is never on a critical path.
type Service struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *zap.Logger
}

func NewService(apiKey, from, fromName string, logger *zap.Logger) *Service {
	s := &Service{
		from:     from,
		fromName: fromName,
		logger:   logger,
	}
	if apiKey != "" {
		s.client = resend.NewClient(apiKey)
	}
	return s
}

func (s *Service) SendWelcome(to, fullName string) error {
	html := fmt.Sprintf(`<h2>Selamat datang di Satmoko Studio, %s!</h2>
<p>Akun kamu sudah terdaftar. Pilih paket dan selesaikan pembayaran untuk mulai berkarya.</p>`,
		fullName)
	return s.send(to, "Selamat datang di Satmoko Studio", html)
}

func (s *Service) SendActivationReceipt(to, fullName string, credits int64, validUntil time.Time) error {
	html := fmt.Sprintf(`<h2>Pembayaran diterima</h2>
<p>Halo %s, akun kamu sudah aktif.</p>
<p>Kredit ditambahkan: <b>%d</b><br>Masa aktif sampai: <b>%s</b></p>`,
		fullName, credits, validUntil.Format("2 January 2006"))
	return s.send(to, "Akun Satmoko Studio kamu sudah aktif", html)
}

func (s *Service) SendTopupApproved(to string, credits int64) error {
	html := fmt.Sprintf(`<h2>Topup disetujui</h2>
<p>%d kredit sudah masuk ke akun kamu.</p>`, credits)
	return s.send(to, "Topup kredit disetujui", html)
}

func (s *Service) send(to, subject, html string) error {
	if s.client == nil {
		s.logger.Debug("email disabled, dropping message",
			zap.String("to", to),
			zap.String("subject", subject))
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}
	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Warn("failed to send email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err))
		return err
	}
	s.logger.Info("email sent",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("id", resp.Id))
	return nil
}
