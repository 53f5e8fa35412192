package leadcapture

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noel97chan-creator/IFRS16calculator/internal/gate"
	"github.com/noel97chan-creator/IFRS16calculator/internal/metrics"
	"github.com/noel97chan-creator/IFRS16calculator/internal/repository"
	"github.com/noel97chan-creator/IFRS16calculator/internal/validators"
)

// Submitter отправляет email во внешний сервис
type Submitter interface {
	Submit(ctx context.Context, email string) error
}

// TokenIssuer выдает токен на скачивание
type TokenIssuer interface {
	Issue(email string) (gate.Token, error)
}

// Service принимает email, пересылает его один раз и выдает токен на скачивание
type Service struct {
	submitter Submitter
	leads     repository.LeadRepository
	issuer    TokenIssuer
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(submitter Submitter, leads repository.LeadRepository, issuer TokenIssuer, logger *zap.Logger) *Service {
	return &Service{
		submitter: submitter,
		leads:     leads,
		issuer:    issuer,
		logger:    logger,
		now:       time.Now,
	}
}

// NormalizeEmail проверяет адрес и приводит его к нижнему регистру
func NormalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil || addr.Name != "" {
		return "", &validators.ValidationError{Field: "email", Message: "please enter a valid email address"}
	}
	return strings.ToLower(addr.Address), nil
}

// Capture регистрирует email и возвращает токен на скачивание.
// Уже известный email повторно во внешний сервис не отправляется.
func (s *Service) Capture(ctx context.Context, rawEmail string) (gate.Token, error) {
	email, err := NormalizeEmail(rawEmail)
	if err != nil {
		metrics.LeadSubmissions.WithLabelValues("invalid").Inc()
		return gate.Token{}, err
	}

	_, known, err := s.leads.Get(ctx, email)
	if err != nil {
		metrics.LeadSubmissions.WithLabelValues("error").Inc()
		return gate.Token{}, fmt.Errorf("looking up lead: %w", err)
	}

	if known {
		metrics.LeadSubmissions.WithLabelValues("known").Inc()
		s.logger.Debug("lead already captured, skipping submission")
	} else {
		switch err := s.submitter.Submit(ctx, email); {
		case errors.Is(err, ErrNotConfigured):
			s.logger.Warn("lead capture endpoint not configured, storing lead locally only")
		case err != nil:
			metrics.LeadSubmissions.WithLabelValues("error").Inc()
			return gate.Token{}, fmt.Errorf("submitting lead: %w", err)
		}

		if err := s.leads.Save(ctx, repository.Lead{Email: email, CapturedAt: s.now().UTC()}); err != nil {
			metrics.LeadSubmissions.WithLabelValues("error").Inc()
			return gate.Token{}, fmt.Errorf("saving lead: %w", err)
		}
		metrics.LeadSubmissions.WithLabelValues("success").Inc()
	}

	token, err := s.issuer.Issue(email)
	if err != nil {
		return gate.Token{}, err
	}
	return token, nil
}
