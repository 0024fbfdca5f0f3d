package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"microhub/internal/modules/outreach/domain"
	outreachout "microhub/internal/modules/outreach/port/out"
	"microhub/internal/platform/clock"
	"microhub/internal/platform/logging"
)

type Delivery struct {
	Message domain.Message
	Link    string
	Opened  bool
	Warning error
}

// OutreachService turns composed messages into WhatsApp links and hands them
// to the launcher. A launcher failure never loses the message: the link is
// still returned for the caller to show.
type OutreachService struct {
	clock    clock.Clock
	number   string
	launcher outreachout.Launcher
	logger   *slog.Logger
	validate *validator.Validate
}

func NewOutreachService(clock clock.Clock, number string, launcher outreachout.Launcher, logger *slog.Logger) *OutreachService {
	return &OutreachService{clock: clock, number: number, launcher: launcher, logger: logging.OrDiscard(logger), validate: newValidator()}
}

func (s *OutreachService) Number() string { return s.number }

func (s *OutreachService) Now() time.Time { return s.clock.Now() }

func (s *OutreachService) Deliver(ctx context.Context, msg domain.Message) Delivery {
	link := domain.Link(msg.Channel, s.number, msg.Text)
	d := Delivery{Message: msg, Link: link}
	if s.launcher == nil {
		return d
	}
	if err := s.launcher.Open(ctx, link); err != nil {
		s.logger.Warn("could not open whatsapp link", "kind", msg.Kind, "err", err)
		d.Warning = err
		return d
	}
	d.Opened = true
	s.logger.Info("outreach message handed off", "kind", msg.Kind, "channel", msg.Channel)
	return d
}
