package service

import (
	"context"
	"log/slog"

	"github.com/applymate/applymate-backend/internal/domain"
)

type OtpNotification struct {
	Email     string
	Code      string
	Purpose   domain.OtpPurpose
	FirstName string
}

// OtpNotifier delivers a one-time code to its destination. A delivery error
// must surface to the caller; the credential state it accompanies is already
// written and stays valid either way.
type OtpNotifier interface {
	SendOtp(ctx context.Context, notification OtpNotification) error
}

// DevOtpNotifier logs the code instead of sending mail. Useful for local
// development and as the default wiring until an SMTP/SES notifier is
// configured.
type DevOtpNotifier struct {
	logger *slog.Logger
}

func NewDevOtpNotifier(logger *slog.Logger) *DevOtpNotifier {
	return &DevOtpNotifier{logger: logger}
}

func (n *DevOtpNotifier) SendOtp(ctx context.Context, notification OtpNotification) error {
	n.logger.InfoContext(ctx, "otp issued",
		"email", notification.Email,
		"purpose", notification.Purpose,
		"first_name", notification.FirstName,
		"code", notification.Code,
	)
	return nil
}
