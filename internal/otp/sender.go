package otp

import (
	"context"
	"log/slog"

	"github.com/Leganyst/maid-marketplace/internal/model"
)

// Sender delivers a code out of band. Implementations must never log the code.
type Sender interface {
	SendOTP(ctx context.Context, phone, code string) error
}

// LogSender — заглушка SMS-шлюза для разработки: пишет в лог только маску номера.
type LogSender struct {
	log *slog.Logger
}

func NewLogSender(log *slog.Logger) *LogSender {
	if log == nil {
		log = slog.Default()
	}
	return &LogSender{log: log}
}

func (s *LogSender) SendOTP(ctx context.Context, phone, _ string) error {
	s.log.InfoContext(ctx, "otp dispatched", slog.String("phone", model.MaskPhone(phone)))
	return nil
}
