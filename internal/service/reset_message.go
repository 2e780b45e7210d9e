package service

import (
	"fmt"
	"time"

	"github.com/yusufkecer/ecommerce-password-reset/internal/domain"
)

const ResetSubject = "Password Reset Request"

// ComposeResetMessage builds the mail that carries a temporary password.
func ComposeResetMessage(account *domain.Account, to, plaintext string, ttl time.Duration, from string) Message {
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"Your temporary password is: %s\n"+
			"Please log in and change your password immediately.\n"+
			"This password will expire in %s.\n\n"+
			"Best regards,\nSupport Team",
		account.DisplayName(), plaintext, humanizeTTL(ttl),
	)
	return Message{
		Subject: ResetSubject,
		From:    from,
		To:      []string{to},
		Body:    body,
	}
}

func humanizeTTL(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return plural(int64(d/time.Hour), "hour")
	case d >= time.Minute && d%time.Minute == 0:
		return plural(int64(d/time.Minute), "minute")
	case d >= time.Second && d%time.Second == 0:
		return plural(int64(d/time.Second), "second")
	default:
		return d.String()
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
