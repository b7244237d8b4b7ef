package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmailSendSkipsWithoutClient(t *testing.T) {
	// Without an API key configured the mailer is a no-op, never an error.
	svc := NewEmailService(nil, "StowPilot", "no-reply@stowpilot.dev", true)

	require.NoError(t, svc.SendWelcome("Pat", "pat@example.com"))
	require.NoError(t, svc.SendTeamInvite("manager@example.com", "Pat Kim", "manager"))
	require.NoError(t, svc.SendPaymentReceipt("Dana", "dana@example.com", "INV-00000001", 100, 0))
}
