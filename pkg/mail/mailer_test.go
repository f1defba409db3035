package mail

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatMessageSeparatesHeadersFromBody(t *testing.T) {
	msg := formatMessage(
		"noreply@munjiz.app",
		[]string{"user@example.com"},
		"Verify your account",
		"Welcome!\nUse the link below.\n",
	)

	// A blank line must separate the header block from the body.
	headerBlock, bodyBlock, found := strings.Cut(msg, "\r\n\r\n")
	require.True(t, found, "message has no header/body separator: %q", msg)

	require.Contains(t, headerBlock, "From: noreply@munjiz.app")
	require.Contains(t, headerBlock, "To: user@example.com")
	require.Contains(t, headerBlock, "Subject: Verify your account")
	require.Contains(t, headerBlock, "Content-Type: text/plain; charset=UTF-8")

	// Body line endings are CRLF throughout, with no bare LFs left.
	require.Equal(t, "Welcome!\r\nUse the link below.\r\n", bodyBlock)
	require.Equal(t, strings.Count(bodyBlock, "\n"), strings.Count(bodyBlock, "\r\n"))
}

func TestFormatMessageEscapesHeaderNewlines(t *testing.T) {
	msg := formatMessage(
		"noreply@munjiz.app",
		[]string{"user@example.com"},
		"Hello\r\nBcc: attacker@example.com",
		"body",
	)

	headerBlock, _, found := strings.Cut(msg, "\r\n\r\n")
	require.True(t, found)
	require.NotContains(t, headerBlock, "\r\nBcc:")
	require.Contains(t, headerBlock, "Subject: Hello  Bcc: attacker@example.com")
}

func TestDedupeRecipients(t *testing.T) {
	got := dedupeRecipients([]string{" a@example.com ", "", "b@example.com", "a@example.com"})
	require.Equal(t, []string{"a@example.com", "b@example.com"}, got)
}
