package mailcheck

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	mx      []*net.MX
	mxErr   error
	hosts   []string
	hostErr error

	mxCalls   int
	hostCalls int
}

func (f *fakeResolver) LookupMX(ctx context.Context, name string) ([]*net.MX, error) {
	f.mxCalls++
	return f.mx, f.mxErr
}

func (f *fakeResolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	f.hostCalls++
	return f.hosts, f.hostErr
}

func TestCanReceiveMailWithMXRecords(t *testing.T) {
	resolver := &fakeResolver{mx: []*net.MX{{Host: "mx1.example.com", Pref: 10}}}
	checker := New(WithResolver(resolver))

	require.True(t, checker.CanReceiveMail(context.Background(), "user@example.com"))
	// MX was sufficient; no A-record fallback happened.
	require.Equal(t, 1, resolver.mxCalls)
	require.Zero(t, resolver.hostCalls)
}

func TestCanReceiveMailFallsBackToHostLookup(t *testing.T) {
	tests := []struct {
		name     string
		resolver *fakeResolver
		want     bool
	}{
		{
			name:     "mx empty, host resolves",
			resolver: &fakeResolver{hosts: []string{"93.184.216.34"}},
			want:     true,
		},
		{
			name:     "mx error, host resolves",
			resolver: &fakeResolver{mxErr: errors.New("no such host"), hosts: []string{"93.184.216.34"}},
			want:     true,
		},
		{
			name:     "mx error, host error",
			resolver: &fakeResolver{mxErr: errors.New("no such host"), hostErr: errors.New("no such host")},
			want:     false,
		},
		{
			name:     "mx empty, host empty",
			resolver: &fakeResolver{},
			want:     false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			checker := New(WithResolver(tc.resolver))
			got := checker.CanReceiveMail(context.Background(), "user@example.com")
			require.Equal(t, tc.want, got)
			require.Equal(t, 1, tc.resolver.hostCalls)
		})
	}
}

func TestCanReceiveMailMalformedAddress(t *testing.T) {
	resolver := &fakeResolver{mx: []*net.MX{{Host: "mx1.example.com"}}}
	checker := New(WithResolver(resolver))

	for _, bad := range []string{"", "no-at-sign", "trailing@", "@"} {
		require.False(t, checker.CanReceiveMail(context.Background(), bad), bad)
	}
	// Malformed addresses never reach DNS.
	require.Zero(t, resolver.mxCalls)
}
