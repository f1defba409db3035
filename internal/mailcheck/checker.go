package mailcheck

import (
	"context"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/RazanRezq/munjiz/pkg/logger"
)

const defaultLookupTimeout = 5 * time.Second

// Resolver is the subset of net.Resolver used for liveness checks, split
// out so tests can inject deterministic fakes.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// Checker answers whether an email's domain can plausibly receive mail.
type Checker struct {
	resolver Resolver
	timeout  time.Duration
	log      *zap.Logger
}

// Option customises a Checker.
type Option func(*Checker)

// WithResolver overrides the DNS resolver.
func WithResolver(r Resolver) Option {
	return func(c *Checker) {
		if r != nil {
			c.resolver = r
		}
	}
}

// WithTimeout bounds each liveness check.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New builds a Checker backed by net.DefaultResolver.
func New(opts ...Option) *Checker {
	c := &Checker{
		resolver: net.DefaultResolver,
		timeout:  defaultLookupTimeout,
		log:      logger.WithComponent("mailcheck"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CanReceiveMail reports whether the domain of the given address resolves
// to a mail host. MX records are authoritative; when the MX lookup fails or
// returns nothing, an A-record lookup serves as a secondary signal since
// some mail servers accept delivery on a bare address record. Every lookup
// failure degrades to false: callers always get a definite boolean and DNS
// errors never propagate.
func (c *Checker) CanReceiveMail(ctx context.Context, email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := strings.ToLower(strings.TrimSpace(email[at+1:]))
	if domain == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	records, err := c.resolver.LookupMX(ctx, domain)
	if err == nil && len(records) > 0 {
		return true
	}
	if err != nil {
		c.log.Debug("mx lookup failed", zap.String("domain", domain), zap.Error(err))
	}

	hosts, err := c.resolver.LookupHost(ctx, domain)
	if err != nil {
		c.log.Debug("host lookup failed", zap.String("domain", domain), zap.Error(err))
		return false
	}

	return len(hosts) > 0
}
