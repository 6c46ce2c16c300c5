package health

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Checker reports whether a dependency is usable
type Checker func() error

// CheckerConfig holds checker settings
type CheckerConfig struct {
	Timeout time.Duration
}

// DefaultCheckerConfig returns the default checker configuration
func DefaultCheckerConfig() CheckerConfig {
	return CheckerConfig{Timeout: 2 * time.Second}
}

// Encoder is the part of a payment code encoder a probe needs
type Encoder interface {
	Encode(content string) ([]byte, error)
}

// probeURI is a syntactically valid payment request used only for probing
const probeURI = "upi://pay?pa=health@probe&pn=probe&am=0.00&cu=INR"

// PaymentCodeChecker returns a checker that encodes a probe payment code
func PaymentCodeChecker(enc Encoder) Checker {
	return PaymentCodeCheckerWithConfig(enc, DefaultCheckerConfig())
}

// PaymentCodeCheckerWithConfig returns a payment code checker with custom settings
func PaymentCodeCheckerWithConfig(enc Encoder, config CheckerConfig) Checker {
	return WithTimeout(config.Timeout, func(context.Context) error {
		if enc == nil {
			return errors.New("payment code encoder is nil")
		}
		img, err := enc.Encode(probeURI)
		if err != nil {
			return err
		}
		if len(img) == 0 {
			return errors.New("payment code encoder returned no image")
		}
		return nil
	})
}

// WithTimeout runs fn and fails if it does not finish within timeout.
// A zero timeout waits indefinitely.
func WithTimeout(timeout time.Duration, fn func(ctx context.Context) error) Checker {
	return func() error {
		ctx := context.Background()
		if timeout <= 0 {
			return fn(ctx)
		}

		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- fn(ctx)
		}()

		select {
		case err := <-done:
			return err
		case <-ctx.Done():
			return fmt.Errorf("check timed out after %s", timeout)
		}
	}
}
