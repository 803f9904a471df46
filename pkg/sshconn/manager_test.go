package sshconn

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/netfleet/netinv/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestClassifyDialErrorConnectionRefused(t *testing.T) {
	err := classifyDialError("10.0.0.1", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")})
	assert.ErrorIs(t, err, model.ErrConnectionRefused)
	assert.True(t, model.Retryable(err))
}

func TestClassifyDialErrorTimeout(t *testing.T) {
	err := classifyDialError("10.0.0.1", timeoutError{})
	assert.ErrorIs(t, err, model.ErrTimedOut)
	assert.True(t, model.Retryable(err))
}

func TestClassifyDialErrorAuthNeverRetryable(t *testing.T) {
	err := classifyDialError("10.0.0.1", errors.New("ssh: handshake failed: unable to authenticate"))
	assert.ErrorIs(t, err, model.ErrAuthenticationFailed)
	assert.False(t, model.Retryable(err))
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestDefaultRetryPolicyNeverZero(t *testing.T) {
	p := DefaultRetryPolicy()
	assert.GreaterOrEqual(t, p.MaxRetries, 1)
	assert.Greater(t, p.Backoff, time.Duration(0))
}
