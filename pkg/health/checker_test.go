package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEncoder struct {
	img []byte
	err error
}

func (s stubEncoder) Encode(string) ([]byte, error) {
	return s.img, s.err
}

// ==================== Checker Tests ====================

func TestDefaultCheckerConfig(t *testing.T) {
	assert.Equal(t, 2*time.Second, DefaultCheckerConfig().Timeout)
}

func TestPaymentCodeChecker(t *testing.T) {
	tests := []struct {
		name    string
		enc     Encoder
		wantErr string
	}{
		{"healthy encoder", stubEncoder{img: []byte{0x89, 'P', 'N', 'G'}}, ""},
		{"nil encoder", nil, "payment code encoder is nil"},
		{"encoder error", stubEncoder{err: errors.New("boom")}, "boom"},
		{"empty image", stubEncoder{}, "payment code encoder returned no image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := PaymentCodeChecker(tt.enc)()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestWithTimeout_Expires(t *testing.T) {
	check := WithTimeout(20*time.Millisecond, func(ctx context.Context) error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})

	err := check()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestWithTimeout_ZeroWaits(t *testing.T) {
	check := WithTimeout(0, func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.False(t, hasDeadline)
		return nil
	})
	assert.NoError(t, check())
}

// ==================== Handler Tests ====================

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		checks     map[string]Checker
		wantStatus int
		wantState  string
	}{
		{
			name:       "no checks",
			checks:     nil,
			wantStatus: http.StatusOK,
			wantState:  "healthy",
		},
		{
			name:       "all healthy",
			checks:     map[string]Checker{"paycode": func() error { return nil }},
			wantStatus: http.StatusOK,
			wantState:  "healthy",
		},
		{
			name: "one unhealthy",
			checks: map[string]Checker{
				"paycode": func() error { return errors.New("down") },
				"other":   func() error { return nil },
			},
			wantStatus: http.StatusServiceUnavailable,
			wantState:  "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/healthz", Handler("invoice-api", "1.0.0", tt.checks))

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantState, resp.Status)
			assert.Equal(t, "invoice-api", resp.Service)
			if tt.wantState == "unhealthy" {
				assert.Equal(t, "unhealthy: down", resp.Checks["paycode"])
			}
		})
	}
}
