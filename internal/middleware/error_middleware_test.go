package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/pradipta/banksoal/internal/pkg/apperrors"
)

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"empty batch", apperrors.ErrEmptyBatch, 404, "RES_003"},
		{"nothing to combine", apperrors.ErrNothingToCombine, 404, "RES_003"},
		{"question set not found", apperrors.ErrQuestionSetNotFound, 404, "RES_001"},
		{"question file not found", apperrors.ErrQuestionFileNotFound, 404, "RES_001"},
		{"wrapped not found", apperrors.NewResourceNotFoundError("gone"), 404, "RES_001"},
		{"unsupported format", apperrors.ErrUnsupportedFormat, 400, "VAL_001"},
		{"bad request", apperrors.NewBadRequestError("nope"), 400, "VAL_001"},
		{"expired token", apperrors.ErrTokenExpired, 401, "AUTH_002"},
		{"invalid token", apperrors.ErrTokenInvalid, 401, "AUTH_001"},
		{"unknown", errors.New("disk on fire"), 500, "SRV_001"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleAPIError(c, tc.err)

			if w.Code != tc.wantStatus {
				t.Errorf("status %d, want %d", w.Code, tc.wantStatus)
			}

			var resp struct {
				Error *struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("response is not JSON: %v", err)
			}
			if resp.Error == nil || resp.Error.Code != tc.wantCode {
				t.Errorf("body %s, want code %s", w.Body.String(), tc.wantCode)
			}
		})
	}
}

func TestHandleAPIErrorStatusesAreTerminal(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleAPIError(c, apperrors.ErrEmptyBatch)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", w.Code)
	}
}
