package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"taximeter/internal/service"
)

func TestRespondError_RecordsServerErrorsOnContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("unexpected error is recorded", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		respondError(c, errors.New("connection refused"))

		if w.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", w.Code)
		}
		if len(c.Errors) != 1 {
			t.Errorf("expected 1 recorded error, got %d", len(c.Errors))
		}
	})

	t.Run("expected client error is not recorded", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		respondError(c, service.ErrNoCompletedTrip)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
		if len(c.Errors) != 0 {
			t.Errorf("expected no recorded errors, got %d", len(c.Errors))
		}
	})
}
