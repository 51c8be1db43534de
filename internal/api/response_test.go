package api_test

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vrsandeep/cinevault-go/internal/api"
)

func TestRespondWithJSON(t *testing.T) {
	t.Run("Result", func(t *testing.T) {
		rr := httptest.NewRecorder()
		api.RespondWithJSON(rr, http.StatusOK, map[string]int64{"position": 42})
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"position":42}`, rr.Body.String())
	})

	t.Run("Unencodable result is a server error", func(t *testing.T) {
		rr := httptest.NewRecorder()
		api.RespondWithJSON(rr, http.StatusOK, map[string]float64{"duration": math.NaN()})
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), `"error":"encode result: `)
	})

	t.Run("Error body", func(t *testing.T) {
		rr := httptest.NewRecorder()
		api.RespondWithError(rr, http.StatusNotFound, "not found")
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"error":"not found"}`, rr.Body.String())
	})
}
