package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordNotification(t *testing.T) {
	sentBefore := testutil.ToFloat64(notificationsTotal.WithLabelValues(RecipientAdmin, "sent"))
	failedBefore := testutil.ToFloat64(notificationsTotal.WithLabelValues(RecipientSalesRep, "failed"))

	RecordNotification(RecipientAdmin, nil)
	RecordNotification(RecipientSalesRep, errors.New("smtp down"))

	assert.Equal(t, sentBefore+1, testutil.ToFloat64(notificationsTotal.WithLabelValues(RecipientAdmin, "sent")))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(notificationsTotal.WithLabelValues(RecipientSalesRep, "failed")))
}

func TestRecordIntakeFailure_EmptyKind(t *testing.T) {
	before := testutil.ToFloat64(intakeFailuresTotal.WithLabelValues("unknown"))
	RecordIntakeFailure("")
	assert.Equal(t, before+1, testutil.ToFloat64(intakeFailuresTotal.WithLabelValues("unknown")))
}

func TestRecordInquiryAndMatch(t *testing.T) {
	created := testutil.ToFloat64(inquiriesCreatedTotal)
	matched := testutil.ToFloat64(customerMatchesTotal.WithLabelValues("true"))

	RecordInquiryCreated()
	RecordCustomerMatch(true)

	assert.Equal(t, created+1, testutil.ToFloat64(inquiriesCreatedTotal))
	assert.Equal(t, matched+1, testutil.ToFloat64(customerMatchesTotal.WithLabelValues("true")))
}

func TestGinMiddleware_UsesRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinMiddleware())
	router.GET("/intake", func(c *gin.Context) { c.String(http.StatusOK, "form") })

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/intake", "200"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/intake", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/intake", "200")))
}
