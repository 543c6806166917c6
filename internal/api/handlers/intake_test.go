package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"customer-intake-portal/internal/api/handlers"
	"customer-intake-portal/internal/database/models"
	apperrors "customer-intake-portal/internal/errors"
	"customer-intake-portal/internal/mocks"
	"customer-intake-portal/internal/service"
	"customer-intake-portal/internal/testutils"
	"customer-intake-portal/web"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// IntakeHandlerTestSuite defines the test suite for IntakeHandler
type IntakeHandlerTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockIntakeSv *mocks.MockIntakeServiceInterface
	handler      *handlers.IntakeHandler
	http         *testutils.HTTPTestSuite
}

func (suite *IntakeHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockIntakeSv = mocks.NewMockIntakeServiceInterface(suite.ctrl)
	suite.handler = handlers.NewIntakeHandler(suite.mockIntakeSv)

	tmpl, err := web.Templates()
	suite.Require().NoError(err)

	suite.http = testutils.SetupHTTPTest()
	suite.http.Router.SetHTMLTemplate(tmpl)
	suite.http.Router.GET("/intake", suite.handler.ShowForm)
	suite.http.Router.POST("/intake", suite.handler.Submit)
}

func (suite *IntakeHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *IntakeHandlerTestSuite) TestShowForm_RendersFourFieldsAndSubmit() {
	// no service calls are expected for GET
	w := suite.http.MakeRequest(http.MethodGet, "/intake")

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Header().Get("Content-Type"), "text/html")

	body := w.Body.String()
	assert.Contains(suite.T(), body, `<form id="intake-form" action="/intake" method="POST">`)
	assert.Contains(suite.T(), body, `<input id="name" name="name" type="text">`)
	assert.Contains(suite.T(), body, `<input id="email" name="email" type="email">`)
	assert.Contains(suite.T(), body, `<input id="subject" name="subject" type="text">`)
	assert.Contains(suite.T(), body, `<textarea id="message" name="message"`)
	assert.Equal(suite.T(), 3, strings.Count(body, "<input "))
	assert.Equal(suite.T(), 1, strings.Count(body, "<textarea "))
	assert.Equal(suite.T(), 1, strings.Count(body, `type="submit"`))
}

func (suite *IntakeHandlerTestSuite) TestSubmit_PassesFormFields() {
	var got *service.SubmitInquiryRequest
	suite.mockIntakeSv.EXPECT().Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *service.SubmitInquiryRequest) (*service.SubmissionResult, error) {
			got = req
			return &service.SubmissionResult{AdminNotified: true}, nil
		})

	w := suite.http.PostForm("/intake", url.Values{
		"name":    {"Jane Doe"},
		"email":   {"jane@x.com"},
		"subject": {"Pricing"},
		"message": {"Need a quote"},
	})

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Empty(suite.T(), w.Body.String())
	suite.Require().NotNil(got)
	assert.Equal(suite.T(), service.SubmitInquiryRequest{
		Name:    "Jane Doe",
		Email:   "jane@x.com",
		Subject: "Pricing",
		Message: "Need a quote",
	}, *got)
}

func (suite *IntakeHandlerTestSuite) TestSubmit_MissingFieldsAreLeftToTheService() {
	var got *service.SubmitInquiryRequest
	suite.mockIntakeSv.EXPECT().Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *service.SubmitInquiryRequest) (*service.SubmissionResult, error) {
			got = req
			return &service.SubmissionResult{}, nil
		})

	w := suite.http.PostForm("/intake", url.Values{"subject": {"Pricing"}})

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	suite.Require().NotNil(got)
	assert.Equal(suite.T(), "", got.Name)
	assert.Equal(suite.T(), "Pricing", got.Subject)
}

func (suite *IntakeHandlerTestSuite) TestSubmit_ErrorsAreSwallowed() {
	tests := []struct {
		name   string
		result *service.SubmissionResult
		err    error
	}{
		{
			name: "lookup failure",
			err:  apperrors.NewLookupFailure(service.StepFindCustomer, errors.New("db down")),
		},
		{
			name:   "notification failure after create",
			result: &service.SubmissionResult{Inquiry: &models.Inquiry{ID: uuid.New()}},
			err:    apperrors.NewNotificationFailure(service.StepNotifyAdmin, errors.New("smtp down")),
		},
		{
			name: "untyped error",
			err:  errors.New("unexpected"),
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.mockIntakeSv.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(tt.result, tt.err)

			w := suite.http.PostForm("/intake", url.Values{"email": {"jane@x.com"}})

			assert.Equal(suite.T(), http.StatusOK, w.Code)
			assert.Empty(suite.T(), w.Body.String())
		})
	}
}

func TestIntakeHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(IntakeHandlerTestSuite))
}

func TestIntakeFormPage(t *testing.T) {
	page := handlers.IntakeFormPage()

	assert.Equal(t, "/intake", page.Action)
	assert.Equal(t, http.MethodPost, page.Method)
	assert.Equal(t, "Submit", page.SubmitLabel)

	names := make([]string, 0, len(page.Fields))
	for _, f := range page.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"name", "email", "subject", "message"}, names)
}
