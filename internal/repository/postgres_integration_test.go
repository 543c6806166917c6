//go:build integration
// +build integration

package repository

import (
	"strings"
	"testing"

	apperrors "customer-intake-portal/internal/errors"
	"customer-intake-portal/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// PostgresRepositoryTestSuite runs the intake repositories against a real Postgres container
type PostgresRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	customers     *CustomerRepository
	employees     *EmployeeRepository
	inquiries     *InquiryRepository
	factories     *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *PostgresRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.customers = NewCustomerRepository(suite.baseTestSuite.DB)
	suite.employees = NewEmployeeRepository(suite.baseTestSuite.DB)
	suite.inquiries = NewInquiryRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *PostgresRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *PostgresRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *PostgresRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *PostgresRepositoryTestSuite) TestCustomerLookupChain() {
	customer, rep := suite.factories.CreateCustomerWithSalesRep()
	suite.Require().NoError(suite.employees.Create(rep))
	suite.Require().NoError(suite.customers.Create(customer))

	ids, err := suite.customers.FindIDsByEmail(customer.Email)
	suite.Require().NoError(err)
	suite.Require().Equal([]uuid.UUID{customer.ID}, ids)

	fields, err := suite.customers.LookupFields(ids[0], []string{"sales_rep_id"})
	suite.Require().NoError(err)
	repID, err := FieldUUID(fields, "sales_rep_id")
	suite.Require().NoError(err)
	suite.Require().NotNil(repID)
	suite.Equal(rep.ID, *repID)

	repFields, err := suite.employees.LookupFields(*repID, []string{"name", "email"})
	suite.Require().NoError(err)
	suite.Equal(rep.Name, FieldString(repFields, "name"))
	suite.Equal(rep.Email, FieldString(repFields, "email"))
}

func (suite *PostgresRepositoryTestSuite) TestCustomerWithoutSalesRep() {
	customer := suite.factories.Customer.Create()
	suite.Require().NoError(suite.customers.Create(customer))

	fields, err := suite.customers.LookupFields(customer.ID, []string{"sales_rep_id"})
	suite.Require().NoError(err)
	repID, err := FieldUUID(fields, "sales_rep_id")
	suite.NoError(err)
	suite.Nil(repID)
}

func (suite *PostgresRepositoryTestSuite) TestInquiryReferencesCustomer() {
	customer := suite.factories.Customer.Create()
	suite.Require().NoError(suite.customers.Create(customer))

	inquiry := suite.factories.Inquiry.WithCustomer(customer.ID)
	suite.Require().NoError(suite.inquiries.Create(inquiry))

	found, err := suite.inquiries.GetByID(inquiry.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(found.ReferencedCustomerID)
	suite.Equal(customer.ID, *found.ReferencedCustomerID)
}

func (suite *PostgresRepositoryTestSuite) TestInquiryStoresLongEmail() {
	inquiry := suite.factories.Inquiry.Create()
	inquiry.CustomerEmail = strings.Repeat("e", 300) + "@x.com"
	suite.Require().NoError(suite.inquiries.Create(inquiry))

	found, err := suite.inquiries.GetByID(inquiry.ID)
	suite.Require().NoError(err)
	suite.Equal(inquiry.CustomerEmail, found.CustomerEmail)
}

func (suite *PostgresRepositoryTestSuite) TestNotFound() {
	_, err := suite.customers.GetByID(uuid.New())
	suite.ErrorIs(err, apperrors.ErrCustomerNotFound)

	_, err = suite.employees.LookupFields(uuid.New(), []string{"email"})
	suite.ErrorIs(err, apperrors.ErrEmployeeNotFound)
}

func TestPostgresRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(PostgresRepositoryTestSuite))
}
