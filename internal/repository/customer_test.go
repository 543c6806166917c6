package repository

import (
	"testing"

	apperrors "customer-intake-portal/internal/errors"
	"customer-intake-portal/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// CustomerRepositoryTestSuite tests the CustomerRepository against in-memory SQLite
type CustomerRepositoryTestSuite struct {
	suite.Suite
	db        *gorm.DB
	repo      *CustomerRepository
	employees *EmployeeRepository
	factories *testutils.FactorySet
}

// SetupTest gives every test a fresh database
func (suite *CustomerRepositoryTestSuite) SetupTest() {
	suite.db = testutils.NewSQLiteDB(suite.T())
	suite.repo = NewCustomerRepository(suite.db)
	suite.employees = NewEmployeeRepository(suite.db)
	suite.factories = testutils.NewFactorySet()
}

func (suite *CustomerRepositoryTestSuite) TestCreateAndGetByID() {
	customer := suite.factories.Customer.Create()
	suite.Require().NoError(suite.repo.Create(customer))

	found, err := suite.repo.GetByID(customer.ID)
	suite.Require().NoError(err)
	suite.Equal(customer.Name, found.Name)
	suite.Equal(customer.Email, found.Email)
	suite.Nil(found.SalesRepID)
}

func (suite *CustomerRepositoryTestSuite) TestGetByIDNotFound() {
	found, err := suite.repo.GetByID(uuid.New())
	suite.ErrorIs(err, apperrors.ErrCustomerNotFound)
	suite.Nil(found)
}

func (suite *CustomerRepositoryTestSuite) TestFindIDsByEmail() {
	first := suite.factories.Customer.WithEmail("shared@x.com")
	second := suite.factories.Customer.WithEmail("shared@x.com")
	other := suite.factories.Customer.WithEmail("other@x.com")
	suite.Require().NoError(suite.repo.Create(first))
	suite.Require().NoError(suite.repo.Create(second))
	suite.Require().NoError(suite.repo.Create(other))

	ids, err := suite.repo.FindIDsByEmail("shared@x.com")
	suite.Require().NoError(err)
	suite.ElementsMatch([]uuid.UUID{first.ID, second.ID}, ids)
}

func (suite *CustomerRepositoryTestSuite) TestFindIDsByEmailIsExact() {
	suite.Require().NoError(suite.repo.Create(suite.factories.Customer.WithEmail("jane@x.com")))

	for _, email := range []string{"JANE@x.com", "jane@x.co", " jane@x.com", " "} {
		ids, err := suite.repo.FindIDsByEmail(email)
		suite.Require().NoError(err)
		suite.Empty(ids, "email %q must not match", email)
	}
}

func (suite *CustomerRepositoryTestSuite) TestLookupFieldsWithSalesRep() {
	customer, rep := suite.factories.CreateCustomerWithSalesRep()
	suite.Require().NoError(suite.employees.Create(rep))
	suite.Require().NoError(suite.repo.Create(customer))

	fields, err := suite.repo.LookupFields(customer.ID, []string{"sales_rep_id", "name"})
	suite.Require().NoError(err)
	suite.Len(fields, 2)

	repID, err := FieldUUID(fields, "sales_rep_id")
	suite.Require().NoError(err)
	suite.Require().NotNil(repID)
	suite.Equal(rep.ID, *repID)
	suite.Equal(customer.Name, FieldString(fields, "name"))
}

func (suite *CustomerRepositoryTestSuite) TestLookupFieldsNullSalesRep() {
	customer := suite.factories.Customer.Create()
	suite.Require().NoError(suite.repo.Create(customer))

	fields, err := suite.repo.LookupFields(customer.ID, []string{"sales_rep_id"})
	suite.Require().NoError(err)

	repID, err := FieldUUID(fields, "sales_rep_id")
	suite.NoError(err)
	suite.Nil(repID)
}

func (suite *CustomerRepositoryTestSuite) TestLookupFieldsErrors() {
	customer := suite.factories.Customer.Create()
	suite.Require().NoError(suite.repo.Create(customer))

	_, err := suite.repo.LookupFields(customer.ID, []string{"password"})
	suite.ErrorIs(err, apperrors.ErrUnknownLookupField)

	_, err = suite.repo.LookupFields(customer.ID, nil)
	suite.True(apperrors.IsValidation(err))

	_, err = suite.repo.LookupFields(uuid.New(), []string{"name"})
	suite.ErrorIs(err, apperrors.ErrCustomerNotFound)
}

func (suite *CustomerRepositoryTestSuite) TestUpdateAssignsSalesRep() {
	customer := suite.factories.Customer.Create()
	rep := suite.factories.Employee.Create()
	suite.Require().NoError(suite.repo.Create(customer))
	suite.Require().NoError(suite.employees.Create(rep))

	customer.SalesRepID = &rep.ID
	suite.Require().NoError(suite.repo.Update(customer))

	found, err := suite.repo.GetByID(customer.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(found.SalesRepID)
	suite.Equal(rep.ID, *found.SalesRepID)
}

func TestCustomerRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerRepositoryTestSuite))
}
