package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"customer-intake-portal/internal/config"
	"customer-intake-portal/internal/database"
	"customer-intake-portal/internal/database/models"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type EmployeeData struct {
	Name   string `yaml:"name"`
	Email  string `yaml:"email"`
	UserID string `yaml:"user_id"`
}

type CustomerData struct {
	Name         string `yaml:"name"`
	Email        string `yaml:"email"`
	SalesRepUser string `yaml:"sales_rep_user_id,omitempty"` // employee user_id
}

type EmployeesFile struct {
	Employees []EmployeeData `yaml:"employees"`
}

type CustomersFile struct {
	Customers []CustomerData `yaml:"customers"`
}

func main() {
	dataDir := flag.String("data", "scripts/data", "directory containing employees*.yaml and customers*.yaml")
	flag.Parse()

	log.Println("Loading initial data from YAML files...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := loadDataFromYAMLFiles(db, *dataDir); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("Initial data loaded successfully!")
}

func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	// Suppress GORM query logs during data loading
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(db *gorm.DB, dataDir string) error {
	employees, err := loadEmployees(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load employees: %w", err)
	}

	customers, err := loadCustomers(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load customers: %w", err)
	}

	// Employees first: customers reference their sales rep by user_id
	employeeMap := make(map[string]*models.Employee)
	employeesCreated := 0
	for _, employeeData := range employees {
		employee, created, err := createEmployee(db, employeeData)
		if err != nil {
			return fmt.Errorf("failed to create employee %s: %w", employeeData.UserID, err)
		}
		employeeMap[employeeData.UserID] = employee
		if created {
			employeesCreated++
		}
	}
	log.Printf("Employees: %d created, %d total", employeesCreated, len(employees))

	customersCreated := 0
	for _, customerData := range customers {
		_, created, err := createCustomer(db, customerData, employeeMap)
		if err != nil {
			return fmt.Errorf("failed to create customer %s: %w", customerData.Name, err)
		}
		if created {
			customersCreated++
		}
	}
	log.Printf("Customers: %d created, %d total", customersCreated, len(customers))

	return nil
}

// readYAMLFiles unmarshals every .yaml file under dataDir whose path contains kind
func readYAMLFiles(dataDir, kind string, each func(data []byte) error) error {
	return filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".yaml") || !strings.Contains(filepath.Base(path), kind) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := each(data); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return nil
	})
}

func loadEmployees(dataDir string) ([]EmployeeData, error) {
	var all []EmployeeData
	err := readYAMLFiles(dataDir, "employees", func(data []byte) error {
		var file EmployeesFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return err
		}
		all = append(all, file.Employees...)
		return nil
	})
	return all, err
}

func loadCustomers(dataDir string) ([]CustomerData, error) {
	var all []CustomerData
	err := readYAMLFiles(dataDir, "customers", func(data []byte) error {
		var file CustomersFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return err
		}
		all = append(all, file.Customers...)
		return nil
	})
	return all, err
}

func createEmployee(db *gorm.DB, employeeData EmployeeData) (*models.Employee, bool, error) {
	if employeeData.UserID == "" {
		return nil, false, fmt.Errorf("employee %q has no user_id", employeeData.Name)
	}

	var employee models.Employee
	err := db.Where("user_id = ?", employeeData.UserID).First(&employee).Error
	if err == nil {
		return &employee, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to query employee: %w", err)
	}

	employee = models.Employee{
		Name:   employeeData.Name,
		Email:  employeeData.Email,
		UserID: employeeData.UserID,
	}
	if err := db.Create(&employee).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create employee: %w", err)
	}
	return &employee, true, nil
}

// createCustomer inserts the customer unless one with the same name and email exists.
// Email alone is not unique, so both columns identify a seeded customer.
func createCustomer(db *gorm.DB, customerData CustomerData, employeeMap map[string]*models.Employee) (*models.Customer, bool, error) {
	var salesRepID *uuid.UUID
	if customerData.SalesRepUser != "" {
		rep := employeeMap[customerData.SalesRepUser]
		if rep == nil {
			return nil, false, fmt.Errorf("sales rep %s not found for customer %s", customerData.SalesRepUser, customerData.Name)
		}
		salesRepID = &rep.ID
	}

	var customer models.Customer
	err := db.Where("name = ? AND email = ?", customerData.Name, customerData.Email).First(&customer).Error
	if err == nil {
		return &customer, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to query customer: %w", err)
	}

	customer = models.Customer{
		Name:       customerData.Name,
		Email:      customerData.Email,
		SalesRepID: salesRepID,
	}
	if err := db.Create(&customer).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create customer: %w", err)
	}
	return &customer, true, nil
}
