package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"courierbridge/internal/core/domain/model/kernel"
	"courierbridge/internal/core/domain/services"

	"gopkg.in/yaml.v3"
)

// Reservation store backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

type Config struct {
	HTTPPort string
	LogLevel string

	// OperatorToken guards /api/v1/; empty disables the operator API.
	OperatorToken string

	ShopifyWebhookSecret string
	ShopifyShopDomain    string
	ShopifyAccessToken   string
	ShopifyAPIVersion    string
	ShopifyBaseURL       string

	MetrobiAPIKey    string
	MetrobiBaseURL   string
	MetrobiMode      string
	MetrobiCreateURL string
	MetrobiSurcharge string

	CourierTitleMatch   string
	CourierCode         string
	NotifyCustomer      bool
	ExcludedPostalCodes []string

	StoreTimeZone    string
	StoreProfilePath string

	ReservationStore string
	ReservationTTL   time.Duration
	SweepSchedule    string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisURL string
}

// PostgresDSN renders the DB settings as a libpq keyword/value string.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// storeProfileFile is the YAML shape of the pickup store profile.
type storeProfileFile struct {
	Address struct {
		Address1   string `yaml:"address1"`
		Address2   string `yaml:"address2"`
		City       string `yaml:"city"`
		Province   string `yaml:"province"`
		PostalCode string `yaml:"postal_code"`
		Country    string `yaml:"country"`
		Company    string `yaml:"company"`
	} `yaml:"address"`
	Contact struct {
		Name  string `yaml:"name"`
		Phone string `yaml:"phone"`
		Email string `yaml:"email"`
	} `yaml:"contact"`
	Instructions string `yaml:"instructions"`
}

// LoadStoreProfile reads the pickup store from a YAML file. An empty path
// returns services.DefaultStoreProfile.
//
// Example file:
//
//	address:
//	  address1: 184 Lexington Ave
//	  city: New York
//	  province: NY
//	  postal_code: "10016"
//	  country: US
//	contact:
//	  name: Front desk
//	  phone: "+12125550100"
//	instructions: Ring the bell at the loading door.
func LoadStoreProfile(path string) (services.StoreProfile, error) {
	if strings.TrimSpace(path) == "" {
		return services.DefaultStoreProfile(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return services.StoreProfile{}, fmt.Errorf("read store profile: %w", err)
	}
	return ParseStoreProfile(raw)
}

// ParseStoreProfile decodes a YAML store profile and validates its address.
func ParseStoreProfile(raw []byte) (services.StoreProfile, error) {
	var f storeProfileFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return services.StoreProfile{}, fmt.Errorf("parse store profile: %w", err)
	}

	profile := services.StoreProfile{
		Address: kernel.Address{
			Address1:   f.Address.Address1,
			Address2:   f.Address.Address2,
			City:       f.Address.City,
			Province:   f.Address.Province,
			PostalCode: f.Address.PostalCode,
			Country:    f.Address.Country,
			Company:    f.Address.Company,
		},
		Contact: kernel.Contact{
			Name:  f.Contact.Name,
			Phone: f.Contact.Phone,
			Email: f.Contact.Email,
		},
		Instructions: f.Instructions,
	}
	if profile.Address.Country == "" {
		profile.Address.Country = kernel.CountryUS
	}
	if err := profile.Address.Validate(); err != nil {
		return services.StoreProfile{}, fmt.Errorf("store profile: %w", err)
	}
	return profile, nil
}
