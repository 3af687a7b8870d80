package kernel

import (
	"strings"

	"courierbridge/internal/pkg/errs"
)

// CountryUS is the only destination country the courier serves.
const CountryUS = "US"

// Address is a postal address as the commerce platform and courier exchange it.
// The zero value is a valid, empty address; Validate reports whether it is usable
// as a courier stop.
//
// Example:
//
//	addr := kernel.Address{Address1: "184 Lexington Ave", City: "New York", Province: "NY", PostalCode: "10016", Country: "US"}
//	fmt.Println(addr.Line()) // 184 Lexington Ave New York NY 10016
type Address struct {
	Address1   string
	Address2   string
	City       string
	Province   string
	PostalCode string
	Country    string
	Company    string
}

// Line renders the address the way the courier geocodes it:
// street, city, province and postal code joined with single spaces.
// Empty parts are skipped so no double spaces appear.
func (a Address) Line() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Address1, a.City, a.Province, a.PostalCode} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, strings.Join(strings.Fields(p), " "))
		}
	}
	return strings.Join(parts, " ")
}

// IsEmpty reports whether no street line is present.
func (a Address) IsEmpty() bool {
	return strings.TrimSpace(a.Address1) == ""
}

// IsDomestic reports whether the address is in the courier's country.
// The country code must be exactly "US"; checkout always sends it upper case.
func (a Address) IsDomestic() bool {
	return a.Country == CountryUS
}

// HasCompany reports whether the address belongs to a business.
func (a Address) HasCompany() bool {
	return strings.TrimSpace(a.Company) != ""
}

// Validate checks the address can be used as a courier stop.
func (a Address) Validate() error {
	if a.IsEmpty() {
		return errs.NewValueIsRequiredError("address1")
	}
	if strings.TrimSpace(a.City) == "" && strings.TrimSpace(a.PostalCode) == "" {
		return errs.NewValueIsRequiredError("city or postal code")
	}
	return nil
}
