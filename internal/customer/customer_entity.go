package customer

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

type Customer struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	FullName         string    `gorm:"column:full_name;type:varchar(255);not null;index"`
	Email            string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_customers_email"`
	TaxID            string    `gorm:"column:tax_id;type:varchar(14);not null;uniqueIndex:uq_customers_tax_id"`
	Phone            string    `gorm:"column:phone;type:varchar(20)"`
	ZipCode          string    `gorm:"column:zip_code;type:varchar(10)"`
	Street           string    `gorm:"column:street;type:varchar(255)"`
	Number           string    `gorm:"column:number;type:varchar(20)"`
	Complement       string    `gorm:"column:complement;type:varchar(100)"`
	District         string    `gorm:"column:district;type:varchar(100)"`
	City             string    `gorm:"column:city;type:varchar(100)"`
	State            string    `gorm:"column:state;type:varchar(2)"`
	ResponsibleName  string    `gorm:"column:responsible_name;type:varchar(255)"`
	ResponsibleTaxID string    `gorm:"column:responsible_tax_id;type:varchar(14)"`
	ResponsibleEmail string    `gorm:"column:responsible_email;type:varchar(255)"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// NormalizeTaxID keeps only the digits of a CPF or CNPJ.
func NormalizeTaxID(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, raw)
}

// ValidTaxID accepts 11 digit CPFs and 14 digit CNPJs.
func ValidTaxID(digits string) bool {
	return len(digits) == 11 || len(digits) == 14
}
