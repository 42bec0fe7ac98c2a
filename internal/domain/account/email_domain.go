package account

import (
	"strings"

	"gorm.io/gorm"
)

// EmailDomain is one allowlisted registration domain for an institution.
type EmailDomain struct {
	ID            uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	InstitutionID uint         `gorm:"not null;column:institution_id;uniqueIndex:idx_email_domain_institution_domain,priority:1" json:"institution_id"`
	Institution   *Institution `gorm:"constraint:OnDelete:CASCADE;foreignKey:InstitutionID;references:ID" json:"-"`
	Domain        string       `gorm:"not null;size:255;column:domain;uniqueIndex:idx_email_domain_institution_domain,priority:2" json:"domain"`
}

func (EmailDomain) TableName() string { return "email_domain_allowlist" }

// DomainOf returns the lower-cased part after the last '@', or "".
func DomainOf(email string) string {
	email = strings.TrimSpace(strings.ToLower(email))
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return email[at+1:]
}

// NormalizeDomain lower-cases a domain and strips a leading '@'.
func NormalizeDomain(domain string) string {
	return strings.TrimPrefix(strings.TrimSpace(strings.ToLower(domain)), "@")
}

func (d *EmailDomain) BeforeSave(tx *gorm.DB) error {
	d.Domain = NormalizeDomain(d.Domain)
	return nil
}
