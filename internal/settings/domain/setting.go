// Package domain defines the site settings model: a small set of low-churn key/value
// pairs rendered into page metadata.
package domain

import (
	"time"

	"github.com/allisson/crm/internal/errors"
)

// Known setting keys.
const (
	KeySiteName        = "site_name"
	KeySiteDescription = "site_description"
)

// defaults is served for known keys when the store is unreachable or has no row.
var defaults = map[string]string{
	KeySiteName:        "CRM",
	KeySiteDescription: "Manage customers, products and transactions in one place.",
}

// ErrSettingNotFound indicates the requested setting key does not exist.
var ErrSettingNotFound = errors.Wrap(errors.ErrNotFound, "setting not found")

// Setting is one stored key/value pair.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// SiteMetadata is the public page metadata derived from the settings.
type SiteMetadata struct {
	Title       string
	Description string
}

// Default returns the fixed fallback value of a known key.
func Default(key string) (string, bool) {
	v, ok := defaults[key]
	return v, ok
}

// MetadataKeys lists the keys read for page metadata.
func MetadataKeys() []string {
	return []string{KeySiteName, KeySiteDescription}
}
