package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var serviceCaser = cases.Title(language.Spanish)

// NormalizeService returns the service name in title case, or DefaultService when empty
func NormalizeService(service string) string {
	service = strings.TrimSpace(service)
	if service == "" {
		service = DefaultService
	}
	return serviceCaser.String(service)
}
