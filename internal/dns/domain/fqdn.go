package domain

import (
	"errors"
	"strings"
)

// ErrEmptyName is returned by ResolveFQDN when the record name is blank.
var ErrEmptyName = errors.New("record name must not be empty")

// ResolveFQDN expands a record name to its fully qualified form within zone.
// "@" and the zone name itself denote the apex, "*" the wildcard apex. A name
// that already ends in the zone is returned unchanged; anything else is
// joined as name.zone.
func ResolveFQDN(name, zone string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	switch {
	case name == "@", name == zone:
		return zone, nil
	case name == "*":
		return "*." + zone, nil
	case strings.HasSuffix(name, "."+zone):
		return name, nil
	}
	return name + "." + zone, nil
}
