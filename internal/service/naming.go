package service

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"lempek/internal/domain"
)

// forbiddenRunes are the characters a folder or file name may never contain.
// The set covers path separators, shell metacharacters and everything the
// common desktop filesystems reject.
var forbiddenRunes = []rune{'<', '>', ':', '"', '/', '\\', '|', '?', '*', ',', ';', '=', '(', ')', '&', '#', '\''}

// reservedNames are device names some filesystems treat specially; a name
// matching one of these (case-insensitively) is rejected outright.
var reservedNames = []string{
	"CON", "PRN", "AUX", "NUL",
	"COM1", "COM2", "COM3", "COM4", "COM5", "COM6", "COM7", "COM8", "COM9",
	"LPT1", "LPT2", "LPT3", "LPT4", "LPT5", "LPT6", "LPT7", "LPT8", "LPT9",
}

const maxNameBytes = 255

// CheckName validates a folder or file name against the character, length
// and reserved-name rules shared by every tree mutation. The returned error
// is always a *domain.InvalidNameError.
func CheckName(name string) error {
	if name == "" {
		return &domain.InvalidNameError{
			Name:   name,
			Reason: "name must not be empty",
		}
	}

	if len(name) > maxNameBytes {
		return &domain.InvalidNameError{
			Name:   name,
			Reason: "name must be at most 255 bytes",
		}
	}

	for _, r := range name {
		if r < 0x20 {
			return &domain.InvalidNameError{
				Name:   name,
				Reason: "name must not contain control characters",
			}
		}
		for _, bad := range forbiddenRunes {
			if r == bad {
				return &domain.InvalidNameError{
					Name:          name,
					ForbiddenRune: r,
					Forbidden:     forbiddenRunes,
				}
			}
		}
	}

	for _, reserved := range reservedNames {
		if strings.EqualFold(name, reserved) {
			return &domain.InvalidNameError{
				Name:     name,
				Reserved: reservedNames,
			}
		}
	}

	return nil
}

// NameRule plugs CheckName into ozzo-validation chains so request structs
// can validate names alongside their other fields.
var NameRule = validation.By(func(value interface{}) error {
	name, _ := value.(string)
	return CheckName(name)
})
