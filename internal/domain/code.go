package domain

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	CodePrefix = "MH"
	CodeWidth  = 8
)

// NormalizeCode turns a bare number into the canonical code form
// ("123" -> "MH00000123"). Any other token is returned trimmed but otherwise
// unchanged.
func NormalizeCode(token string) string {
	token = strings.TrimSpace(token)
	n, err := strconv.ParseUint(token, 10, 64)
	if err != nil {
		return token
	}
	return fmt.Sprintf("%s%0*d", CodePrefix, CodeWidth, n)
}

// FormatCode returns the canonical code for a sequence number.
func FormatCode(n int) string {
	return NormalizeCode(strconv.Itoa(n))
}

// CodeKey is the identity a catalog stores products under. Two codes name the
// same product iff their keys are equal.
func CodeKey(code string) string {
	return cases.Upper(language.Und).String(NormalizeCode(code))
}
