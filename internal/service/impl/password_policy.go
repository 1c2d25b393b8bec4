package impl

import (
	"fmt"
	"strings"
	"unicode"

	"portfolio/internal/domain"
)

// Digit runs that count as easy to guess in staff passwords.
var sequentialDigits = []string{
	"123", "234", "345", "456", "567", "678", "789", "890",
	"098", "987", "876", "765", "654", "543", "432", "321",
}

// adminPasswordPolicy describes the rules an admin password must meet.
// New admins and password resets by a superAdmin differ only in minimum
// length and digit count.
type adminPasswordPolicy struct {
	MinLen    int
	MinDigits int
	lenMsg    string
	digitsMsg string
}

var (
	newAdminPolicy = adminPasswordPolicy{
		MinLen: 8, MinDigits: 2,
		lenMsg:    "Password minimal harus 8 karakter.",
		digitsMsg: "Password harus mengandung setidaknya dua angka.",
	}
	resetAdminPolicy = adminPasswordPolicy{
		MinLen: 10, MinDigits: 3,
		lenMsg:    "Password baru minimal harus 10 karakter.",
		digitsMsg: "Password baru harus mengandung setidaknya tiga (3) angka.",
	}
)

// Check validates password; forbidden lists words (name parts, email local
// part) that may not appear in it when longer than two characters.
func (p adminPasswordPolicy) Check(password string, forbidden ...string) error {
	if len(password) < p.MinLen {
		return domain.Invalid(p.lenMsg)
	}
	lower := strings.ToLower(password)
	if strings.Contains(lower, "admin") {
		return domain.Invalid("Password tidak boleh mengandung kata 'admin'.")
	}

	digits, letters := 0, 0
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			digits++
		case unicode.IsLetter(r):
			letters++
		}
	}
	if digits == len([]rune(password)) {
		return domain.Invalid("Password tidak boleh hanya terdiri dari angka.")
	}
	if digits == 0 || letters == 0 {
		return domain.Invalid("Password harus merupakan kombinasi huruf dan angka.")
	}
	for _, seq := range sequentialDigits {
		if strings.Contains(password, seq) {
			return domain.Invalid("Password tidak boleh mengandung urutan angka yang mudah ditebak.")
		}
	}
	for _, w := range forbidden {
		w = strings.ToLower(strings.TrimSpace(w))
		if len(w) > 2 && strings.Contains(lower, w) {
			return domain.Invalid(fmt.Sprintf("Password tidak boleh mengandung bagian dari nama atau email Anda (kata: %q).", w))
		}
	}
	if digits < p.MinDigits {
		return domain.Invalid(p.digitsMsg)
	}
	return nil
}

// personalWords splits a full name and the local part of an email into the
// words a password may not contain.
func personalWords(fullName, email string) []string {
	words := strings.Fields(fullName)
	local, _, _ := strings.Cut(email, "@")
	return append(words, local)
}
