package service

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword meng-hash password dengan bcrypt. Semua password baru wajib lewat sini.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash membandingkan hash tersimpan dengan password input.
func CheckPasswordHash(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
