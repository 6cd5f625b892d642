package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost — фиксированный фактор стоимости хеширования (10 раундов).
const bcryptCost = 10

// HashPassword вычисляет соленый bcrypt-хеш пароля.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash сравнивает пароль с хешем.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
