package auth

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher вычисляет и сверяет дайджест пароля менеджера.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) (bool, error)
}

// LegacyMD5Hasher совместим с учётными записями, заведёнными исходной системой:
// дайджест хранится как MD5 в нижнем hex.
type LegacyMD5Hasher struct{}

// Hash возвращает MD5 пароля в нижнем hex.
func (LegacyMD5Hasher) Hash(password string) (string, error) {
	sum := md5.Sum([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

// Verify сравнивает сохранённое значение побайтно, регистр не приводится.
func (h LegacyMD5Hasher) Verify(hash, password string) (bool, error) {
	expected, _ := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(hash), []byte(expected)) == 1, nil
}

// BcryptHasher хранит пароли в формате bcrypt.
type BcryptHasher struct {
	Cost int
}

// Hash вычисляет bcrypt-дайджест; Cost=0 означает bcrypt.DefaultCost.
func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify сверяет пароль с bcrypt-дайджестом. Несовпадение не является ошибкой.
func (BcryptHasher) Verify(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("verify password: %w", err)
	}
}

// DetectingHasher сверяет пароль схемой, определённой по префиксу дайджеста.
// Новые дайджесты вычисляет через bcrypt.
type DetectingHasher struct {
	Bcrypt BcryptHasher
	Legacy LegacyMD5Hasher
}

// Hash вычисляет новый дайджест через bcrypt.
func (h DetectingHasher) Hash(password string) (string, error) {
	return h.Bcrypt.Hash(password)
}

// Verify выбирает схему по префиксу сохранённого дайджеста.
func (h DetectingHasher) Verify(hash, password string) (bool, error) {
	if IsBcryptHash(hash) {
		return h.Bcrypt.Verify(hash, password)
	}
	return h.Legacy.Verify(hash, password)
}

// IsBcryptHash сообщает, что значение записано в формате bcrypt.
func IsBcryptHash(hash string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(hash, prefix) {
			return true
		}
	}
	return false
}

// HashPassword вычисляет дайджест для ручного заведения учётной записи.
// scheme: "bcrypt" или "md5".
func HashPassword(scheme, password string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", "bcrypt":
		return BcryptHasher{}.Hash(password)
	case "md5":
		return LegacyMD5Hasher{}.Hash(password)
	default:
		return "", fmt.Errorf("unsupported hash scheme %q", scheme)
	}
}

var (
	_ PasswordHasher = LegacyMD5Hasher{}
	_ PasswordHasher = BcryptHasher{}
	_ PasswordHasher = DetectingHasher{}
)
