package hashing

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCost = errors.New("bcrypt cost out of range")
	// bcrypt учитывает только первые 72 байта, длиннее не принимаем
	ErrPasswordTooLong = bcrypt.ErrPasswordTooLong
)

// AdminPasswords хэширует пароли админских учёток (service.PasswordHasher).
// Стоимость берётся из BCRYPT_COST, 0 = bcrypt.DefaultCost.
type AdminPasswords struct {
	cost int
}

func NewAdminPasswords(cost int) (*AdminPasswords, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: %d (allowed %d..%d)", ErrInvalidCost, cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &AdminPasswords{cost: cost}, nil
}

func (p *AdminPasswords) Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", fmt.Errorf("hash admin password: %w", err)
	}
	return string(h), nil
}

// Compare: у учётки без пароля (пустой хэш) вход невозможен
func (p *AdminPasswords) Compare(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
