package pkg

import "golang.org/x/crypto/bcrypt"

// cost 14 makes a single hash take around a second on current hardware
const bcryptCost = 14

func HashPassword(password string) (string, error) {
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return BytesToString(hashBytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
