package auth

import "golang.org/x/crypto/bcrypt"

// HashGatewayToken hashes the gateway's shared token for configuration. Only
// the hash is stored server-side; the plaintext stays with the gateway.
func HashGatewayToken(token string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(token), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CompareGatewayToken verifies a presented token against the stored hash.
func CompareGatewayToken(hashed, token string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(token))
}
