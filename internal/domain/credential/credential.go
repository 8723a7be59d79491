package credential

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"os"
	"strings"
)

// SandboxSecurityCredential is the initiator password Safaricom publishes for
// the sandbox. Sandbox clients always send it, whatever they were configured with.
const SandboxSecurityCredential = "Safaricom868!"

// Credentials holds the Daraja app keys and the initiator security credential
type Credentials struct {
	Key                string
	Secret             string
	SecurityCredential string
	CertificatePath    string
}

// Environment represents provider environment
type Environment string

const (
	EnvironmentSandbox    Environment = "sandbox"
	EnvironmentProduction Environment = "production"
)

// ParseEnvironment is case sensitive, like the Daraja portal.
func ParseEnvironment(s string) (Environment, error) {
	switch env := Environment(s); env {
	case EnvironmentSandbox, EnvironmentProduction:
		return env, nil
	}
	return "", fmt.Errorf("invalid environment %q: want %q or %q", s, EnvironmentSandbox, EnvironmentProduction)
}

// BaseURL returns the Daraja host for the environment
func (e Environment) BaseURL() string {
	if e == EnvironmentProduction {
		return "https://api.safaricom.co.ke"
	}
	return "https://sandbox.safaricom.co.ke"
}

// Validate checks the fields every environment needs
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Key) == "" {
		return fmt.Errorf("consumer key is required")
	}
	if strings.TrimSpace(c.Secret) == "" {
		return fmt.Errorf("consumer secret is required")
	}
	return nil
}

// Derive returns the security credential to send for env. Production values
// are encrypted with the certificate at CertificatePath.
func Derive(c Credentials, env Environment) (string, error) {
	switch env {
	case EnvironmentSandbox:
		return SandboxSecurityCredential, nil
	case EnvironmentProduction:
		if c.CertificatePath == "" {
			return "", fmt.Errorf("certificate path is required in production")
		}
		pemBytes, err := os.ReadFile(c.CertificatePath)
		if err != nil {
			return "", fmt.Errorf("failed to read certificate: %w", err)
		}
		return EncryptWithCertificate(pemBytes, c.SecurityCredential)
	}
	return "", fmt.Errorf("invalid environment %q", env)
}

// EncryptWithCertificate encrypts plaintext with the RSA public key of a PEM
// X.509 certificate using PKCS#1 v1.5 and returns it base64 encoded. The
// padding is random, so repeated calls yield different ciphertexts.
func EncryptWithCertificate(pemBytes []byte, plaintext string) (string, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return "", fmt.Errorf("failed to decode certificate PEM")
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return "", fmt.Errorf("failed to parse certificate: %w", err)
	}

	pub, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return "", fmt.Errorf("certificate does not carry an RSA public key")
	}

	encrypted, err := rsa.EncryptPKCS1v15(rand.Reader, pub, []byte(plaintext))
	if err != nil {
		return "", fmt.Errorf("failed to encrypt security credential: %w", err)
	}
	return base64.StdEncoding.EncodeToString(encrypted), nil
}
