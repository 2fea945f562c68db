package ports

// SecurityPort defines the interface for encrypting and decrypting sensitive
// KYC fields at rest. Implementations can be swapped without touching the
// repositories that use it.
type SecurityPort interface {
	// Encrypt takes a plaintext and returns a secure, encrypted ciphertext.
	Encrypt(plaintext []byte) (ciphertext []byte, err error)

	// Decrypt takes a ciphertext and returns the original plaintext.
	Decrypt(ciphertext []byte) (plaintext []byte, err error)
}
