package services

import (
	"dailythought/internal/crypto"
	"dailythought/internal/models"
)

// EncryptionService seals diary bodies at rest. A service without a cipher stores plaintext.
type EncryptionService struct {
	cipher *crypto.Cipher
}

// NewEncryptionService derives the body key from secret. An empty secret disables encryption.
func NewEncryptionService(secret string) (*EncryptionService, error) {
	if secret == "" {
		return &EncryptionService{}, nil
	}
	c, err := crypto.NewCipherFromSecret(secret)
	if err != nil {
		return nil, err
	}
	return &EncryptionService{cipher: c}, nil
}

func (s *EncryptionService) Enabled() bool { return s != nil && s.cipher != nil }

func (s *EncryptionService) EncryptBody(body string) (string, error) {
	if !s.Enabled() {
		return body, nil
	}
	return s.cipher.Encrypt(body)
}

// DecryptEntry replaces the stored body with its plaintext.
func (s *EncryptionService) DecryptEntry(e *models.DiaryEntry) error {
	if !s.Enabled() {
		return nil
	}
	plain, err := s.cipher.Decrypt(e.Body)
	if err != nil {
		return err
	}
	e.Body = plain
	return nil
}
