package store

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"clientdesk/internal/domain"
	"clientdesk/internal/util/memzero"
)

const (
	// The current supported version of the sealed blob format.
	sealedFormatVersion = 1
)

var (
	// ErrWrongPassphrase is returned when the passphrase is incorrect or the
	// ciphertext has been modified.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted value")
	// ErrEmptyPassphrase is returned by NewSealedStore for a blank passphrase.
	ErrEmptyPassphrase = errors.New("passphrase required for sealed storage")
)

// ScryptParams are the key derivation cost parameters.
type ScryptParams struct {
	N, R, P int
}

// DefaultScryptParams are the parameters used unless overridden.
func DefaultScryptParams() ScryptParams { return ScryptParams{N: 1 << 15, R: 8, P: 1} }

// sealedBlob is the JSON structure holding the ciphertext and KDF parameters.
type sealedBlob struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// SealedStore encrypts values with a key derived from a passphrase before
// handing them to the wrapped store. The key name is bound as associated
// data, so a value copied under another key fails to open.
type SealedStore struct {
	inner      domain.KeyValueStore
	passphrase []byte
	params     ScryptParams
}

// NewSealedStore wraps inner with passphrase encryption.
func NewSealedStore(inner domain.KeyValueStore, passphrase string, params ScryptParams) (*SealedStore, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	if params.N == 0 {
		params = DefaultScryptParams()
	}
	return &SealedStore{inner: inner, passphrase: []byte(passphrase), params: params}, nil
}

func (s *SealedStore) Get(key string) ([]byte, bool, error) {
	b, ok, err := s.inner.Get(key)
	if err != nil || !ok {
		return nil, ok, err
	}
	pt, err := s.open(key, b)
	if err != nil {
		return nil, false, err
	}
	return pt, true, nil
}

func (s *SealedStore) Set(key string, value []byte) error {
	b, err := s.seal(key, value)
	if err != nil {
		return err
	}
	return s.inner.Set(key, b)
}

func (s *SealedStore) Delete(key string) error { return s.inner.Delete(key) }

// seal derives a fresh key and seals raw into a JSON blob.
func (s *SealedStore) seal(name string, raw []byte) ([]byte, error) {
	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	key, err := scrypt.Key(s.passphrase, salt[:], s.params.N, s.params.R, s.params.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; salt-bound key is never reused
	ct := aead.Seal(nil, nonce[:], raw, associatedData(salt[:], name))

	return json.Marshal(sealedBlob{
		V:      sealedFormatVersion,
		Salt:   salt[:],
		N:      s.params.N,
		R:      s.params.R,
		P:      s.params.P,
		Cipher: ct,
	})
}

// open reverses seal.
func (s *SealedStore) open(name string, b []byte) ([]byte, error) {
	var bl sealedBlob
	if err := json.Unmarshal(b, &bl); err != nil {
		return nil, fmt.Errorf("decode sealed value: %w", err)
	}
	if bl.V > sealedFormatVersion {
		return nil, fmt.Errorf("unsupported sealed format version %d", bl.V)
	}
	key, err := scrypt.Key(s.passphrase, bl.Salt, bl.N, bl.R, bl.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], bl.Cipher, associatedData(bl.Salt, name))
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

func associatedData(salt []byte, name string) []byte {
	ad := make([]byte, 0, len(salt)+len(name))
	ad = append(ad, salt...)
	return append(ad, name...)
}

var _ domain.KeyValueStore = (*SealedStore)(nil)
