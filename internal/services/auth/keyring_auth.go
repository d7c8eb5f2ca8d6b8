package auth

import (
	"errors"

	"github.com/zalando/go-keyring"
)

type KeyringStore struct {
	serviceName string
}

func NewKeyringStore(serviceName string) *KeyringStore {
	if serviceName == "" {
		serviceName = ServiceName
	}
	return &KeyringStore{serviceName: serviceName}
}

func (k *KeyringStore) SetKey(host string, key string) error {
	return keyring.Set(k.serviceName, NormalizeHost(host), key)
}

func (k *KeyringStore) GetKey(host string) (string, error) {
	key, err := keyring.Get(k.serviceName, NormalizeHost(host))
	if err == nil {
		return key, nil
	}
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrKeyNotFound
	}
	return "", err
}

func (k *KeyringStore) DeleteKey(host string) error {
	err := keyring.Delete(k.serviceName, NormalizeHost(host))
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrKeyNotFound
	}
	return err
}
