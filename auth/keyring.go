// Package auth stores the catalog API bearer token in the system keyring.
package auth

import (
	"errors"

	"github.com/samber/mo"
	"github.com/vidmeta/vidmeta/constant"
	"github.com/zalando/go-keyring"
)

const user = "catalog-token"

// SetToken stores the catalog token.
func SetToken(token string) error {
	return keyring.Set(constant.App, user, token)
}

// GetToken reads the catalog token.
func GetToken() (string, error) {
	return keyring.Get(constant.App, user)
}

// Token returns the catalog token when one is stored. A missing keyring
// backend is treated as no token.
func Token() mo.Option[string] {
	token, err := GetToken()
	if err != nil || token == "" {
		return mo.None[string]()
	}
	return mo.Some(token)
}

// DeleteToken removes the catalog token. Deleting a missing token is not an error.
func DeleteToken() error {
	err := keyring.Delete(constant.App, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
