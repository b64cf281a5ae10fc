// Package auth provides a high-level API for persisting and retrieving the
// subscription token from the system keyring.
package auth

import (
	"github.com/zalando/go-keyring"

	"github.com/dfawole/m4tplay/constant"
)

const user = "subscription-token"

// SetToken persists the subscription token to the system keyring.
func SetToken(token string) error {
	return keyring.Set(constant.M4TPlay, user, token)
}

// GetToken retrieves the subscription token from the system keyring.
func GetToken() (string, error) {
	return keyring.Get(constant.M4TPlay, user)
}

// DeleteToken removes the subscription token from the system keyring.
func DeleteToken() error {
	return keyring.Delete(constant.M4TPlay, user)
}

// HasToken reports whether a subscription token is stored.
func HasToken() bool {
	token, err := GetToken()
	return err == nil && token != ""
}
