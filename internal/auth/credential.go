package auth

import (
	"encoding/json"
	"errors"
	"fmt"
)

// CredentialKind discriminates the supported login credential variants.
type CredentialKind string

const (
	CredentialPassword     CredentialKind = "password"
	CredentialExchangeCode CredentialKind = "exchange-code"
	CredentialTokenHash    CredentialKind = "token-hash"
	CredentialNumericCode  CredentialKind = "numeric-code"
)

// Credential is a tagged union over the login variants. Kind decides which
// of the remaining fields are meaningful: Username/Password for the password
// kind, Code for the single-use code kinds.
type Credential struct {
	Kind     CredentialKind `json:"kind"`
	Username string         `json:"username,omitempty"`
	Password string         `json:"password,omitempty"`
	Code     string         `json:"code,omitempty"`
}

var ErrInvalidCredential = errors.New("invalid credential")

// UnmarshalJSON validates the union shape on decode so that handlers never
// see a half-filled credential.
func (c *Credential) UnmarshalJSON(data []byte) error {
	type credentialAlias Credential
	var decoded credentialAlias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	switch decoded.Kind {
	case CredentialPassword:
		if decoded.Username == "" || decoded.Password == "" {
			return fmt.Errorf("%w: password kind needs username and password", ErrInvalidCredential)
		}
	case CredentialExchangeCode, CredentialTokenHash, CredentialNumericCode:
		if decoded.Code == "" {
			return fmt.Errorf("%w: %s kind needs a code", ErrInvalidCredential, decoded.Kind)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidCredential, decoded.Kind)
	}

	*c = Credential(decoded)
	return nil
}
