package authenticator

import "time"

type TokenEngine interface {
	// Generate signs obj into a token valid for the given duration.
	Generate(expiration time.Duration, obj any) (string, error)

	// Verify checks the token and decodes its object into obj.
	Verify(token string, obj any) error
}
