package probe

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const accessTokenKey = "access_token"

var (
	errTokenMissing = errors.New("response contains no access_token")
	errTokenEmpty   = errors.New("response contains an empty access_token")
)

// tokenResponse is the IMDS token response keyed by exact field name.
// encoding/json matches struct tags case-insensitively, so the token is looked
// up in the raw object instead of decoded into a tagged struct.
type tokenResponse map[string]json.RawMessage

// tokenOutcome is either tokenAcquired or tokenFailure.
type tokenOutcome interface {
	isTokenOutcome()
}

type tokenAcquired struct {
	token string
}

type tokenFailure struct {
	reason error
}

func (tokenAcquired) isTokenOutcome() {}
func (tokenFailure) isTokenOutcome()  {}

func decodeTokenResponse(body io.Reader) tokenOutcome {
	raw, err := io.ReadAll(io.LimitReader(body, maxResponseBytes))
	if err != nil {
		return tokenFailure{reason: fmt.Errorf("failed to read token response: %w", err)}
	}

	// Unmarshal rejects trailing data after the object.
	var res tokenResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return tokenFailure{reason: fmt.Errorf("failed to decode token response: %w", err)}
	}

	rawToken, ok := res[accessTokenKey]
	if !ok {
		return tokenFailure{reason: errTokenMissing}
	}

	var token *string
	if err := json.Unmarshal(rawToken, &token); err != nil {
		return tokenFailure{reason: fmt.Errorf("failed to decode %s: %w", accessTokenKey, err)}
	}

	switch {
	case token == nil:
		return tokenFailure{reason: errTokenMissing}
	case *token == "":
		return tokenFailure{reason: errTokenEmpty}
	}

	return tokenAcquired{token: *token}
}
