package constants

import "errors"

// Configuration errors.
var (
	ErrNoAPIKeyConfigured = errors.New("no API key configured, use 'lago config set-key' or set LAGO_API_KEY")
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
	ErrNotATerminal       = errors.New("standard input is not a terminal, pass the key as an argument")
	ErrEmptyAPIKey        = errors.New("API key must not be empty")
)

// Command errors.
var (
	ErrInvalidOutputFormat = errors.New("invalid output format, expected table, json or yaml")
	ErrInvalidProperties   = errors.New("properties must be key=value pairs")
	ErrNoWebhookVerifier   = errors.New("either --hmac-secret or a reachable public key is required")
	ErrInvalidHeader       = errors.New("headers must be given as \"Name: value\"")
)
