package analysis

import "errors"

// ErrNoInput indicates a scoring request carried neither a file nor a prompt.
var ErrNoInput = errors.New("no prompt or file provided")

// ErrMissingAPIKey indicates the provider API key is absent from configuration.
var ErrMissingAPIKey = errors.New("provider api key is missing")
