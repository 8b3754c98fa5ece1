package models

import (
	"errors"
	"fmt"
)

// ErrMalformedPayload marks an upstream response that could not be
// decoded. The market source wraps decode failures with it so the
// retry driver can classify exhaustion without matching error text.
var ErrMalformedPayload = errors.New("malformed upstream payload")

// ErrEmptyResult marks an upstream response that decoded cleanly but
// carried no usable bars. Counts as failure for the candidate that
// produced it.
var ErrEmptyResult = errors.New("empty result from upstream")

// FetchError reports that market data acquisition exhausted every
// strategy and retry attempt. Malformed distinguishes an undecodable
// upstream payload from generic transport failure so the service layer
// can word the response without inspecting error text.
type FetchError struct {
	Malformed bool
	Attempts  int
	Err       error
}

func (e *FetchError) Error() string {
	if e.Malformed {
		return fmt.Sprintf("market data unavailable: upstream returned an invalid payload after %d attempts: %v", e.Attempts, e.Err)
	}
	return fmt.Sprintf("market data unavailable after %d attempts: %v", e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Validation check identifiers, one per contract clause enforced on the
// model input window.
const (
	CheckRows    = "rows"
	CheckColumns = "columns"
	CheckMissing = "missing"
	CheckNumeric = "numeric"
	CheckFinite  = "finite"
	CheckShape   = "shape"
)

// ValidationError names the specific input-window constraint that was
// violated. Each check reports independently so an operator can read
// the root cause without dumping raw data.
type ValidationError struct {
	Check  string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("input window validation failed (%s): %s", e.Check, e.Detail)
}

// ArtifactError reports a problem loading the persisted model or a
// scaler. NotFound separates a missing file (client-correctable, maps
// to 404) from a present-but-unusable artifact.
type ArtifactError struct {
	Path     string
	NotFound bool
	Err      error
}

func (e *ArtifactError) Error() string {
	if e.NotFound {
		return fmt.Sprintf("model or scaler file not found: %s", e.Path)
	}
	return fmt.Sprintf("invalid artifact %s: %v", e.Path, e.Err)
}

func (e *ArtifactError) Unwrap() error { return e.Err }
