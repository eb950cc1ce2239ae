package entities

import (
	"errors"
	"fmt"
)

// ErrUsage indicates the command line could not be interpreted.
var ErrUsage = errors.New("invalid usage")

// ErrArchiveMemberParse indicates an archive member is not a well-formed XML document.
var ErrArchiveMemberParse = errors.New("failed to parse archive member")

// ErrMalformedInput indicates a document is well-formed but lacks structure the conversion needs.
var ErrMalformedInput = errors.New("malformed input")

// ErrMissingRequiredField indicates the task name or scanner version is absent.
var ErrMissingRequiredField = fmt.Errorf("%w: missing required field", ErrMalformedInput)

// ErrValueConversion indicates a risk score is not numeric.
var ErrValueConversion = errors.New("value conversion failed")

// ErrOutputWrite indicates a spreadsheet could not be persisted.
var ErrOutputWrite = errors.New("failed to write output")

// ErrSignatureVerification indicates the archive does not match its detached signature.
var ErrSignatureVerification = errors.New("signature verification failed")
