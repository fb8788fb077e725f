package client

import (
	"errors"
	"fmt"
)

var (
	ErrFileTooLarge = errors.New("file size is too large, maximum allowed is 70 MB")
	ErrNoFile       = errors.New("no file selected")
	// ErrNotSequence is returned when the listing payload is not an array.
	ErrNotSequence = errors.New("error 404")
	ErrNoDelivery  = errors.New("delivery urls are not configured")

	// ErrSignInRequired is returned when the server answers an API call with a
	// redirect to the sign-in page or a 401.
	ErrSignInRequired = errors.New("sign in required")
)

// Kind classifies a failed upload.
type Kind int

const (
	// KindServer: the server answered with a structured JSON error.
	KindServer Kind = iota + 1
	// KindMalformed: the server answered with HTML or another non-JSON body.
	KindMalformed
	// KindNetwork: no response was received.
	KindNetwork
	// KindRequest: the request could not be built.
	KindRequest
)

func (k Kind) String() string {
	switch k {
	case KindServer:
		return "server"
	case KindMalformed:
		return "malformed"
	case KindNetwork:
		return "network"
	case KindRequest:
		return "request"
	default:
		return "unknown"
	}
}

const (
	malformedMessage = "Server error: Please check your backend logs. (Possible server misconfiguration)"
	networkMessage   = "No response from server. Please check your network or backend."
	signInMessage    = "Sign in required. Please sign in and try again."
)

// UploadError is what the user sees when an upload fails. No retry is attempted.
type UploadError struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *UploadError) Error() string {
	switch e.Kind {
	case KindServer, KindMalformed:
		return "Backend error: " + e.Message
	default:
		return e.Message
	}
}

func (e *UploadError) Unwrap() error { return e.Err }

func requestError(err error) *UploadError {
	return &UploadError{Kind: KindRequest, Message: fmt.Sprintf("Request error: %v", err), Err: err}
}

func networkError(err error) *UploadError {
	return &UploadError{Kind: KindNetwork, Message: networkMessage, Err: err}
}
