package domain

import (
	"context"
	"io"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// PosterStore stores poster images and returns a publicly reachable URL.
type PosterStore interface {
	Put(ctx context.Context, filename, contentType string, data io.Reader) (url string, err error)
}
