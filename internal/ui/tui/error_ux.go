package tui

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
)

// userMessage maps an error to the one-line text shown in a toast.
// Backend, validation and transport errors use the shared view wording.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var (
		ae *domain.APIError
		ve *domain.ValidationError
		te *domain.TransportError
	)
	if errors.As(err, &ae) || errors.As(err, &ve) || errors.As(err, &te) || errors.Is(err, domain.ErrUnauthorized) {
		return domain.Message(err)
	}
	if errors.Is(err, domain.ErrNotSupported) {
		return "Not available for this resource"
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {
		case domain.KindNotFound:
			if errors.Is(err, domain.ErrUnknownResource) {
				return "Unknown resource " + oe.Path
			}
			return "Not found"

		case domain.KindInvalidConfig:
			if strings.TrimSpace(oe.Path) != "" {
				return "Invalid config at " + filepath.Base(oe.Path)
			}
			return "Invalid config"

		case domain.KindInvalidInput:
			return "Invalid input"
		}
	}

	return "Unexpected error (see logs)"
}

// sessionCleared reports whether err logged the user out.
func sessionCleared(err error) bool {
	var ae *domain.APIError
	return errors.As(err, &ae) && ae.SessionCleared
}
