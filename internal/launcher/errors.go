package launcher

import (
	"fmt"
	"strings"

	"github.com/opentools-labs/opentools-launcher/internal/platform"
)

// UnsupportedError reports a host environment with no known binary variant.
type UnsupportedError struct {
	OS      string
	Machine string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported platform: %s/%s", e.OS, e.Machine)
}

// NotFoundError reports a recognized platform whose binary exists at
// neither candidate root. Shipped, when known from the bundle manifest,
// lists the variants the bundle does carry.
type NotFoundError struct {
	ID      platform.Identifier
	Shipped []platform.Identifier
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("binary not found for platform %s", e.ID)
	if len(e.Shipped) > 0 {
		names := make([]string, len(e.Shipped))
		for i, id := range e.Shipped {
			names[i] = string(id)
		}
		msg += fmt.Sprintf(" (bundle ships: %s)", strings.Join(names, ", "))
	}
	return msg
}
