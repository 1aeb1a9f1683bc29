// Package clipboard bridges the markup transport to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	atotto "github.com/atotto/clipboard"

	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// ErrUnsupported signals that the host platform exposes no clipboard.
var ErrUnsupported = errors.New("clipboard: unsupported platform")

// New returns a transport backed by the OS clipboard.
func New() interfaces.Clipboard {
	return systemClipboard{}
}

type systemClipboard struct{}

func (systemClipboard) WriteMarkup(markup string) error {
	if atotto.Unsupported {
		return ErrUnsupported
	}
	if err := atotto.WriteAll(markup); err != nil {
		return fmt.Errorf("clipboard: write markup: %w", err)
	}
	return nil
}
