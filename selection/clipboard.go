package selection

import (
	"github.com/atotto/clipboard"
	"github.com/sirupsen/logrus"
)

// CopyToClipboard writes text to the system clipboard in the
// background. A failed write (e.g. no clipboard utility available in
// a headless environment) is logged and dropped — callers never see
// or need to handle a clipboard error.
func CopyToClipboard(log *logrus.Logger, text string) {
	go func() {
		if err := clipboard.WriteAll(text); err != nil {
			log.WithError(err).Warn("selection: failed to write to clipboard")
		}
	}()
}
