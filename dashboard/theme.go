package dashboard

import (
	"os"

	"go.uber.org/zap"
)

// LoadTheme reads the stylesheet at path. A missing theme only degrades
// styling, so it is logged and reported as absent.
func LoadTheme(path string) ([]byte, bool) {
	if path == "" {
		return nil, false
	}
	css, err := os.ReadFile(path)
	if err != nil {
		zap.S().Warnw("theme not found, using default styling", "path", path, "err", err)
		return nil, false
	}
	return css, true
}
