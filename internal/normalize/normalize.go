// Package normalize reconstructs a plain-text receipt document from the raw
// scan-API extraction result, for consumption by the model prompt.
package normalize

import (
	"regexp"
	"strings"

	"github.com/gotvi/gotvi-backend/internal/common"
	"github.com/gotvi/gotvi-backend/internal/entity"
)

// TotalLinePrefix is the literal marker for the appended total line.
const TotalLinePrefix = "ОБЩА СУМА "

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reTabs       = regexp.MustCompile(`\t+`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
)

// Receipt joins the scanned line texts with newlines, in extraction order,
// and appends the total line. Entries whose text is empty after trimming are
// dropped. The extraction order is preserved as-is: it is not semantic order,
// and the downstream model is expected to read full lines.
func Receipt(scan entity.ScanResult) (string, error) {
	if scan.Amounts == nil {
		return "", common.NewAppError("TRANSFORM_ERROR", "scan result has no amounts", common.ErrTransform)
	}

	lines := make([]string, 0, len(scan.Amounts)+1)
	for _, e := range scan.Amounts {
		line := CleanLine(e.Text)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	lines = append(lines, TotalLinePrefix+scan.TotalAmount.Text)
	return strings.Join(lines, "\n"), nil
}

// CleanLine collapses noisy whitespace inside a single scanned line.
// Conservative: folds CRLF, squeezes tabs and runs of spaces, trims the ends.
func CleanLine(s string) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, " ")
	s = reTabs.ReplaceAllString(s, " ")
	s = reMultiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
