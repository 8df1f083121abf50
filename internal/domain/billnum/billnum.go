// Package billnum parses formal Japanese bill numbers.
//
// A formal number names the submitting diet session, the originating chamber
// or cabinet, and a sequence number, e.g. 第204回国会衆法第6号.
package billnum

import (
	"fmt"
	"regexp"

	"golang.org/x/text/width"

	"github.com/politylink/polisearch/internal/domain"
)

var pattern = regexp.MustCompile(`第([0-9]+)回国会(閣|衆|参)法第([0-9]+)号`)

// Extract returns the first formal bill-number token found in text, or ""
// when the text contains none. Full-width digits are folded first so that
// user-typed ２０４ matches the indexed form.
func Extract(text string) string {
	return pattern.FindString(width.Fold.String(text))
}

// Short converts a formal bill number into its diet-chamber-sequence code:
// 第204回国会衆法第6号 -> 204-衆-6. Input outside the formal pattern is a
// validation error, never a silent empty string.
func Short(billNumber string) (string, error) {
	m := pattern.FindStringSubmatch(width.Fold.String(billNumber))
	if m == nil {
		return "", fmt.Errorf("%w: %q", domain.ErrMalformedBillNumber, billNumber)
	}
	return fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3]), nil
}
