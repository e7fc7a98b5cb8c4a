package http

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/light-bringer/ledger-service/internal/app/ledger/contracts"
)

var errInvalidFilter = errors.New("invalid report filter")

// parseReportFilter reads account_id, from_date and to_date. Dates are
// RFC3339 and the range is half-open.
func parseReportFilter(q url.Values) (contracts.ReportFilter, error) {
	filter := contracts.ReportFilter{AccountID: strings.TrimSpace(q.Get("account_id"))}

	var err error
	if filter.FromDate, err = parseDate(q, "from_date"); err != nil {
		return contracts.ReportFilter{}, err
	}
	if filter.ToDate, err = parseDate(q, "to_date"); err != nil {
		return contracts.ReportFilter{}, err
	}
	if !filter.FromDate.IsZero() && !filter.ToDate.IsZero() && !filter.FromDate.Before(filter.ToDate) {
		return contracts.ReportFilter{}, fmt.Errorf("%w: from_date must be before to_date", errInvalidFilter)
	}
	return filter, nil
}

func parseDate(q url.Values, name string) (time.Time, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be RFC3339", errInvalidFilter, name)
	}
	return t.UTC(), nil
}
