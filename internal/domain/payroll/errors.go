package payroll

import "errors"

var ErrMissingPayRate = errors.New("no pay rate configured")
