package leave

import "errors"

var ErrMonthlyLeaveLimit = errors.New("monthly leave request limit reached")
