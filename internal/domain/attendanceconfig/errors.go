package attendanceconfig

import "errors"

var ErrConfigNotFound = errors.New("attendance config not found")
