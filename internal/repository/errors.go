package repository

import "errors"

// 該当行なしを統一
var ErrNotFound = errors.New("not found")
