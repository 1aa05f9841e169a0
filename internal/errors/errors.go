package errors

import "errors"

var ErrGiftNotFound = errors.New("gift not found")
var ErrGiftUnavailable = errors.New("gift is no longer available")
var ErrQuantityExceeded = errors.New("requested quantity exceeds remaining amount")
var ErrSettingsNotFound = errors.New("event settings not found")
var ErrConfirmationEmpty = errors.New("confirmation contains no guest names")
