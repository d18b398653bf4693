package inventory

import "errors"

var (
	errInvalidExpiration = errors.New("expiration için geçerli değerler: expired, shortExpired, expiredAndShortExpired")
	errInvalidLowQty     = errors.New("low_qty için geçerli değerler: veryLow, low")
)
