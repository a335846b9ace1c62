package constants

const (
	ROLE_ADMIN   = "ADMIN"
	ROLE_CASHIER = "CASHIER"
)

const (
	MISSING_LOGIN_INPUT        = "MISSING_LOGIN_INPUT"
	INVALID_USERNAME           = "INVALID_USERNAME"
	INVALID_PASSWORD           = "INVALID_PASSWORD"
	ACCOUNT_NOT_ACTIVE         = "ACCOUNT_NOT_ACTIVE"
	ERROR_INTERNAL_ERROR       = "ERROR_INTERNAL_ERROR"
	NOT_ADMIN                  = "NOT_ADMIN"
	ERROR_INPUT                = "ERROR_INPUT"
	DATA_INPUT_IS_NOT_NUMBER   = "DATA_INPUT_IS_NOT_NUMBER"
	ERROR_PARSE_DATA_TO_LOCALS = "ERROR_PARSE_DATA_TO_LOCALS"
	QR_ID_NOT_FOUND            = "QR_ID_NOT_FOUND"
	CAMPUS_CUTOFF_CLOSED       = "CAMPUS_CUTOFF_CLOSED"
	ACTIVE_TRANSACTION_EXISTS  = "ACTIVE_TRANSACTION_EXISTS"
)

// UUID cố định cho quick queue tại quầy (seed sẵn trong database.SeedData)
const (
	WalkInEnrolleeQrId = "31d84936-01cf-437d-931b-52ee5cd64309"
	WalkInGuestQrId    = "e28ad113-cbad-45af-be85-582e422bd4b4"
)
