package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidCandle        ErrorCode = 102
	ErrCodeInvalidOrder         ErrorCode = 104
	ErrCodeInvalidTimeframe     ErrorCode = 105
	ErrCodeInvalidRiskRatio     ErrorCode = 106

	// Market data errors (200-299)
	ErrCodeFetchFailed      ErrorCode = 200
	ErrCodeNoDataFound      ErrorCode = 201
	ErrCodeOutOfOrderCandle ErrorCode = 202
	ErrCodePriceUnavailable ErrorCode = 203
	ErrCodeProviderNotFound ErrorCode = 204
	ErrCodeParseFailed      ErrorCode = 205

	// Indicator errors (300-399)
	ErrCodeIndicatorCalculation ErrorCode = 301

	// Strategy errors (400-499)
	ErrCodeUnknownStrategy     ErrorCode = 400
	ErrCodeStrategyConfigError ErrorCode = 401

	// Trading errors (500-599)
	ErrCodeOrderFailed        ErrorCode = 500
	ErrCodeOrderNotFound      ErrorCode = 501
	ErrCodePollFailed         ErrorCode = 502
	ErrCodeCancelFailed       ErrorCode = 503
	ErrCodeInsufficientFunds  ErrorCode = 504
	ErrCodeInsufficientShares ErrorCode = 505

	// Agent errors (600-699)
	ErrCodeUnexpectedFill ErrorCode = 600
	ErrCodeNoAgents       ErrorCode = 602

	// Storage errors (700-799)
	ErrCodeStoreOpenFailed  ErrorCode = 700
	ErrCodeStoreWriteFailed ErrorCode = 701
	ErrCodeStoreQueryFailed ErrorCode = 702
)
