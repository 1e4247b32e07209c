package constant

const (
	ContextKeyRequestID = "requestid"

	RequestIDHeader = "X-Daylog-Request-ID"

	// DateFormat is the wire format for calendar dates in paths and cache keys.
	DateFormat = "2006-01-02"
)
