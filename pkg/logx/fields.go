package logx

const (
	FieldAmount          = "amount"
	FieldAppName         = "app-name"
	FieldAppVersion      = "app-version"
	FieldDurationMs      = "duration-ms"
	FieldError           = "error"
	FieldGiftID          = "gift-id"
	FieldGiftStatus      = "gift-status"
	FieldHTTPMethod      = "http-method"
	FieldHTTPRequest     = "http-request"
	FieldHTTPResponse    = "http-response"
	FieldIP              = "ip"
	FieldPostID          = "post-id"
	FieldQueue           = "queue"
	FieldRequestBody     = "request-body"
	FieldRequestID       = "request-id"
	FieldResponseBody    = "response-body"
	FieldResponseHeaders = "response-headers"
	FieldResponseStatus  = "response-status"
	FieldStack           = "stack"
	FieldTaskID          = "task-id"
	FieldTaskType        = "task-type"
	FieldToken           = "token"
	FieldTraceID         = "trace-id"
	FieldURL             = "url"
)
