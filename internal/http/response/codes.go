package response

// Business status codes carried in the response envelope. They track HTTP
// status numbers so API consumers handle one vocabulary.
const (
	CodeOK              = 0
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeNotFound        = 404
	CodeTooManyRequests = 429
	CodeInternal        = 500
)
