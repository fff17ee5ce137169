package constants

const (
	// ContextKeyUserID is the gin context and session key for the
	// authenticated user's id.
	ContextKeyUserID = "user_id"

	// SessionCookieName names the session cookie.
	SessionCookieName = "roadmap_session"

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8

	// Pagination bounds for list endpoints.
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// MaxAIGeneratedItems caps one AI drafting call.
	MaxAIGeneratedItems = 20
)
