package errors

// User-friendly error messages
const (
	MsgInvalidEndpoint    = "The requested Omnicasa operation name is not valid."
	MsgInvalidParameters  = "The provided parameters are invalid. Please check your input and try again."
	MsgUpstreamError      = "Omnicasa rejected the request."
	MsgCacheUnavailable   = "The response cache is unavailable right now. Please try again in a few minutes."
	MsgNotFound           = "The requested entry does not exist."
	MsgServiceUnavailable = "We're unable to reach Omnicasa right now. Please try again in a few minutes."
	MsgRateLimited        = "Too many requests. Please wait a moment and try again."
	MsgUnauthorized       = "A valid bearer token is required."
	MsgInternalError      = "Something went wrong on our end. Please try again later."
)
