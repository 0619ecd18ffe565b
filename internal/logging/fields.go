package logging

// Common structured log field keys.
const (
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldRoute      = "route"
	FieldStatusCode = "status_code"
	FieldDurationMS = "duration_ms"
	FieldClientIP   = "client_ip"
	FieldGameID     = "game_id"
	FieldRatingID   = "rating_id"
	FieldDriver     = "driver"
)
