package observability

import "go.uber.org/zap"

// Field aliases zap.Field so call sites depend on this package only.
type Field = zap.Field

// String constructs a string log field.
func String(key, value string) Field {
	return zap.String(key, value)
}

// Int constructs an int log field.
func Int(key string, value int) Field {
	return zap.Int(key, value)
}

// Bool constructs a bool log field.
func Bool(key string, value bool) Field {
	return zap.Bool(key, value)
}

// Error constructs an error log field.
func Error(err error) Field {
	return zap.Error(err)
}
