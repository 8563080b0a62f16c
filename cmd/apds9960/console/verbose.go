package console

import "context"

type verboseKey struct{}

func SetVerbose(parent context.Context, value bool) context.Context {
	return context.WithValue(parent, verboseKey{}, value)
}

func IsVerbose(ctx context.Context) bool {
	val, ok := ctx.Value(verboseKey{}).(bool)
	return ok && val
}
