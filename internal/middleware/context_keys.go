package middleware

import "context"

// actingUserKey is the key used to store the acting customer's username in
// the request context.
const actingUserKey = contextKey("actingUser")

// GetActingUserFromCtx retrieves the acting username from the context.
// It returns the username and a boolean indicating if it was found.
func GetActingUserFromCtx(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(actingUserKey).(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}

func withActingUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, actingUserKey, username)
}
