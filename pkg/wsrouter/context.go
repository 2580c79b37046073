package wsrouter

import "context"

type contextKey int

const (
	messageTypeCtxKey contextKey = iota
)

func GetMessageTypeFromCtx(ctx context.Context) string {
	messageType, ok := ctx.Value(messageTypeCtxKey).(string)
	if !ok {
		return ""
	}

	return messageType
}
