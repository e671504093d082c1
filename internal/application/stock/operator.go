package stock

import "context"

type operatorKey struct{}

// WithOperator guarda en el contexto el identificador de quien registra los movimientos.
func WithOperator(ctx context.Context, operatorID string) context.Context {
	return context.WithValue(ctx, operatorKey{}, operatorID)
}

// OperatorFrom devuelve el operador del contexto o "" si no hay.
func OperatorFrom(ctx context.Context) string {
	v, _ := ctx.Value(operatorKey{}).(string)
	return v
}
