package utils

import (
	"context"

	"bitbucket.org/hoaworks/portal_backend/appctx"
)

var (
	ContextKeyAssociationId = appctx.ContextKeyAssociationId
	ContextKeyCorrelationId = appctx.ContextKeyCorrelationId
)

func GetAssociationIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyAssociationId)
}

func GetCorrelationIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyCorrelationId)
}

func SetAssociationIdInContext(ctx context.Context, associationId string) context.Context {
	return appctx.Set(ctx, ContextKeyAssociationId, associationId)
}

func SetCorrelationIdInContext(ctx context.Context, correlationId string) context.Context {
	return appctx.Set(ctx, ContextKeyCorrelationId, correlationId)
}
