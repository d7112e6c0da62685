package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// executeAtomically runs fn against a branch of the current multistore. The
// branch is written back, and the returned events emitted, only if fn
// succeeds; on error nothing fn did is visible to the caller.
func (k Keeper) executeAtomically(ctx context.Context, fn func(cacheCtx sdk.Context) (sdk.Events, error)) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, writeFn := sdkCtx.CacheContext()

	events, err := fn(cacheCtx)
	if err != nil {
		return err
	}

	writeFn()
	sdkCtx.EventManager().EmitEvents(events)
	return nil
}

// startSpan opens a tracing span for a dex operation. The returned context
// carries the span, so store branches, ledger transfers and hooks run under it.
func (k Keeper) startSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (sdk.Context, trace.Span) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	spanCtx, span := k.tracer.Start(sdkCtx.Context(), "dex."+op, trace.WithAttributes(attrs...))
	return sdkCtx.WithContext(spanCtx), span
}

// endSpan closes span, recording err and counting the failure when non-nil.
func (k Keeper) endSpan(span trace.Span, op string, err error) {
	if err != nil {
		codespace, code, _ := errorsmod.ABCIInfo(err, false)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		k.metrics.recordFailure(op, codespace, code)
	}
	span.End()
}
