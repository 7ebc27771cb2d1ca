package middlewares

import (
	"context"
	"errors"
	"runtime/debug"

	"github.com/gaswhisperer/gaswhisperer/util/rpc/handlers"
	"github.com/openweb3/go-rpc-provider"
	"github.com/sirupsen/logrus"
)

var (
	errMiddlewareCrashed = errors.New("RPC middleware crashed")
)

func Recover(next rpc.HandleCallMsgFunc) rpc.HandleCallMsgFunc {
	return func(ctx context.Context, msg *rpc.JsonRpcMessage) (resp *rpc.JsonRpcMessage) {
		defer func() {
			if err := recover(); err != nil {
				reqID, _ := handlers.GetRequestIDFromContext(ctx)
				ipAddr, _ := handlers.GetIPAddressFromContext(ctx)

				logrus.WithFields(logrus.Fields{
					"requestId": reqID,
					"ipAddress": ipAddr,
					"inputMsg":  newHumanReadableRpcMessage(msg),
					"panicErr":  err,
					"stack":     string(debug.Stack()),
				}).Error("RPC middleware panic recovered")

				// rewrite error response
				resp = msg.ErrorResponse(errMiddlewareCrashed)
			}
		}()

		return next(ctx, msg)
	}
}

type humanReadableRpcMessage struct {
	Version string
	ID      string
	Method  string
	Params  string
}

func newHumanReadableRpcMessage(msg *rpc.JsonRpcMessage) *humanReadableRpcMessage {
	return &humanReadableRpcMessage{
		ID:      string(msg.ID),
		Version: msg.Version,
		Method:  msg.Method,
		Params:  string(msg.Params),
	}
}
