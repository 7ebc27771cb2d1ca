package middlewares

import (
	"context"
	"time"

	"github.com/gaswhisperer/gaswhisperer/util/rpc/handlers"
	"github.com/openweb3/go-rpc-provider"
	"github.com/sirupsen/logrus"
)

func LogBatch(next rpc.HandleBatchFunc) rpc.HandleBatchFunc {
	return func(ctx context.Context, msgs []*rpc.JsonRpcMessage) []*rpc.JsonRpcMessage {
		if !logrus.IsLevelEnabled(logrus.DebugLevel) {
			return next(ctx, msgs)
		}

		reqID, _ := handlers.GetRequestIDFromContext(ctx)
		logger := logrus.WithField("requestId", reqID)
		logger.WithField("batch", len(msgs)).Debug("Batch RPC enter")

		start := time.Now()
		resp := next(ctx, msgs)

		logger.WithFields(logrus.Fields{
			"batch":   len(resp),
			"elapsed": time.Since(start),
		}).Debug("Batch RPC leave")

		return resp
	}
}

func Log(next rpc.HandleCallMsgFunc) rpc.HandleCallMsgFunc {
	return func(ctx context.Context, msg *rpc.JsonRpcMessage) *rpc.JsonRpcMessage {
		if !logrus.IsLevelEnabled(logrus.DebugLevel) {
			return next(ctx, msg)
		}

		reqID, _ := handlers.GetRequestIDFromContext(ctx)
		logger := logrus.WithFields(logrus.Fields{
			"requestId": reqID,
			"method":    msg.Method,
			"params":    string(msg.Params),
		})
		logger.Debug("RPC enter")

		start := time.Now()
		resp := next(ctx, msg)
		logger = logger.WithField("elapsed", time.Since(start))

		if resp.Error != nil {
			logger = logger.WithField(logrus.ErrorKey, resp.Error.Error())
		} else if logrus.IsLevelEnabled(logrus.TraceLevel) {
			logger = logger.WithField("output", string(resp.Result))
		}

		logger.Debug("RPC leave")

		return resp
	}
}
