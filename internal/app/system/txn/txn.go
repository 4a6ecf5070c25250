// internal/app/system/txn/txn.go

// Package txn runs multi-document write sequences in a Mongo transaction
// so they commit or roll back as a unit. Standalone servers cannot run
// transactions; in that case the body executes without a scope, which
// keeps local development working while replica-set deployments get the
// real all-or-nothing guarantee.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn inside a session transaction on db's client. The
// transaction aborts, and the original error is returned, if fn fails.
// When the deployment does not support transactions, fn runs directly
// and a warning is logged once per call.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(ctx context.Context) error) error {
	session, err := db.Client().StartSession()
	if err != nil {
		if IsNotSupported(err) {
			logFallback(log, err)
			return fn(ctx)
		}
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		logFallback(log, err)
		return fn(ctx)
	}
	return err
}

func logFallback(log *zap.Logger, err error) {
	if log != nil {
		log.Warn("transactions unsupported by deployment, running without a transaction scope",
			zap.Error(err))
	}
}

// Server error codes that indicate the deployment cannot run
// multi-document transactions (standalone server, old wire version).
var notSupportedCodes = map[int32]bool{
	20:  true, // IllegalOperation: transactions need a replica set
	51:  true, // related illegal operation
	263: true, // OperationNotSupportedInTransaction
}

// IsNotSupported reports whether err means the server rejected the use
// of sessions/transactions entirely, as opposed to a transient abort.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return notSupportedCodes[cmdErr.Code]
	}

	// Driver-side errors do not always carry a code; match on the
	// message shape the server uses.
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "transaction") &&
		(strings.Contains(msg, "replica set") || strings.Contains(msg, "session")) {
		return true
	}
	if strings.Contains(msg, "session") && strings.Contains(msg, "not supported") {
		return true
	}
	if strings.Contains(msg, "illegal operation") && strings.Contains(msg, "transaction") {
		return true
	}
	return false
}
