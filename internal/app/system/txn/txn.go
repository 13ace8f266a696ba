// Package txn runs multi-document write sequences inside a Mongo
// transaction when the server supports them, with a sequential fallback
// for standalone servers.
//
// The team write paths update two or three documents together (team +
// user on create/join/leave, team + project on add/remove project).
// Against a replica set those run atomically; against a standalone dev
// server transactions are unsupported, so the same function runs
// sequentially and keeps the original best-effort semantics.
package txn

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// WithTxn executes fn inside a session transaction. If the deployment
// does not support transactions, fn is re-run outside a session.
func WithTxn(ctx context.Context, client *mongo.Client, fn func(ctx context.Context) error) error {
	session, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			return fn(ctx)
		}
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		return fn(ctx)
	}
	return err
}

// IsNotSupported reports whether err indicates the server cannot run
// multi-document transactions (standalone server, no replica set).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}
	var cmdErr mongo.CommandError
	if ok := asCommandError(err, &cmdErr); ok {
		// 20 IllegalOperation, 51 and 263 transaction-number errors
		switch cmdErr.Code {
		case 20, 51, 263:
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "transaction") && strings.Contains(msg, "replica set") {
		return true
	}
	if strings.Contains(msg, "session") && strings.Contains(msg, "not supported") {
		return true
	}
	return false
}

func asCommandError(err error, target *mongo.CommandError) bool {
	if ce, ok := err.(mongo.CommandError); ok {
		*target = ce
		return true
	}
	return false
}
