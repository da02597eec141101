// Package mongosource adapts a MongoDB collection query to sync.Source.
//
// Fetch runs an ordered Find; Watch opens a change stream on the collection
// and signals on every event. The driver resumes interrupted change streams
// itself, so this package does not implement retry.
package mongosource

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Direction orders a query ascending or descending on its order field.
type Direction int

const (
	Ascending  Direction = 1
	Descending Direction = -1
)

// Query is a sync.Source backed by one MongoDB collection, ordered by a
// single declared field. Ties are broken by the server's default order; that
// non-determinism is accepted, not part of the contract.
type Query[T any] struct {
	c          *mongo.Collection
	orderField string
	direction  Direction
	limit      int64
	logger     *zap.Logger
}

// New creates a Query over the collection, ordered by orderField in the given
// direction. A limit of 0 means no limit.
func New[T any](c *mongo.Collection, orderField string, direction Direction, limit int64, logger *zap.Logger) *Query[T] {
	return &Query[T]{
		c:          c,
		orderField: orderField,
		direction:  direction,
		limit:      limit,
		logger:     logger,
	}
}

// Fetch returns the query's current result set in server order.
func (q *Query[T]) Fetch(ctx context.Context) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: q.orderField, Value: int(q.direction)}})
	if q.limit > 0 {
		opts.SetLimit(q.limit)
	}

	cursor, err := q.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []T
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Watch opens a change stream on the collection and returns a channel that
// signals on every insert, update, replace, or delete. The channel closes
// when ctx is cancelled or the stream fails.
func (q *Query[T]) Watch(ctx context.Context) (<-chan struct{}, error) {
	stream, err := q.c.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, err
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			// Conflate: one pending signal is enough, the consumer
			// re-fetches the whole result set anyway.
			select {
			case changes <- struct{}{}:
			default:
			}
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			q.logger.Warn("change stream ended",
				zap.String("collection", q.c.Name()),
				zap.Error(err))
		}
	}()

	return changes, nil
}
