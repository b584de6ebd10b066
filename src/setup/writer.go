package setup

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	StrategySequential = "sequential"
	StrategyConcurrent = "concurrent"

	defaultConcurrency = 4
)

// Writer creates a batch of independent records. The returned slice is in
// the same order as requests. A failure of any request fails the batch.
type Writer interface {
	CreateAll(ctx context.Context, store RecordStore, requests []Request) ([]Created, error)
}

// NewWriter returns the writer for the named strategy.
func NewWriter(strategy string, limit int) (Writer, error) {
	switch strings.ToLower(strategy) {
	case "", StrategySequential:
		return Sequential{}, nil
	case StrategyConcurrent:
		if limit <= 0 {
			limit = defaultConcurrency
		}
		return Concurrent{Limit: limit}, nil
	default:
		return nil, fmt.Errorf("unknown write strategy %q", strategy)
	}
}

// Sequential creates records one at a time in submission order.
type Sequential struct{}

func (Sequential) CreateAll(ctx context.Context, store RecordStore, requests []Request) ([]Created, error) {
	results := make([]Created, 0, len(requests))
	for _, request := range requests {
		created, err := store.Create(ctx, request)
		if err != nil {
			return nil, storeWriteFailed(request.Kind, err)
		}
		results = append(results, created)
	}
	return results, nil
}

// Concurrent creates up to Limit records at once.
type Concurrent struct {
	Limit int
}

func (c Concurrent) CreateAll(ctx context.Context, store RecordStore, requests []Request) ([]Created, error) {
	tokens := make([]string, len(requests))
	for i := range requests {
		if requests[i].Token == "" {
			requests[i].Token = uuid.New().String()
		}
		tokens[i] = requests[i].Token
	}

	g, gctx := errgroup.WithContext(ctx)
	if c.Limit > 0 {
		g.SetLimit(c.Limit)
	}

	arrivals := make(chan Created, len(requests))
	for _, request := range requests {
		request := request
		g.Go(func() error {
			created, err := store.Create(gctx, request)
			if err != nil {
				return storeWriteFailed(request.Kind, err)
			}
			arrivals <- created
			return nil
		})
	}

	err := g.Wait()
	close(arrivals)
	if err != nil {
		return nil, err
	}

	byToken := make(map[string]Created, len(requests))
	for created := range arrivals {
		byToken[created.Token] = created
	}

	results := make([]Created, 0, len(requests))
	for i, token := range tokens {
		created, ok := byToken[token]
		if !ok {
			return nil, storeWriteFailed(requests[i].Kind, fmt.Errorf("store did not echo correlation token %s", token))
		}
		results = append(results, created)
	}
	return results, nil
}
