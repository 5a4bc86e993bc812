package client

import (
	"context"
	"strings"

	"github.com/fivetwenty-io/fofa-cli/internal/constants"
	"github.com/fivetwenty-io/fofa-cli/pkg/fofa"
)

// Search implements fofa.SearchClient.Search.
func (c *Client) Search(ctx context.Context, query string, page, size int, opts *fofa.SearchOptions) (*fofa.SearchResponse, error) {
	c.warnClamp(size)

	params := fofa.SearchParams(query, page, size, searchExtras(opts))

	var result fofa.SearchResponse

	raw, err := c.get(ctx, constants.PathSearch, params, &result)
	if err != nil {
		return nil, err
	}

	result.Raw = raw

	return &result, nil
}

// Next implements fofa.SearchClient.Next.
func (c *Client) Next(ctx context.Context, cursor string, size int, query string) (*fofa.SearchResponse, error) {
	c.warnClamp(size)

	var result fofa.SearchResponse

	raw, err := c.get(ctx, constants.PathNext, fofa.NextParams(cursor, size, query), &result)
	if err != nil {
		return nil, err
	}

	result.Raw = raw

	return &result, nil
}

// Count implements fofa.SearchClient.Count.
func (c *Client) Count(ctx context.Context, query string) (int, error) {
	result, err := c.Search(ctx, query, constants.DefaultPage, constants.CountPageSize, nil)
	if err != nil {
		return 0, err
	}

	return int(result.Total), nil
}

// Stats implements fofa.SearchClient.Stats.
func (c *Client) Stats(ctx context.Context, query, field string) (*fofa.StatsResponse, error) {
	var result fofa.StatsResponse

	raw, err := c.get(ctx, constants.PathStats, fofa.StatsParams(query, field), &result)
	if err != nil {
		return nil, err
	}

	result.Raw = raw

	return &result, nil
}

func searchExtras(opts *fofa.SearchOptions) fofa.Params {
	var extra fofa.Params
	if opts == nil {
		return extra
	}

	if len(opts.Fields) > 0 {
		extra = extra.With(fofa.ParamFields, strings.Join(opts.Fields, ","))
	}

	if opts.Full {
		extra = extra.With(fofa.ParamFull, "true")
	}

	return extra
}

func (c *Client) warnClamp(size int) {
	if size > fofa.MaxPageSize && c.logger != nil {
		c.logger.Warn(clampNotice(size), sizeField(size))
	}
}
