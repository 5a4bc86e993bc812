package client

import (
	"context"
	"net/url"

	"github.com/fivetwenty-io/fofa-cli/internal/constants"
	"github.com/fivetwenty-io/fofa-cli/pkg/fofa"
)

// Host implements fofa.HostClient.Host.
func (c *Client) Host(ctx context.Context, host string) (*fofa.HostResponse, error) {
	var result fofa.HostResponse

	raw, err := c.get(ctx, constants.PathHost+url.PathEscape(host), nil, &result)
	if err != nil {
		return nil, err
	}

	result.Raw = raw

	return &result, nil
}

// Hosts implements fofa.HostClient.Hosts.
func (c *Client) Hosts(ctx context.Context, hosts []string) (*fofa.HostsResponse, error) {
	c.logDebug("batch host lookup", map[string]interface{}{"hosts": len(hosts)})

	params := fofa.Params{{Key: fofa.ParamHosts, Value: fofa.JoinHosts(hosts)}}

	var result fofa.HostsResponse

	raw, err := c.get(ctx, constants.PathHosts, params, &result)
	if err != nil {
		return nil, err
	}

	result.Raw = raw

	return &result, nil
}
