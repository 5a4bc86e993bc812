package commands_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fivetwenty-io/fofa-cli/cmd/fofa/commands"
	"github.com/fivetwenty-io/fofa-cli/pkg/fofa"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

type searchCall struct {
	query string
	page  int
	size  int
	opts  *fofa.SearchOptions
}

// fakeClient serves canned responses and records search calls.
type fakeClient struct {
	search   *fofa.SearchResponse
	next     *fofa.SearchResponse
	stats    *fofa.StatsResponse
	host     *fofa.HostResponse
	hosts    *fofa.HostsResponse
	info     *fofa.AccountInfo
	products *fofa.ProductsResponse
	apps     *fofa.AppsResponse
	err      error

	// searchFailAt makes the nth search (1-based) return err and the others succeed.
	searchFailAt int

	searches   []searchCall
	nextCursor string
	hostsArgs  []string
}

var _ fofa.Client = (*fakeClient)(nil)

func (f *fakeClient) Search(_ context.Context, query string, page, size int, opts *fofa.SearchOptions) (*fofa.SearchResponse, error) {
	f.searches = append(f.searches, searchCall{query: query, page: page, size: size, opts: opts})

	if f.searchFailAt > 0 {
		if len(f.searches) == f.searchFailAt {
			return nil, f.err
		}

		return f.search, nil
	}

	return f.search, f.err
}

func (f *fakeClient) Next(_ context.Context, cursor string, _ int, _ string) (*fofa.SearchResponse, error) {
	f.nextCursor = cursor

	return f.next, f.err
}

func (f *fakeClient) Count(ctx context.Context, query string) (int, error) {
	result, err := f.Search(ctx, query, 1, 1, nil)
	if err != nil {
		return 0, err
	}

	return int(result.Total), nil
}

func (f *fakeClient) Stats(context.Context, string, string) (*fofa.StatsResponse, error) {
	return f.stats, f.err
}

func (f *fakeClient) Host(context.Context, string) (*fofa.HostResponse, error) {
	return f.host, f.err
}

func (f *fakeClient) Hosts(_ context.Context, hosts []string) (*fofa.HostsResponse, error) {
	f.hostsArgs = hosts

	return f.hosts, f.err
}

func (f *fakeClient) AccountInfo(context.Context) (*fofa.AccountInfo, error) {
	return f.info, f.err
}

func (f *fakeClient) Products(context.Context) (*fofa.ProductsResponse, error) {
	return f.products, f.err
}

func (f *fakeClient) Apps(context.Context) (*fofa.AppsResponse, error) {
	return f.apps, f.err
}

// useClient installs client as the command client factory and resets viper
// when the test ends. Tests using it cannot run in parallel.
func useClient(t *testing.T, client fofa.Client, output string) {
	t.Helper()

	previous := commands.ClientFactory
	commands.ClientFactory = func() (fofa.Client, error) {
		return client, nil
	}

	viper.Reset()
	viper.Set(commands.KeyOutput, output)

	t.Cleanup(func() {
		commands.ClientFactory = previous

		viper.Reset()
	})
}

// run executes cmd with args and returns what it wrote to stdout.
func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()

	return out.String(), err
}
