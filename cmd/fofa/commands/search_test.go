package commands_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fivetwenty-io/fofa-cli/cmd/fofa/commands"
	"github.com/fivetwenty-io/fofa-cli/internal/constants"
	"github.com/fivetwenty-io/fofa-cli/pkg/fofa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchBody = `{"error":false,"mode":"extended","query":"app=\"nginx\"","page":1,"size":2,"total":1234,` +
	`"next":"cursor-2","results":[["1.1.1.1","80"],["2.2.2.2","443"]]}`

func newSearchClient(t *testing.T) *fakeClient {
	t.Helper()

	var result fofa.SearchResponse
	require.NoError(t, json.Unmarshal([]byte(searchBody), &result))

	result.Raw = []byte(searchBody)

	return &fakeClient{search: &result, next: &result}
}

type fakePublisher struct {
	rows   [][]string
	fields []string
	closed bool
}

func (p *fakePublisher) PublishRows(_ string, _ string, fields []string, rows [][]string) (int, error) {
	p.fields = fields
	p.rows = rows

	return len(rows), nil
}

func (p *fakePublisher) Close() error {
	p.closed = true

	return nil
}

//nolint:paralleltest // replaces package-level factories
func TestSearchCommand_Table(t *testing.T) {
	client := newSearchClient(t)
	useClient(t, client, constants.FormatTable)

	out, err := run(t, commands.NewSearchCommand(), `app="nginx"`, "--fields", "ip,port", "--size", "2", "--full")
	require.NoError(t, err)

	assert.Contains(t, out, `Query: app="nginx"`)
	assert.Contains(t, out, "Total: 1234, Page: 1, Returned: 2")
	assert.Contains(t, out, "1.1.1.1")
	assert.Contains(t, out, "443")
	assert.Contains(t, out, "Next cursor: cursor-2")

	require.Len(t, client.searches, 1)
	call := client.searches[0]
	assert.Equal(t, `app="nginx"`, call.query)
	assert.Equal(t, 1, call.page)
	assert.Equal(t, 2, call.size)
	assert.Equal(t, []string{"ip", "port"}, call.opts.Fields)
	assert.True(t, call.opts.Full)
}

//nolint:paralleltest // replaces package-level factories
func TestSearchCommand_JSONIsRawBody(t *testing.T) {
	useClient(t, newSearchClient(t), constants.FormatJSON)

	out, err := run(t, commands.NewSearchCommand(), `app="nginx"`)
	require.NoError(t, err)
	assert.JSONEq(t, searchBody, out)
}

//nolint:paralleltest // replaces package-level factories
func TestSearchCommand_YAML(t *testing.T) {
	useClient(t, newSearchClient(t), constants.FormatYAML)

	out, err := run(t, commands.NewSearchCommand(), `app="nginx"`)
	require.NoError(t, err)
	assert.Contains(t, out, "total: 1234")
	assert.Contains(t, out, "next: cursor-2")
	assert.NotContains(t, out, "raw")
}

//nolint:paralleltest // replaces package-level factories
func TestSearchCommand_Validation(t *testing.T) {
	client := newSearchClient(t)
	useClient(t, client, constants.FormatTable)

	_, err := run(t, commands.NewSearchCommand(), "port=80", "--size", "0")
	require.ErrorIs(t, err, constants.ErrInvalidSize)

	_, err = run(t, commands.NewSearchCommand(), "port=80", "--page", "0")
	require.ErrorIs(t, err, constants.ErrInvalidPage)

	_, err = run(t, commands.NewSearchCommand(), "port=80", "--csv-file", "out.csv")
	require.ErrorIs(t, err, constants.ErrCSVNeedsFields)

	_, err = run(t, commands.NewSearchCommand(), "")
	require.ErrorIs(t, err, constants.ErrQueryRequired)

	assert.Empty(t, client.searches)
}

//nolint:paralleltest // replaces package-level factories
func TestSearchCommand_UnknownOutput(t *testing.T) {
	useClient(t, newSearchClient(t), "xml")

	_, err := run(t, commands.NewSearchCommand(), "port=80")
	require.ErrorIs(t, err, constants.ErrUnknownOutput)
}

//nolint:paralleltest // replaces package-level factories
func TestSearchCommand_ErrorKeepsKind(t *testing.T) {
	useClient(t, &fakeClient{err: fofa.NewApplicationError(200, "bad query")}, constants.FormatTable)

	_, err := run(t, commands.NewSearchCommand(), "???")
	require.Error(t, err)
	assert.True(t, fofa.IsApplicationError(err))
	assert.Equal(t, "failed to search: bad query", err.Error())
}

//nolint:paralleltest // replaces package-level factories
func TestSearchCommand_FileSinks(t *testing.T) {
	useClient(t, newSearchClient(t), constants.FormatTable)

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "result.json")
	csvPath := filepath.Join(dir, "result.csv")

	out, err := run(t, commands.NewSearchCommand(), "port=80",
		"--fields", "ip,port",
		"--json-file", jsonPath,
		"--csv-file", csvPath,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved: "+jsonPath)
	assert.Contains(t, out, "Saved: "+csvPath)

	raw, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.JSONEq(t, searchBody, string(raw))

	csvData, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, "ip,port\n1.1.1.1,80\n2.2.2.2,443\n", string(csvData))
}

//nolint:paralleltest // replaces package-level factories
func TestSearchCommand_Publish(t *testing.T) {
	useClient(t, newSearchClient(t), constants.FormatTable)

	publisher := &fakePublisher{}
	previous := commands.PublisherFactory

	var gotURL, gotSubject string

	commands.PublisherFactory = func(url, subject string) (commands.Publisher, error) {
		gotURL, gotSubject = url, subject

		return publisher, nil
	}

	t.Cleanup(func() { commands.PublisherFactory = previous })

	out, err := run(t, commands.NewSearchCommand(), "port=80", "--fields", "ip,port", "--publish", "--subject", "assets.web")
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultNATSURL, gotURL)
	assert.Equal(t, "assets.web", gotSubject)
	assert.Equal(t, [][]string{{"1.1.1.1", "80"}, {"2.2.2.2", "443"}}, publisher.rows)
	assert.True(t, publisher.closed)
	assert.Contains(t, out, "Published 2 results to assets.web")
}

//nolint:paralleltest // replaces package-level factories
func TestSearchCommand_PublishConnectFailure(t *testing.T) {
	useClient(t, newSearchClient(t), constants.FormatTable)

	previous := commands.PublisherFactory
	commands.PublisherFactory = func(string, string) (commands.Publisher, error) {
		return nil, errors.New("nats: no servers available for connection")
	}

	t.Cleanup(func() { commands.PublisherFactory = previous })

	_, err := run(t, commands.NewSearchCommand(), "port=80", "--publish")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no servers available")
}

//nolint:paralleltest // replaces package-level factories
func TestNextCommand(t *testing.T) {
	client := newSearchClient(t)
	useClient(t, client, constants.FormatTable)

	out, err := run(t, commands.NewNextCommand(), "cursor-1", "--size", "50")
	require.NoError(t, err)

	assert.Equal(t, "cursor-1", client.nextCursor)
	assert.Contains(t, out, "Cursor: cursor-1")
	assert.Contains(t, out, "Next cursor: cursor-2")
}

//nolint:paralleltest // replaces package-level factories
func TestCountCommand(t *testing.T) {
	client := newSearchClient(t)
	useClient(t, client, constants.FormatJSON)

	out, err := run(t, commands.NewCountCommand(), `app="nginx"`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"query": "app=\"nginx\"", "total": 1234}`, out)

	require.Len(t, client.searches, 1)
	assert.Equal(t, 1, client.searches[0].size)
}
