// Package fofa provides types, interfaces, and helpers for working with the
// FOFA host and asset search API.
//
// # Overview
//
// The fofa package defines the wire parameter builder (Params), the response
// schemas for each endpoint, the error taxonomy, and the Client interface. A
// concrete client is provided by the fofaclient package, which wires
// credentials, transport, and logging.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/fofa-cli/pkg/fofaclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := fofaclient.NewFromEnv()
//	  if err != nil { log.Fatal(err) }
//
//	  res, err := cli.Search(ctx, `app="nginx"`, 1, 100, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = res.Total
//	}
//
// # Pagination
//
// Two mechanisms exist and are kept apart. Search takes an explicit page and
// size; windows may shift if the index changes between calls. Next takes the
// cursor returned in SearchResponse.Next and walks forward only.
//
// # Errors
//
// Every failure is an *Error carrying one ErrorKind: configuration, transport,
// protocol or application. Use KindOf or the Is* helpers rather than matching
// on messages.
package fofa
