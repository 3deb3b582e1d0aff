// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client is the HTTP gateway used by the terminal client.

	c := client.New("http://localhost:3318", client.WithIdentityToken(token))
	identity, err := c.Identity(ctx) // nil without a token

Client satisfies pollflow.Gateway and pollflow.ResponseChecker. A 404 on
a poll read becomes pollflow.ErrNotFound; other failures come back as
*APIError carrying the server's message.
*/
package client
