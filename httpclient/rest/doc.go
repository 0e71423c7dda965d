// Package rest provides a JSON-focused REST client built on httpclient.
//
// It sets JSON content headers by default and decodes response bodies into
// a caller-chosen type. Backends whose response shape varies decode into
// json.RawMessage and extract from it themselves:
//
//	client, _ := rest.New(httpclient.Config{Timeout: 30 * time.Second})
//	resp, err := rest.Post[json.RawMessage](ctx, client, endpoint, payload,
//	    rest.WithAuth(httpclient.BearerAuth(key)))
package rest
