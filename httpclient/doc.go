// Package httpclient is the HTTP transport shared by the provider backends.
//
// It handles base URLs, default headers, authentication, JSON and multipart
// bodies, status classification, and optional retry with exponential
// backoff. Streaming requests hand back the open body so a caller can feed
// it to an SSE or NDJSON reader.
//
//	c, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.openai.com/v1",
//	    Auth:    httpclient.BearerAuth(key),
//	})
//
//	var out chatResponse
//	err = c.DoJSON(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    Path:   "/chat/completions",
//	    Body:   req,
//	}, &out)
package httpclient
