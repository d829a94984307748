// Package httpclient builds the *http.Client shared by the upstream
// provider SDKs. It owns the transport concerns: TLS towards gateways,
// connection reuse, and a request log that records method, host, path,
// status and duration. Headers and query strings are never logged, since
// they carry API keys.
//
//	hc, err := httpclient.New(httpclient.Config{
//	    TLS: httpclient.TLSConfig{CAFile: "/etc/ssl/gateway-ca.pem"},
//	}, log)
//	p, err := openai.NewWithHTTPClient(cfg, hc)
package httpclient
