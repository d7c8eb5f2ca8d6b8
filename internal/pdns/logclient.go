package pdns

import (
	"bytes"
	"io"
	"net/http"
	"sort"
	"strings"
)

// DebugLogger receives one line per request and per response.
type DebugLogger interface {
	Debug(s string)
}

func makeLogClient(client *http.Client, logger DebugLogger) *http.Client {
	proxied := client.Transport
	if proxied == nil {
		proxied = http.DefaultTransport
	}

	return &http.Client{
		Timeout: client.Timeout,
		Transport: &loggingRoundTripper{
			proxied: proxied,
			logger:  logger,
		},
	}
}

type loggingRoundTripper struct {
	proxied http.RoundTripper
	logger  DebugLogger
}

func (lrt *loggingRoundTripper) RoundTrip(request *http.Request) (
	response *http.Response, err error) {
	lrt.logger.Debug(requestToString(request))

	response, err = lrt.proxied.RoundTrip(request)
	if err != nil {
		return response, err
	}

	lrt.logger.Debug(responseToString(response))

	return response, nil
}

func requestToString(request *http.Request) (s string) {
	s = request.Method + " " + request.URL.String()

	if request.Header != nil {
		s += " | headers: " + headerToString(request.Header)
	}

	if request.Body != nil {
		newBody, bodyString := readAndResetBody(request.Body)
		request.Body = newBody
		s += " | body: " + bodyString
	}

	return s
}

func responseToString(response *http.Response) (s string) {
	s = response.Status

	if response.Header != nil {
		s += " | headers: " + headerToString(response.Header)
	}

	if response.Body != nil {
		newBody, bodyString := readAndResetBody(response.Body)
		response.Body = newBody
		s += " | body: " + bodyString
	}

	return s
}

// headerToString renders headers sorted by name with the API key redacted.
func headerToString(header http.Header) (s string) {
	keys := make([]string, 0, len(header))
	for key := range header {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	headers := make([]string, 0, len(keys))
	for _, key := range keys {
		value := strings.Join(header[key], ",")
		if http.CanonicalHeaderKey(key) == apiKeyHeader {
			value = "[redacted]"
		}
		headers = append(headers, key+": "+value)
	}
	return strings.Join(headers, "; ")
}

func readAndResetBody(body io.ReadCloser) (
	newBody io.ReadCloser, bodyString string) {
	b, err := io.ReadAll(body)
	if err != nil {
		return body, "error reading body: " + err.Error()
	}
	_ = body.Close()
	return io.NopCloser(bytes.NewReader(b)), toSingleLine(string(b))
}

func toSingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
