package wire

import (
	"sort"

	"github.com/sagudev/fp-bindgen/errors"
)

// HTTPRequest is the canonical request shape behind the http
// compatibility flag. It deliberately mirrors no particular target's
// native request type; generators map it to this shim on both sides.
type HTTPRequest struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// HTTPResponse is the canonical response shape behind the http
// compatibility flag.
type HTTPResponse struct {
	Status  uint16
	Headers map[string]string
	Body    []byte
}

// WriteHTTPRequest encodes a request as a mapping keyed by field name.
func WriteHTTPRequest(w *Writer, req HTTPRequest) error {
	w.WriteMapHeader(4)
	w.WriteString("method")
	w.WriteString(req.Method)
	w.WriteString("url")
	w.WriteString(req.URL)
	w.WriteString("headers")
	writeHeaders(w, req.Headers)
	w.WriteString("body")
	w.WriteBytes(req.Body)
	return nil
}

// ReadHTTPRequest decodes a request mapping.
func ReadHTTPRequest(r *Reader) (HTTPRequest, error) {
	var req HTTPRequest
	n, err := r.ReadMapHeader()
	if err != nil {
		return req, err
	}
	for i := 0; i < n; i++ {
		key, err := r.ReadString()
		if err != nil {
			return req, err
		}
		switch key {
		case "method":
			req.Method, err = r.ReadString()
		case "url":
			req.URL, err = r.ReadString()
		case "headers":
			req.Headers, err = readHeaders(r)
		case "body":
			req.Body, err = r.ReadBytes()
		default:
			err = r.Skip()
		}
		if err != nil {
			return req, err
		}
	}
	if req.Method == "" {
		return req, errors.FieldMissing(errors.PhaseDecode, []string{"HTTPRequest"}, "method")
	}
	return req, nil
}

// WriteHTTPResponse encodes a response as a mapping keyed by field name.
func WriteHTTPResponse(w *Writer, resp HTTPResponse) error {
	w.WriteMapHeader(3)
	w.WriteString("status")
	w.WriteU16(resp.Status)
	w.WriteString("headers")
	writeHeaders(w, resp.Headers)
	w.WriteString("body")
	w.WriteBytes(resp.Body)
	return nil
}

// ReadHTTPResponse decodes a response mapping.
func ReadHTTPResponse(r *Reader) (HTTPResponse, error) {
	var resp HTTPResponse
	n, err := r.ReadMapHeader()
	if err != nil {
		return resp, err
	}
	for i := 0; i < n; i++ {
		key, err := r.ReadString()
		if err != nil {
			return resp, err
		}
		switch key {
		case "status":
			resp.Status, err = r.ReadU16()
		case "headers":
			resp.Headers, err = readHeaders(r)
		case "body":
			resp.Body, err = r.ReadBytes()
		default:
			err = r.Skip()
		}
		if err != nil {
			return resp, err
		}
	}
	return resp, nil
}

func writeHeaders(w *Writer, headers map[string]string) {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	w.WriteMapHeader(len(keys))
	for _, k := range keys {
		w.WriteString(k)
		w.WriteString(headers[k])
	}
}

func readHeaders(r *Reader) (map[string]string, error) {
	n, err := r.ReadMapHeader()
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, n)
	for i := 0; i < n; i++ {
		k, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		v, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}
