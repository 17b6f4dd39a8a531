package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

var ErrEmptyBody = errors.New("empty body")

type Parameter map[string]string

func (p Parameter) ToReader() (io.Reader, string, error) {
	return bytes.NewBufferString(p.Encode()), "application/x-www-form-urlencoded", nil
}

func (p Parameter) Encode() string {
	var parameters []string
	for key, value := range p {
		parameters = append(parameters, key+"="+PercentEncode(value))
	}
	sort.Strings(parameters)
	return strings.Join(parameters, "&")
}

func PercentEncode(s string) string {
	s = url.QueryEscape(s)
	return strings.ReplaceAll(s, "+", "%20")
}

type JSON map[string]any

func (j JSON) ToReader() (io.Reader, string, error) {
	b, err := json.Marshal(j)
	if err != nil {
		return nil, "", err
	}

	return bytes.NewBuffer(b), "application/json", nil
}

type Response struct {
	Code    int
	Header  http.Header
	RawBody []byte
}

// Decode unmarshals the JSON body into v. A non-2xx status is an error.
func (r *Response) Decode(v any) error {
	if r.Code < 200 || r.Code >= 300 {
		return fmt.Errorf("invalid status code %d: %s", r.Code, string(r.RawBody))
	}

	if len(r.RawBody) == 0 {
		return ErrEmptyBody
	}

	return json.Unmarshal(r.RawBody, v)
}
