package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lyricroom/backend/pkg/errorx"
	"github.com/mitchellh/mapstructure"
)

// bind fills v from the json body, then from the query string and the path
// values. Path values win over the others.
func bind(req *http.Request, v any) error {
	if hasJSONBody(req) {
		if err := json.NewDecoder(req.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
			return errorx.New(errorx.BadRequest, "Invalid body: %v", err)
		}
	}

	params := map[string]any{}
	for key, values := range req.URL.Query() {
		if len(values) == 1 {
			params[key] = values[0]
		} else {
			params[key] = values
		}
	}

	for _, name := range pathNames(req.Pattern) {
		params[name] = req.PathValue(name)
	}

	if len(params) == 0 {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339),
		Result:           v,
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(params); err != nil {
		return errorx.New(errorx.BadRequest, "Invalid parameters: %v", err)
	}

	return nil
}

func hasJSONBody(req *http.Request) bool {
	if req.Body == nil || req.ContentLength == 0 {
		return false
	}

	contentType := req.Header.Get("Content-Type")
	return contentType == "" || strings.HasPrefix(contentType, "application/json")
}

// pathNames returns the wildcard names of a ServeMux pattern such as
// "GET /posts/{id}".
func pathNames(pattern string) []string {
	names := []string{}
	for {
		start := strings.IndexByte(pattern, '{')
		if start < 0 {
			return names
		}

		end := strings.IndexByte(pattern[start:], '}')
		if end < 0 {
			return names
		}

		name := strings.TrimSuffix(pattern[start+1:start+end], "...")
		if name != "$" {
			names = append(names, name)
		}

		pattern = pattern[start+end+1:]
	}
}
