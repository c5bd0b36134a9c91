package userauth

import (
	"bytes"
	"encoding/json"
	"mime"
	"mime/multipart"
	"net/url"
	"strings"

	"github.com/goliatone/go-router"
)

const (
	headerContentType = "Content-Type"
	mimeJSON          = "application/json"
	mimeForm          = "application/x-www-form-urlencoded"
	mimeMultipart     = "multipart/form-data"

	maxMultipartMemory = 1 << 20
)

// TokenExtractor pulls a candidate token out of one request location.
// It returns ErrMissingCredential when the location holds no token.
type TokenExtractor func(ctx router.Context) (string, error)

// DefaultExtractors returns the fixed lookup chain:
// body, query, route param, custom header, authorization scheme, cookie.
// Explicit request parameters win over headers and cookies so a query
// token can override a session cookie.
func DefaultExtractors(cfg GateConfig) []TokenExtractor {
	cfg = cfg.withDefaults()
	return []TokenExtractor{
		FromBody(cfg.BodyField),
		FromQuery(cfg.QueryParam),
		FromParam(cfg.RouteParam),
		FromHeader(cfg.Header),
		FromAuthHeader(cfg.AuthHeader, cfg.AuthSchemes...),
		FromCookie(cfg.Cookie),
	}
}

// ExtractToken runs extractors in order and returns the first token found
func ExtractToken(ctx router.Context, extractors []TokenExtractor) (string, error) {
	for _, extractor := range extractors {
		if extractor == nil {
			continue
		}
		if raw, err := extractor(ctx); raw != "" && err == nil {
			return raw, nil
		}
	}
	return "", ErrMissingCredential
}

// FromBody reads field from a JSON object body or a form body. Only the raw
// body is inspected, FormValue would also match the query string.
func FromBody(field string) TokenExtractor {
	return func(ctx router.Context) (string, error) {
		body := ctx.Body()
		if field == "" || len(body) == 0 {
			return "", ErrMissingCredential
		}

		mediaType, params, err := mime.ParseMediaType(ctx.GetString(headerContentType, ""))
		if err != nil {
			return "", ErrMissingCredential
		}

		switch mediaType {
		case mimeJSON:
			payload := map[string]any{}
			if err := json.Unmarshal(body, &payload); err != nil {
				return "", ErrMissingCredential
			}
			return nonEmpty(payload[field])

		case mimeForm:
			values, err := url.ParseQuery(string(body))
			if err != nil {
				return "", ErrMissingCredential
			}
			return nonEmpty(values.Get(field))

		case mimeMultipart:
			boundary := params["boundary"]
			if boundary == "" {
				return "", ErrMissingCredential
			}
			form, err := multipart.NewReader(bytes.NewReader(body), boundary).ReadForm(maxMultipartMemory)
			if err != nil {
				return "", ErrMissingCredential
			}
			defer form.RemoveAll()
			if len(form.Value[field]) == 0 {
				return "", ErrMissingCredential
			}
			return nonEmpty(form.Value[field][0])
		}

		return "", ErrMissingCredential
	}
}

// FromQuery returns a function that extracts token from the query string.
func FromQuery(param string) TokenExtractor {
	return func(ctx router.Context) (string, error) {
		return nonEmpty(ctx.Query(param, ""))
	}
}

// FromParam returns a function that extracts token from the url param string.
func FromParam(param string) TokenExtractor {
	return func(ctx router.Context) (string, error) {
		return nonEmpty(ctx.Param(param))
	}
}

// FromHeader reads the raw value of a dedicated header
func FromHeader(header string) TokenExtractor {
	return func(ctx router.Context) (string, error) {
		return nonEmpty(ctx.GetString(header, ""))
	}
}

// FromAuthHeader reads header and returns what follows the first matching
// scheme, e.g. "Bearer <token>". Scheme matching is case insensitive.
func FromAuthHeader(header string, schemes ...string) TokenExtractor {
	return func(ctx router.Context) (string, error) {
		a := strings.TrimSpace(ctx.GetString(header, ""))
		for _, scheme := range schemes {
			scheme = strings.TrimSpace(scheme)
			l := len(scheme)
			if l == 0 {
				continue
			}
			if len(a) > l+1 && strings.EqualFold(a[:l], scheme) && a[l] == ' ' {
				return nonEmpty(strings.TrimSpace(a[l:]))
			}
		}
		return "", ErrMissingCredential
	}
}

// FromCookie returns a function that extracts token from the named cookie.
func FromCookie(name string) TokenExtractor {
	return func(ctx router.Context) (string, error) {
		return nonEmpty(ctx.Cookies(name))
	}
}

func nonEmpty(value any) (string, error) {
	token, _ := value.(string)
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingCredential
	}
	return token, nil
}
