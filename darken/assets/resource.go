package assets

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// Origin classes a source locator the way a renderer's security model
// would: inline data belongs to the page, files under the page root share
// its origin, readable files elsewhere are another origin, and remote
// schemes are unreachable without network access.
type Origin int

const (
	OriginInline Origin = iota
	OriginSame
	OriginCross
	OriginRemote
)

func (o Origin) String() string {
	switch o {
	case OriginInline:
		return "inline"
	case OriginSame:
		return "same-origin"
	case OriginCross:
		return "cross-origin"
	case OriginRemote:
		return "remote"
	}
	return "unknown"
}

// IsInline reports whether a source locator is a data URI, decodable
// without touching the filesystem.
func IsInline(src string) bool {
	return strings.HasPrefix(src, "data:")
}

// decodeDataURI extracts the payload bytes of a data: URI.
func decodeDataURI(uri string) ([]byte, error) {
	rest := strings.TrimPrefix(uri, "data:")
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URI")
	}
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 payload: %w", err)
		}
		return data, nil
	}
	decoded, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to unescape payload: %w", err)
	}
	return []byte(decoded), nil
}
