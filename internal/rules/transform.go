package rules

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// TransformType names a stateless text rewrite applied by transform
// actions. Transforms never mutate the entry in place; applying the
// transformed copy is owned by the caller.
type TransformType string

const (
	TransformUppercase    TransformType = "uppercase"
	TransformLowercase    TransformType = "lowercase"
	TransformTrim         TransformType = "trim"
	TransformBase64Encode TransformType = "base64_encode"
	TransformBase64Decode TransformType = "base64_decode"
	TransformURLEncode    TransformType = "url_encode"
	TransformURLDecode    TransformType = "url_decode"
)

// Transforms lists all supported transform types.
var Transforms = []TransformType{
	TransformUppercase,
	TransformLowercase,
	TransformTrim,
	TransformBase64Encode,
	TransformBase64Decode,
	TransformURLEncode,
	TransformURLDecode,
}

// ValidTransform reports whether t is a supported transform.
func ValidTransform(t TransformType) bool {
	for _, known := range Transforms {
		if t == known {
			return true
		}
	}
	return false
}

// ApplyTransform computes the rewritten content for a transform type.
func ApplyTransform(t TransformType, content string) (string, error) {
	switch t {
	case TransformUppercase:
		return strings.ToUpper(content), nil
	case TransformLowercase:
		return strings.ToLower(content), nil
	case TransformTrim:
		return strings.TrimSpace(content), nil
	case TransformBase64Encode:
		return base64.StdEncoding.EncodeToString([]byte(content)), nil
	case TransformBase64Decode:
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(content))
		if err != nil {
			return "", fmt.Errorf("base64 decode: %w", err)
		}
		return string(decoded), nil
	case TransformURLEncode:
		return url.QueryEscape(content), nil
	case TransformURLDecode:
		decoded, err := url.QueryUnescape(content)
		if err != nil {
			return "", fmt.Errorf("url decode: %w", err)
		}
		return decoded, nil
	default:
		return "", fmt.Errorf("unknown transform: %s", t)
	}
}
