package api

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"fmt"
	"io"
)

// decodePayload decodes base64 content, then gunzips it when encoding is "gzip".
func decodePayload(data, encoding string) ([]byte, error) {
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 data: %w", err)
	}

	switch encoding {
	case "", "none":
		return decoded, nil
	case "gzip":
		return decompressGzip(decoded)
	default:
		return nil, fmt.Errorf("unsupported encoding: %s", encoding)
	}
}

func decompressGzip(data []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid gzip data: %w", err)
	}
	defer reader.Close()

	out, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("invalid gzip data: %w", err)
	}
	return out, nil
}
