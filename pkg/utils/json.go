package utils

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJson serializa in com indentação, para saída de terminal
func PrettyJson(in any) (string, error) {
	if raw, ok := in.([]byte); ok {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return "", err
		}
		in = decoded
	}

	out, err := json.MarshalIndent(in, "", "\t")
	if err != nil {
		return "", err
	}

	return string(out), nil
}
