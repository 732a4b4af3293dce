package utils

// PrettyJson serializa v com indentação; []byte é reindentado
func PrettyJson(v any) (string, error) {
	if raw, ok := v.([]byte); ok {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return "", err
		}
		v = decoded
	}

	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}

	return string(out), nil
}
