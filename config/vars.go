package config

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// VarPair is one resolved variable override.
type VarPair struct {
	Key   string
	Value string
}

// VarPairs preserves the order overrides were declared in. Keys are unique;
// the last write wins on duplicates within the same input.
type VarPairs []VarPair

// ResolveVarOverrides turns the raw var_overrides input into ordered
// key/value pairs plus any malformed-line diagnostics. The input is either a
// single JSON object with scalar values or newline-separated key=value lines.
// The two formats are mutually exclusive: input that is not a valid JSON
// object is always interpreted as key=value, never partially as both.
func ResolveVarOverrides(raw string) (VarPairs, []string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	if pairs, ok := parseJSONObject(trimmed); ok {
		return pairs, nil
	}
	return parseKeyValueLines(trimmed)
}

// parseJSONObject decodes a JSON object token by token so that document order
// survives; unmarshalling into a map would lose it.
func parseJSONObject(input string) (VarPairs, bool) {
	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil, false
	}

	var pairs VarPairs
	index := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, false
		}

		valueTok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		var value string
		switch v := valueTok.(type) {
		case string:
			value = v
		case json.Number:
			value = v.String()
		case bool:
			value = strconv.FormatBool(v)
		default:
			// nested objects, arrays and null are not scalar overrides
			return nil, false
		}

		if at, dup := index[key]; dup {
			pairs[at].Value = value
			continue
		}
		index[key] = len(pairs)
		pairs = append(pairs, VarPair{Key: key, Value: value})
	}

	if tok, err := dec.Token(); err != nil || tok != json.Delim('}') {
		return nil, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}
	return pairs, true
}

func parseKeyValueLines(input string) (VarPairs, []string) {
	var pairs VarPairs
	var problems []string
	index := make(map[string]int)

	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			problems = append(problems, fmt.Sprintf("Invalid var_override format: %s", line))
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if at, dup := index[key]; dup {
			pairs[at].Value = value
			continue
		}
		index[key] = len(pairs)
		pairs = append(pairs, VarPair{Key: key, Value: value})
	}
	return pairs, problems
}

// Flags renders the pairs as -var arguments in declaration order.
func (p VarPairs) Flags() []string {
	flags := make([]string, 0, len(p))
	for _, pair := range p {
		flags = append(flags, fmt.Sprintf("-var=%s=%s", pair.Key, pair.Value))
	}
	return flags
}

// VarFileFlags renders -var-file arguments preserving file order; later files
// override earlier ones when terraform applies them.
func VarFileFlags(files []string) []string {
	flags := make([]string, 0, len(files))
	for _, name := range files {
		flags = append(flags, "-var-file="+name)
	}
	return flags
}
