package shared

import "github.com/bytedance/sonic"

var jsonAPI = sonic.Config{
	UseNumber:            true,
	EscapeHTML:           false,
	SortMapKeys:          false,
	CompactMarshaler:     true,
	NoQuoteTextMarshaler: true,
	NoNullSliceOrMap:     true,
}.Froze()

// JSONMarshal is wired as the Fiber app's JSONEncoder and is also used by
// the result normalizer, so model output and API output go through the
// same frozen sonic configuration.
func JSONMarshal(v interface{}) ([]byte, error) {
	return jsonAPI.Marshal(v)
}

func JSONUnmarshal(data []byte, v interface{}) error {
	return jsonAPI.Unmarshal(data, v)
}
