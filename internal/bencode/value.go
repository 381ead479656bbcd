package bencode

// Value is a decoded bencoded value. It is implemented only by Integer,
// String, List and Dict.
type Value interface {
	isValue()
}

// Integer represents i<number>e
type Integer int64

// String represents <length>:<bytes>. The bytes are not required to be text.
type String []byte

// List represents l<values>e
type List []Value

// Dict represents d<key-value pairs>e. Keys are valid UTF-8.
type Dict map[string]Value

func (Integer) isValue() {}
func (String) isValue()  {}
func (List) isValue()    {}
func (Dict) isValue()    {}

// Int returns the integer stored under key. ok is false when the key is
// absent or holds another kind of value.
func (d Dict) Int(key string) (int64, bool) {
	v, ok := d[key].(Integer)
	return int64(v), ok
}

// Bytes returns the byte string stored under key.
func (d Dict) Bytes(key string) ([]byte, bool) {
	v, ok := d[key].(String)
	return []byte(v), ok
}

// Text returns the byte string stored under key as a Go string.
func (d Dict) Text(key string) (string, bool) {
	v, ok := d[key].(String)
	return string(v), ok
}

// List returns the list stored under key.
func (d Dict) List(key string) (List, bool) {
	v, ok := d[key].(List)
	return v, ok
}

// Dict returns the dictionary stored under key.
func (d Dict) Dict(key string) (Dict, bool) {
	v, ok := d[key].(Dict)
	return v, ok
}
