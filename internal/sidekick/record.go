package sidekick

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// Extra holds fields read from storage that the typed record does not model.
// They are written back verbatim on encode so older or newer data survives a
// load/save cycle.
type Extra map[string]json.RawMessage

// Clone returns an independent copy of e.
func (e Extra) Clone() Extra {
	if e == nil {
		return nil
	}
	out := make(Extra, len(e))
	for k, v := range e {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

var errNotObject = errors.New("not a JSON object")

var (
	extraType   = reflect.TypeOf(Extra(nil))
	rawType     = reflect.TypeOf(json.RawMessage(nil))
	recordCache sync.Map // reflect.Type -> *recordLayout
)

type recordField struct {
	index     int
	name      string
	omitEmpty bool
}

type recordLayout struct {
	fields []recordField
	byName map[string]int // JSON name -> position in fields
	extra  int            // struct index of the Extra field, -1 if none
}

func layoutOf(t reflect.Type) *recordLayout {
	if cached, ok := recordCache.Load(t); ok {
		return cached.(*recordLayout)
	}
	l := &recordLayout{
		byName: make(map[string]int),
		extra:  -1,
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Type == extraType {
			l.extra = i
			continue
		}
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		l.byName[name] = len(l.fields)
		l.fields = append(l.fields, recordField{
			index:     i,
			name:      name,
			omitEmpty: strings.Contains(opts, "omitempty"),
		})
	}
	recordCache.Store(t, l)
	return l
}

// decodeRecord merges the JSON object in data into the struct pointed to by
// dst. Whatever dst already holds acts as the defaults: a member that is
// null, or whose value does not decode into the field's type, leaves the
// field as it was. Member names match exactly. Sequences are decoded element by element and elements
// that do not decode are dropped. Members without a field are collected into
// dst's Extra field. Only a non-object input is an error.
func decodeRecord(data []byte, dst any) error {
	if !isJSONObject(data) {
		return errNotObject
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}

	v := reflect.ValueOf(dst).Elem()
	l := layoutOf(v.Type())
	var extra Extra
	for key, raw := range members {
		pos, ok := l.byName[key]
		if !ok {
			if extra == nil {
				extra = make(Extra)
			}
			extra[key] = compactRaw(raw)
			continue
		}
		decodeLenient(raw, v.Field(l.fields[pos].index))
	}
	for _, f := range l.fields {
		fv := v.Field(f.index)
		if !f.omitEmpty && fv.Kind() == reflect.Slice && fv.IsNil() && fv.Type() != rawType {
			fv.Set(reflect.MakeSlice(fv.Type(), 0, 0))
		}
	}
	if l.extra >= 0 {
		v.Field(l.extra).Set(reflect.ValueOf(extra))
	}
	return nil
}

// decodeLenient decodes raw into dst, leaving dst untouched on failure.
func decodeLenient(raw json.RawMessage, dst reflect.Value) bool {
	if isJSONNull(raw) {
		return false
	}
	if dst.Kind() == reflect.Slice && dst.Type() != rawType && dst.Type().Elem().Kind() != reflect.Uint8 {
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return false
		}
		out := reflect.MakeSlice(dst.Type(), 0, len(elems))
		for _, elem := range elems {
			if isJSONNull(elem) {
				continue
			}
			item := reflect.New(dst.Type().Elem())
			if err := json.Unmarshal(elem, item.Interface()); err != nil {
				continue
			}
			out = reflect.Append(out, item.Elem())
		}
		dst.Set(out)
		return true
	}
	tmp := reflect.New(dst.Type())
	if err := json.Unmarshal(raw, tmp.Interface()); err != nil {
		return false
	}
	dst.Set(tmp.Elem())
	return true
}

// encodeRecord encodes the struct src as a JSON object with its Extra members
// folded in. Typed fields win over extra members with the same name. Nil
// sequences are written as empty arrays unless the field is omitempty.
func encodeRecord(src any) ([]byte, error) {
	v := reflect.ValueOf(src)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	l := layoutOf(v.Type())

	members := make(map[string]json.RawMessage, len(l.fields))
	for _, f := range l.fields {
		fv := v.Field(f.index)
		if f.omitEmpty && isEmptyValue(fv) {
			continue
		}
		if fv.Kind() == reflect.Slice && fv.IsNil() && fv.Type() != rawType {
			members[f.name] = json.RawMessage("[]")
			continue
		}
		data, err := json.Marshal(fv.Interface())
		if err != nil {
			return nil, fmt.Errorf("encoding field %q: %w", f.name, err)
		}
		members[f.name] = data
	}
	if l.extra >= 0 {
		extra := v.Field(l.extra).Interface().(Extra)
		for k, raw := range extra {
			if _, ok := members[k]; ok {
				continue
			}
			if !json.Valid(raw) {
				return nil, fmt.Errorf("extra field %q holds invalid JSON", k)
			}
			members[k] = raw
		}
	}
	return marshalMembers(members), nil
}

// marshalMembers writes members as an object with keys in sorted order.
func marshalMembers(members map[string]json.RawMessage) []byte {
	keys := make([]string, 0, len(members))
	for k := range members {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, _ := json.Marshal(k)
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(members[k])
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}

func compactRaw(v json.RawMessage) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, v); err != nil {
		return append(json.RawMessage(nil), v...)
	}
	return buf.Bytes()
}

func isJSONObject(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '{'
}

func isJSONNull(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) == 0 || bytes.Equal(data, []byte("null"))
}
