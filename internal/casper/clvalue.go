package casper

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
)

// CLTypeTag is the serialized tag of a CLType
type CLTypeTag byte

const (
	CLTypeTagBool      CLTypeTag = 0
	CLTypeTagI32       CLTypeTag = 1
	CLTypeTagI64       CLTypeTag = 2
	CLTypeTagU8        CLTypeTag = 3
	CLTypeTagU32       CLTypeTag = 4
	CLTypeTagU64       CLTypeTag = 5
	CLTypeTagU128      CLTypeTag = 6
	CLTypeTagU256      CLTypeTag = 7
	CLTypeTagU512      CLTypeTag = 8
	CLTypeTagUnit      CLTypeTag = 9
	CLTypeTagString    CLTypeTag = 10
	CLTypeTagKey       CLTypeTag = 11
	CLTypeTagURef      CLTypeTag = 12
	CLTypeTagOption    CLTypeTag = 13
	CLTypeTagList      CLTypeTag = 14
	CLTypeTagByteArray CLTypeTag = 15
	CLTypeTagResult    CLTypeTag = 16
	CLTypeTagMap       CLTypeTag = 17
	CLTypeTagTuple1    CLTypeTag = 18
	CLTypeTagTuple2    CLTypeTag = 19
	CLTypeTagTuple3    CLTypeTag = 20
	CLTypeTagAny       CLTypeTag = 21
	CLTypeTagPublicKey CLTypeTag = 22
)

var simpleTypeNames = map[CLTypeTag]string{
	CLTypeTagBool:      "Bool",
	CLTypeTagI32:       "I32",
	CLTypeTagI64:       "I64",
	CLTypeTagU8:        "U8",
	CLTypeTagU32:       "U32",
	CLTypeTagU64:       "U64",
	CLTypeTagU128:      "U128",
	CLTypeTagU256:      "U256",
	CLTypeTagU512:      "U512",
	CLTypeTagUnit:      "Unit",
	CLTypeTagString:    "String",
	CLTypeTagKey:       "Key",
	CLTypeTagURef:      "URef",
	CLTypeTagAny:       "Any",
	CLTypeTagPublicKey: "PublicKey",
}

// CLType describes the type of a CLValue. Only the simple types and Option are used by
// the invoice contract and native transfers.
type CLType struct {
	Tag   CLTypeTag
	Inner *CLType
}

// Bytes serializes the type descriptor
func (t CLType) Bytes() []byte {
	out := []byte{byte(t.Tag)}
	if t.Tag == CLTypeTagOption && t.Inner != nil {
		out = append(out, t.Inner.Bytes()...)
	}
	return out
}

// MarshalJSON renders simple types as their name and Option as {"Option": inner}
func (t CLType) MarshalJSON() ([]byte, error) {
	if t.Tag == CLTypeTagOption {
		if t.Inner == nil {
			return nil, fmt.Errorf("option type without inner type")
		}
		return json.Marshal(map[string]CLType{"Option": *t.Inner})
	}
	name, ok := simpleTypeNames[t.Tag]
	if !ok {
		return nil, fmt.Errorf("unsupported cl_type tag %d", t.Tag)
	}
	return json.Marshal(name)
}

// CLValue is a serialized value together with its type
type CLValue struct {
	Type   CLType
	Data   []byte
	Parsed interface{}
}

// Bytes serializes the value as u32-prefixed data followed by the type descriptor
func (v CLValue) Bytes() []byte {
	out := appendBytes(nil, v.Data)
	return append(out, v.Type.Bytes()...)
}

type clValueJSON struct {
	CLType CLType      `json:"cl_type"`
	Bytes  string      `json:"bytes"`
	Parsed interface{} `json:"parsed"`
}

func (v CLValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(clValueJSON{
		CLType: v.Type,
		Bytes:  hex.EncodeToString(v.Data),
		Parsed: v.Parsed,
	})
}

// U512Value builds a U512 value
func U512Value(amount *big.Int) CLValue {
	return CLValue{
		Type:   CLType{Tag: CLTypeTagU512},
		Data:   encodeU512(amount),
		Parsed: amount.String(),
	}
}

// U512FromUint64 builds a U512 value from a motes amount
func U512FromUint64(amount uint64) CLValue {
	return U512Value(new(big.Int).SetUint64(amount))
}

// U64Value builds a U64 value
func U64Value(v uint64) CLValue {
	return CLValue{
		Type:   CLType{Tag: CLTypeTagU64},
		Data:   encodeU64(v),
		Parsed: v,
	}
}

// StringValue builds a String value
func StringValue(s string) CLValue {
	return CLValue{
		Type:   CLType{Tag: CLTypeTagString},
		Data:   encodeString(s),
		Parsed: s,
	}
}

// AccountKeyValue builds a Key::Account value for the public key's account hash
func AccountKeyValue(pk PublicKey) CLValue {
	hash := pk.AccountHash()
	data := append([]byte{0x00}, hash[:]...)
	return CLValue{
		Type:   CLType{Tag: CLTypeTagKey},
		Data:   data,
		Parsed: map[string]string{"Account": pk.AccountHashString()},
	}
}

// PublicKeyValue builds a PublicKey value
func PublicKeyValue(pk PublicKey) CLValue {
	return CLValue{
		Type:   CLType{Tag: CLTypeTagPublicKey},
		Data:   pk.Bytes(),
		Parsed: pk.Hex(),
	}
}

// OptionU64Value builds an Option<U64>; nil encodes None
func OptionU64Value(v *uint64) CLValue {
	t := CLType{Tag: CLTypeTagOption, Inner: &CLType{Tag: CLTypeTagU64}}
	if v == nil {
		return CLValue{Type: t, Data: []byte{0x00}, Parsed: nil}
	}
	return CLValue{
		Type:   t,
		Data:   append([]byte{0x01}, encodeU64(*v)...),
		Parsed: strconv.FormatUint(*v, 10),
	}
}

// NamedArg is a single runtime argument
type NamedArg struct {
	Name  string
	Value CLValue
}

// MarshalJSON renders the argument as the ["name", value] pair the node expects
func (a NamedArg) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{a.Name, a.Value})
}

// RuntimeArgs is an ordered list of named arguments
type RuntimeArgs []NamedArg

// Bytes serializes the args as a u32 count followed by (name, value) pairs
func (args RuntimeArgs) Bytes() []byte {
	out := appendU32(nil, uint32(len(args)))
	for _, a := range args {
		out = appendString(out, a.Name)
		out = append(out, a.Value.Bytes()...)
	}
	return out
}

// MarshalJSON never renders null for empty args
func (args RuntimeArgs) MarshalJSON() ([]byte, error) {
	if args == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]NamedArg(args))
}
