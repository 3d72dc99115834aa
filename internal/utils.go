// Copyright 2024 Kelvin Clement Mwinuka
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package internal

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/echovault/zsetdb/internal/constants"
	"github.com/tidwall/resp"
)

func Decode(raw []byte) ([]string, error) {
	reader := resp.NewReader(bytes.NewReader(raw))

	value, _, err := reader.ReadValue()
	if err != nil {
		return nil, err
	}

	var res []string
	for i := 0; i < len(value.Array()); i++ {
		res = append(res, value.Array()[i].String())
	}

	return res, nil
}

func EncodeCommand(cmd []string) []byte {
	res := fmt.Sprintf("*%d\r\n", len(cmd))
	for _, token := range cmd {
		res += fmt.Sprintf("$%d\r\n%s\r\n", len(token), token)
	}
	return []byte(res)
}

// Tokenize splits a command line on spaces. Double quotes group a token that contains spaces.
func Tokenize(line string) ([]string, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return []string{}, nil
	}
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = ' '
	r.LazyQuotes = true
	tokens, err := r.Read()
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(tokens, func(s string) bool { return s == "" }), nil
}

func IsWriteCommand(command Command) bool {
	return slices.Contains(command.Categories, constants.WriteCategory)
}

func AbsInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// ParseMemory returns an integer representing the bytes in the memory string
func ParseMemory(memory string) (uint64, error) {
	if len(memory) < 3 {
		return 0, fmt.Errorf("memory value %q is too short, use a number followed by (kb, mb, gb, tb, pb)", memory)
	}
	// Parse memory strings such as "100mb", "16gb"
	memString := memory[0 : len(memory)-2]
	bytesInt, err := strconv.ParseInt(memString, 10, 64)
	if err != nil {
		return 0, err
	}

	memUnit := strings.ToLower(memory[len(memory)-2:])
	switch memUnit {
	case "kb":
		bytesInt *= 1024
	case "mb":
		bytesInt *= 1024 * 1024
	case "gb":
		bytesInt *= 1024 * 1024 * 1024
	case "tb":
		bytesInt *= 1024 * 1024 * 1024 * 1024
	case "pb":
		bytesInt *= 1024 * 1024 * 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("memory unit %s not supported, use (kb, mb, gb, tb, pb) ", memUnit)
	}

	return uint64(bytesInt), nil
}

// IsMaxMemoryExceeded checks whether the tracked memory usage is at or above the configured limit.
// A limit of 0 means there is no limit.
func IsMaxMemoryExceeded(memUsed int64, maxMemory uint64) bool {
	if maxMemory == 0 {
		return false
	}
	return memUsed >= 0 && uint64(memUsed) >= maxMemory
}

func readValue(b []byte) (resp.Value, error) {
	r := resp.NewReader(bytes.NewReader(b))
	v, _, err := r.ReadValue()
	if err != nil {
		return resp.Value{}, err
	}
	if v.Type().String() == "Error" {
		return resp.Value{}, errors.New(v.Error().Error())
	}
	return v, nil
}

func ParseNilResponse(b []byte) (bool, error) {
	v, err := readValue(b)
	if err != nil {
		return false, err
	}
	return v.IsNull(), nil
}

func ParseStringResponse(b []byte) (string, error) {
	v, err := readValue(b)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

func ParseIntegerResponse(b []byte) (int, error) {
	v, err := readValue(b)
	if err != nil {
		return 0, err
	}
	return v.Integer(), nil
}

func ParseFloatResponse(b []byte) (float64, error) {
	v, err := readValue(b)
	if err != nil {
		return 0, err
	}
	return v.Float(), nil
}

func ParseStringArrayResponse(b []byte) ([]string, error) {
	v, err := readValue(b)
	if err != nil {
		return nil, err
	}
	if v.IsNull() {
		return []string{}, nil
	}
	arr := make([]string, len(v.Array()))
	for i, e := range v.Array() {
		if e.IsNull() {
			arr[i] = ""
			continue
		}
		arr[i] = e.String()
	}
	return arr, nil
}

// ParseNullableStringArrayResponse keeps null elements as nil pointers.
func ParseNullableStringArrayResponse(b []byte) ([]*string, error) {
	v, err := readValue(b)
	if err != nil {
		return nil, err
	}
	if v.IsNull() {
		return []*string{}, nil
	}
	arr := make([]*string, len(v.Array()))
	for i, e := range v.Array() {
		if e.IsNull() {
			continue
		}
		s := e.String()
		arr[i] = &s
	}
	return arr, nil
}

func ParseIntegerArrayResponse(b []byte) ([]int, error) {
	v, err := readValue(b)
	if err != nil {
		return nil, err
	}
	if v.IsNull() {
		return []int{}, nil
	}
	arr := make([]int, len(v.Array()))
	for i, e := range v.Array() {
		if e.IsNull() {
			arr[i] = 0
			continue
		}
		arr[i] = e.Integer()
	}
	return arr, nil
}

// ParseScanResponse reads a [cursor, [elements...]] reply.
func ParseScanResponse(b []byte) (int, []string, error) {
	v, err := readValue(b)
	if err != nil {
		return 0, nil, err
	}
	if len(v.Array()) != 2 {
		return 0, nil, fmt.Errorf("malformed scan reply with %d elements", len(v.Array()))
	}
	cursor, err := strconv.Atoi(v.Array()[0].String())
	if err != nil {
		return 0, nil, err
	}
	elements := make([]string, len(v.Array()[1].Array()))
	for i, e := range v.Array()[1].Array() {
		elements[i] = e.String()
	}
	return cursor, elements, nil
}

// FormatReply renders a RESP reply the way redis-cli prints it.
func FormatReply(b []byte) (string, error) {
	r := resp.NewReader(bytes.NewReader(b))
	v, _, err := r.ReadValue()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	formatValue(&sb, v, "")
	return strings.TrimRight(sb.String(), "\n"), nil
}

func formatValue(sb *strings.Builder, v resp.Value, indent string) {
	switch {
	case v.IsNull():
		sb.WriteString("(nil)\n")
	case v.Type().String() == "Error":
		sb.WriteString("(error) " + v.Error().Error() + "\n")
	case v.Type().String() == "Integer":
		sb.WriteString("(integer) " + strconv.Itoa(v.Integer()) + "\n")
	case v.Type().String() == "SimpleString":
		sb.WriteString(v.String() + "\n")
	case v.Type().String() == "Array":
		if len(v.Array()) == 0 {
			sb.WriteString("(empty array)\n")
			return
		}
		for i, e := range v.Array() {
			if i > 0 {
				sb.WriteString(indent)
			}
			prefix := strconv.Itoa(i+1) + ") "
			sb.WriteString(prefix)
			formatValue(sb, e, indent+strings.Repeat(" ", len(prefix)))
		}
	default:
		sb.WriteString(strconv.Quote(v.String()) + "\n")
	}
}
