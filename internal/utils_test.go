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
	"testing"

	"github.com/go-test/deep"
)

func Test_Tokenize(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{name: "1. Plain tokens", line: "ZADD key 1 member", want: []string{"ZADD", "key", "1", "member"}},
		{name: "2. Repeated spaces are ignored", line: "  ZCARD   key  ", want: []string{"ZCARD", "key"}},
		{name: "3. Quoted token keeps its spaces", line: `ZADD key 1 "two words"`, want: []string{"ZADD", "key", "1", "two words"}},
		{name: "4. Blank line", line: "   ", want: []string{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Tokenize(test.line)
			if err != nil {
				t.Fatal(err)
			}
			if diff := deep.Equal(got, test.want); diff != nil {
				t.Error(diff)
			}
		})
	}
}

func Test_DecodeEncodedCommand(t *testing.T) {
	cmd := []string{"ZRANGE", "key", "(1", "+inf", "BYSCORE"}
	got, err := Decode(EncodeCommand(cmd))
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(got, cmd); diff != nil {
		t.Error(diff)
	}
}

func Test_ParseMemory(t *testing.T) {
	tests := []struct {
		memory  string
		want    uint64
		wantErr bool
	}{
		{memory: "1kb", want: 1024},
		{memory: "100mb", want: 100 * 1024 * 1024},
		{memory: "2GB", want: 2 * 1024 * 1024 * 1024},
		{memory: "10xb", wantErr: true},
		{memory: "mb", wantErr: true},
		{memory: "onemb", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.memory, func(t *testing.T) {
			got, err := ParseMemory(test.memory)
			if (err != nil) != test.wantErr {
				t.Fatalf("ParseMemory(%q) error = %v, wantErr %v", test.memory, err, test.wantErr)
			}
			if got != test.want {
				t.Errorf("ParseMemory(%q) = %d, want %d", test.memory, got, test.want)
			}
		})
	}
}

func Test_IsMaxMemoryExceeded(t *testing.T) {
	if IsMaxMemoryExceeded(1<<40, 0) {
		t.Error("a zero limit must never be exceeded")
	}
	if IsMaxMemoryExceeded(99, 100) {
		t.Error("99 bytes must fit in a 100 byte limit")
	}
	if !IsMaxMemoryExceeded(100, 100) {
		t.Error("reaching the limit must count as exceeded")
	}
}

func Test_FormatReply(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{name: "1. Integer", reply: ":3\r\n", want: "(integer) 3"},
		{name: "2. Null", reply: "$-1\r\n", want: "(nil)"},
		{name: "3. Bulk string", reply: "$3\r\n2.5\r\n", want: `"2.5"`},
		{name: "4. Simple string", reply: "+OK\r\n", want: "OK"},
		{name: "5. Empty array", reply: "*0\r\n", want: "(empty array)"},
		{name: "6. Array", reply: "*2\r\n$1\r\na\r\n$1\r\n1\r\n", want: "1) \"a\"\n2) \"1\""},
		{name: "7. Nested array", reply: "*2\r\n$1\r\n0\r\n*1\r\n$1\r\nb\r\n", want: "1) \"0\"\n2) 1) \"b\""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := FormatReply([]byte(test.reply))
			if err != nil {
				t.Fatal(err)
			}
			if got != test.want {
				t.Errorf("expected %q, got %q", test.want, got)
			}
		})
	}
}

func Test_ParseResponses(t *testing.T) {
	scores, err := ParseNullableStringArrayResponse([]byte("*2\r\n$1\r\n1\r\n$-1\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 2 || scores[0] == nil || *scores[0] != "1" || scores[1] != nil {
		t.Errorf("unexpected nullable array %v", scores)
	}

	cursor, elements, err := ParseScanResponse([]byte("*2\r\n$1\r\n4\r\n*2\r\n$1\r\na\r\n$1\r\n1\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cursor != 4 {
		t.Errorf("expected cursor 4, got %d", cursor)
	}
	if diff := deep.Equal(elements, []string{"a", "1"}); diff != nil {
		t.Error(diff)
	}

	if _, err = ParseIntegerResponse([]byte("-ERR syntax error\r\n")); err == nil {
		t.Error("expected error reply to become an error")
	}
}
