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

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/echovault/zsetdb/internal"
	"github.com/echovault/zsetdb/internal/config"
	"github.com/echovault/zsetdb/zsetdb"
)

func main() {
	conf, err := config.GetConfig()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := zsetdb.NewZSetDB(
		zsetdb.WithContext(ctx),
		zsetdb.WithConfig(conf),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer server.ShutDown()

	cancelCh := make(chan os.Signal, 1)
	signal.Notify(cancelCh, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	fmt.Print("> ")
	for {
		select {
		case <-cancelCh:
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if !run(server, line) {
				return
			}
			fmt.Print("> ")
		}
	}
}

// run executes one input line and prints the reply. It returns false when the session should end.
func run(server *zsetdb.ZSetDB, line string) bool {
	cmd, err := internal.Tokenize(line)
	if err != nil {
		fmt.Printf("(error) %v\n", err)
		return true
	}
	if len(cmd) == 0 {
		return true
	}

	res, err := server.Do(cmd...)
	if errors.Is(err, io.EOF) {
		return false
	}
	if err != nil {
		fmt.Printf("(error) %v\n", err)
		return true
	}

	reply, err := internal.FormatReply(res)
	if err != nil {
		fmt.Print(string(res))
		return true
	}
	fmt.Println(reply)
	return true
}
