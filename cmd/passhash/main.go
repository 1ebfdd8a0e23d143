// passhash 生成管理员口令的 bcrypt 哈希，输出写入 auth.passkey_hash
//
//	go run ./cmd/passhash <passkey>
//	echo -n <passkey> | go run ./cmd/passhash
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/weiwangfds/easterblog/internal/service/auth"
)

func main() {
	passkey, err := readPasskey(os.Args[1:], os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "passhash:", err)
		os.Exit(2)
	}

	hash, err := auth.HashPasskey(passkey)
	if err != nil {
		fmt.Fprintln(os.Stderr, "passhash:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}

// readPasskey 优先使用命令行参数，否则读取标准输入的第一行
func readPasskey(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	passkey := strings.TrimRight(line, "\r\n")
	if passkey == "" {
		return "", fmt.Errorf("usage: passhash <passkey>")
	}
	return passkey, nil
}
