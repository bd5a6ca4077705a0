// Copyright 2025 Arcade Team
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

package safe

import (
	"fmt"
	"runtime/debug"

	"github.com/go-arcade/console/pkg/log"
)

// Go 启动 goroutine，panic 会被记录而不会终止进程
func Go(f func()) {
	go func() { _ = Do(f) }()
}

// GoWith args 按值传入，避免循环变量被闭包共享
func GoWith[T any](f func(T), args T) {
	go func() { _ = Do(func() { f(args) }) }()
}

// Do 同步执行 f，panic 转为 error 返回
func Do(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("recovered from panic", "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	f()
	return nil
}
