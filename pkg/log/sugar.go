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

package log

// 包级快捷方法，统一走全局 sugar，键值对形式优先

func Info(args ...any) { GetLogger().Info(args...) }

func Debugw(msg string, keysAndValues ...any) { GetLogger().Debugw(msg, keysAndValues...) }

func Infow(msg string, keysAndValues ...any) { GetLogger().Infow(msg, keysAndValues...) }

func Warnw(msg string, keysAndValues ...any) { GetLogger().Warnw(msg, keysAndValues...) }

func Errorw(msg string, keysAndValues ...any) { GetLogger().Errorw(msg, keysAndValues...) }
