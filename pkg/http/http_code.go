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

package http

var (
	Failed                        = failed(500, "Request failed")
	RequestParameterParsingFailed = failed(5001, "Request parameter parsing failed")

	// Unauthorized 401
	Unauthorized         = failed(4401, "Unauthorized")
	AuthorizationEmpty   = failed(4404, "Authorization is empty")
	InvalidToken         = failed(4405, "Invalid token")
	TokenBeEmpty         = failed(4406, "Token cannot be empty")
	TokenExpired         = failed(4407, "Token is expired")
	TokenFormatIncorrect = failed(4408, "Token format is incorrect")

	// BadRequest 400
	BadRequest      = failed(4000, "Bad request")
	ValidationError = failed(4001, "Validation failed")
	NotFound        = failed(4004, "Not found")

	// Forbidden 403
	Forbidden        = failed(4030, "Forbidden")
	PermissionDenied = failed(4031, "Permission denied")
	StatusProtected  = failed(4032, "Status of this account cannot be changed")

	// Conflict 409
	StatusChangePending = failed(4091, "Status change already in progress")

	InternalError = failed(5000, "Internal error, please contact the administrator")

	AccountNotExist     = failed(4041, "Account does not exist")
	AccountAlreadyExist = failed(4042, "Account already exists")
	ViewNotExist        = failed(4043, "Schema view does not exist")
	FormNotExist        = failed(4044, "Schema form does not exist")
	MfApiNotExist       = failed(4045, "Api does not exist")

	StatusUpdateFailed = failed(5101, "Status update failed")
	LookupFailed       = failed(5102, "Lookup failed")
)

var (
	Success = success(200, "Request Success")
)

// failed 构造函数
func failed(code int, msg string) *Response {
	return &Response{
		Code: code,
		Msg:  msg,
	}
}

// success 构造函数
func success(code int, msg string) *Response {
	return &Response{
		Code: code,
		Msg:  msg,
	}
}
