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

package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-arcade/console/internal/console/model"
	"github.com/go-arcade/console/internal/console/repo"
	"github.com/go-arcade/console/internal/console/service/permission"
	"github.com/go-arcade/console/internal/console/service/toggle"
	"github.com/go-arcade/console/internal/console/views"
	"github.com/go-arcade/console/pkg/id"
	"github.com/go-arcade/console/pkg/log"
	"github.com/go-arcade/console/pkg/schema"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAccountExists = errors.New("account already exists")
	// ErrFieldReadonly 修改了编辑表单中处于禁用状态的字段
	ErrFieldReadonly = errors.New("field is readonly")
)

// AccountRow 列表行，render 为各列的渲染结果
type AccountRow struct {
	*model.AccountRecord
	Render map[string]any `json:"render"`
}

type AccountService struct {
	repo    repo.IAccountRepository
	toggle  *toggle.Controller
	checker *permission.Checker
	view    *schema.ViewSchema
}

func NewAccountService(
	accountRepo repo.IAccountRepository,
	toggleCtl *toggle.Controller,
	checker *permission.Checker,
	registry *schema.Registry,
) (*AccountService, error) {
	view, err := registry.Get(views.ViewAccount)
	if err != nil {
		return nil, err
	}
	return &AccountService{
		repo:    accountRepo,
		toggle:  toggleCtl,
		checker: checker,
		view:    view,
	}, nil
}

// List 分页查询，同时计算每行的渲染结果
func (as *AccountService) List(ctx context.Context, q *model.AccountQuery, subject permission.Subject) (*model.Page[AccountRow], error) {
	if err := model.Validate(q); err != nil {
		return nil, err
	}
	q.Normalize()

	records, total, err := as.repo.ListAccounts(ctx, q)
	if err != nil {
		log.Errorw("failed to list accounts", "error", err)
		return nil, err
	}

	extras := views.Extras(subject)
	rows := make([]AccountRow, 0, len(records))
	for i := range records {
		rec := &records[i]
		rec.PendingStatus = as.toggle.Pending(rec.ID)
		rows = append(rows, AccountRow{
			AccountRecord: rec,
			Render:        schema.RenderRow(ctx, as.view.Columns, rec, rec.Values(), extras),
		})
	}
	return &model.Page[AccountRow]{
		List:     rows,
		Total:    total,
		PageNum:  q.PageNum,
		PageSize: q.PageSize,
	}, nil
}

func (as *AccountService) Get(ctx context.Context, accountId string) (*model.AccountRecord, error) {
	rec, err := as.repo.GetAccount(ctx, accountId)
	if err != nil {
		return nil, err
	}
	rec.PendingStatus = as.toggle.Pending(rec.ID)
	return rec, nil
}

func (as *AccountService) Create(ctx context.Context, req *model.CreateAccountReq, operator string) (*model.AccountRecord, error) {
	if err := model.Validate(req); err != nil {
		return nil, err
	}

	exists, err := as.repo.ExistsAccount(ctx, req.Account)
	if err != nil {
		log.Errorw("failed to check account", "account", req.Account, "error", err)
		return nil, err
	}
	if exists {
		return nil, ErrAccountExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	rec := model.NewAccountRecord(id.New(), req.Account)
	rec.Password = string(hashed)
	rec.Nickname = req.Nickname
	rec.Phone = req.Phone
	rec.Email = req.Email
	rec.Telephone = req.Telephone
	rec.Birthday = req.Birthday
	rec.Sex = *req.Sex
	rec.Status = *req.Status
	rec.OrgIds = req.OrgIds
	if req.RoleIds != nil {
		rec.RoleIds = req.RoleIds
	}
	rec.Remark = req.Remark

	if err := as.repo.CreateAccount(ctx, rec); err != nil {
		log.Errorw("failed to create account", "account", req.Account, "error", err)
		return nil, err
	}

	log.Infow("account created", "id", rec.ID, "account", rec.Account, "operator", operator)
	return rec, nil
}

// Update 修改账号；编辑表单对该记录禁用的字段不允许修改
func (as *AccountService) Update(ctx context.Context, accountId string, req *model.UpdateAccountReq, subject permission.Subject) error {
	if err := model.Validate(req); err != nil {
		return err
	}

	rec, err := as.repo.GetAccount(ctx, accountId)
	if err != nil {
		return err
	}

	touched := touchedFields(req)
	for _, st := range schema.EvaluateForm(as.view.EditForm, rec.Values()) {
		if st.Disabled && touched[st.Field] {
			return fmt.Errorf("%w: %s", ErrFieldReadonly, st.Field)
		}
	}

	updates := req.Updates()
	if len(updates) == 0 {
		return nil
	}
	if err := as.repo.UpdateAccount(ctx, accountId, updates); err != nil {
		log.Errorw("failed to update account", "id", accountId, "error", err)
		return err
	}

	// 角色变化后权限点缓存失效
	if req.RoleIds != nil {
		if err := as.checker.Invalidate(ctx, accountId); err != nil {
			log.Warnw("failed to invalidate permission cache", "id", accountId, "error", err)
		}
	}

	log.Infow("account updated", "id", accountId, "operator", subject.UserId)
	return nil
}

// ToggleStatus 切换状态，返回切换后的记录
func (as *AccountService) ToggleStatus(ctx context.Context, accountId string, checked bool, subject permission.Subject) (*model.AccountRecord, error) {
	rec, err := as.repo.GetAccount(ctx, accountId)
	if err != nil {
		return nil, err
	}
	if err := as.toggle.Toggle(ctx, rec, checked, subject); err != nil {
		return rec, err
	}
	return rec, nil
}

func touchedFields(req *model.UpdateAccountReq) map[string]bool {
	return map[string]bool{
		"nickname":  req.Nickname != nil,
		"phone":     req.Phone != nil,
		"email":     req.Email != nil,
		"telephone": req.Telephone != nil,
		"birthday":  req.Birthday != nil,
		"sex":       req.Sex != nil,
		"status":    req.Status != nil,
		"orgIds":    req.OrgIds != nil,
		"roleIds":   req.RoleIds != nil,
		"remark":    req.Remark != nil,
	}
}
