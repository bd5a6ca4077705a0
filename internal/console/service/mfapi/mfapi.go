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

package mfapi

import (
	"context"

	"github.com/go-arcade/console/internal/console/model"
	"github.com/go-arcade/console/internal/console/repo"
	"github.com/go-arcade/console/pkg/id"
	"github.com/go-arcade/console/pkg/log"
)

type MfApiService struct {
	repo repo.IMfApiRepository
}

func NewMfApiService(mfApiRepo repo.IMfApiRepository) *MfApiService {
	return &MfApiService{repo: mfApiRepo}
}

func (ms *MfApiService) List(ctx context.Context, q *model.MfApiQuery) (*model.Page[model.MfApi], error) {
	if err := model.Validate(q); err != nil {
		return nil, err
	}
	q.Normalize()

	list, total, err := ms.repo.ListMfApis(ctx, q)
	if err != nil {
		log.Errorw("failed to list mf apis", "error", err)
		return nil, err
	}
	if list == nil {
		list = []model.MfApi{}
	}
	return &model.Page[model.MfApi]{List: list, Total: total, PageNum: q.PageNum, PageSize: q.PageSize}, nil
}

func (ms *MfApiService) Get(ctx context.Context, apiId string) (*model.MfApi, error) {
	return ms.repo.GetMfApi(ctx, apiId)
}

func (ms *MfApiService) Create(ctx context.Context, req *model.MfApiReq, operator string) (*model.MfApi, error) {
	if err := model.Validate(req); err != nil {
		return nil, err
	}

	api := &model.MfApi{ID: id.New(), CreateBy: operator}
	req.Apply(api)
	if err := ms.repo.CreateMfApi(ctx, api); err != nil {
		log.Errorw("failed to create mf api", "name", req.Name, "error", err)
		return nil, err
	}

	log.Infow("mf api created", "id", api.ID, "name", api.Name, "operator", operator)
	return api, nil
}

func (ms *MfApiService) Update(ctx context.Context, apiId string, req *model.MfApiReq) error {
	if err := model.Validate(req); err != nil {
		return err
	}
	if _, err := ms.repo.GetMfApi(ctx, apiId); err != nil {
		return err
	}
	if err := ms.repo.UpdateMfApi(ctx, apiId, req.Updates()); err != nil {
		log.Errorw("failed to update mf api", "id", apiId, "error", err)
		return err
	}
	return nil
}

// Delete 逻辑删除
func (ms *MfApiService) Delete(ctx context.Context, apiId string) error {
	if _, err := ms.repo.GetMfApi(ctx, apiId); err != nil {
		return err
	}
	if err := ms.repo.DeleteMfApi(ctx, apiId); err != nil {
		log.Errorw("failed to delete mf api", "id", apiId, "error", err)
		return err
	}
	log.Infow("mf api deleted", "id", apiId)
	return nil
}
