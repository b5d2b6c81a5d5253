package service

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/nurpe/contracts-admin/internal/apiclient"
	"github.com/nurpe/contracts-admin/internal/model"
)

type SearchParams struct {
	Page   int
	Size   int
	Query  string
	Status string
}

func (p SearchParams) values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(p.Page))
	if p.Size > 0 {
		v.Set("size", strconv.Itoa(p.Size))
	}
	if q := strings.TrimSpace(p.Query); q != "" {
		v.Set("q", q)
	}
	if p.Status != "" {
		v.Set("status", p.Status)
	}
	return v
}

type ContractService struct {
	crud crud[model.Contract, model.ContractPayload]
}

func NewContractService(api API) *ContractService {
	return &ContractService{crud: crud[model.Contract, model.ContractPayload]{api: api, base: "/contracts"}}
}

func (s *ContractService) List(ctx context.Context) ([]model.Contract, error) {
	return s.crud.list(ctx)
}

func (s *ContractService) Get(ctx context.Context, id int64) (*model.Contract, error) {
	return s.crud.get(ctx, id)
}

func (s *ContractService) Create(ctx context.Context, payload model.ContractPayload) (*model.Contract, error) {
	return s.crud.create(ctx, payload)
}

func (s *ContractService) Update(ctx context.Context, id int64, payload model.ContractPayload) (*model.Contract, error) {
	return s.crud.update(ctx, id, payload)
}

func (s *ContractService) Delete(ctx context.Context, id int64) error {
	return s.crud.delete(ctx, id)
}

func (s *ContractService) Search(ctx context.Context, params SearchParams) (*model.Page[model.Contract], error) {
	var out model.Page[model.Contract]
	if err := s.crud.api.Get(ctx, "/contracts/search", params.values(), &out); err != nil {
		return nil, translate(err)
	}
	if out.Content == nil {
		out.Content = []model.Contract{}
	}
	return &out, nil
}

func (s *ContractService) Expiring(ctx context.Context, days int) ([]model.Contract, error) {
	q := url.Values{}
	q.Set("days", strconv.Itoa(days))
	var out []model.Contract
	if err := s.crud.api.Get(ctx, "/contracts/expiring", q, &out); err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (s *ContractService) Stats(ctx context.Context) (*model.ContractStats, error) {
	var out model.ContractStats
	if err := s.crud.api.Get(ctx, "/contracts/stats", nil, &out); err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (s *ContractService) StatsByArea(ctx context.Context) ([]model.AreaCount, error) {
	var out []model.AreaCount
	if err := s.crud.api.Get(ctx, "/contracts/stats/by-area", nil, &out); err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (s *ContractService) Timeline(ctx context.Context) ([]model.TimelinePoint, error) {
	var out []model.TimelinePoint
	if err := s.crud.api.Get(ctx, "/contracts/stats/timeline", nil, &out); err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (s *ContractService) TopManagers(ctx context.Context) ([]model.ManagerCount, error) {
	var out []model.ManagerCount
	if err := s.crud.api.Get(ctx, "/contracts/stats/top-managers", nil, &out); err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (s *ContractService) ExportExcel(ctx context.Context, params SearchParams) (*apiclient.Download, error) {
	return s.export(ctx, "/contracts/export/excel", params, "contracts.xlsx")
}

func (s *ContractService) ExportPDF(ctx context.Context, params SearchParams) (*apiclient.Download, error) {
	return s.export(ctx, "/contracts/export/pdf", params, "contracts.pdf")
}

func (s *ContractService) export(ctx context.Context, path string, params SearchParams, fallbackName string) (*apiclient.Download, error) {
	q := params.values()
	q.Del("page")
	q.Del("size")
	dl, err := s.crud.api.Download(ctx, path, q)
	if err != nil {
		return nil, translate(err)
	}
	if dl.FileName == "" {
		dl.FileName = fallbackName
	}
	return dl, nil
}
