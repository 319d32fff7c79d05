package service

import (
	"context"
	"testing"

	"github.com/settlelinecompany-commits/shipping-aggregator/internal/api/dto"
	"github.com/settlelinecompany-commits/shipping-aggregator/internal/repository"
)

func TestCustomerCreateAndList(t *testing.T) {
	db := setupImportTestDB(t)
	svc := NewCustomerService(repository.NewCustomerRepository(db))
	ctx := context.Background()

	company := "Acme Corp"
	created, err := svc.Create(ctx, &dto.CustomerPayload{
		Name:        "John Doe",
		Company:     &company,
		Email:       "john@acme.com",
		Phone:       "555-0123",
		StreetLine1: "123 Main St",
		City:        "New York",
		State:       "NY",
		Zip:         "10001",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Country != "US" {
		t.Errorf("默认国家 = %q, want US", created.Country)
	}

	if _, err := svc.Create(ctx, &dto.CustomerPayload{
		Name: "Jane Roe", Email: "jane@other.com", Phone: "555-9999",
		StreetLine1: "9 Elm St", City: "Boston", State: "MA", Zip: "02101",
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// 搜索命中 name / email / company 任一
	customers, err := svc.List(ctx, repository.CustomerFilter{Search: "acme"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(customers) != 1 || customers[0].Email != "john@acme.com" {
		t.Errorf("搜索结果错误: %+v", customers)
	}

	all, err := svc.List(ctx, repository.CustomerFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("客户数 = %d, want 2", len(all))
	}
}

func TestCustomerCreate_DuplicateEmail(t *testing.T) {
	db := setupImportTestDB(t)
	svc := NewCustomerService(repository.NewCustomerRepository(db))
	ctx := context.Background()

	payload := &dto.CustomerPayload{
		Name: "John Doe", Email: "john@acme.com", Phone: "555-0123",
		StreetLine1: "123 Main St", City: "New York", State: "NY", Zip: "10001",
	}
	if _, err := svc.Create(ctx, payload); err != nil {
		t.Fatalf("首次创建失败: %v", err)
	}
	if _, err := svc.Create(ctx, payload); err == nil {
		t.Error("email 重复应触发唯一约束错误")
	}
}
