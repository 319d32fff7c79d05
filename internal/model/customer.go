package model

import (
	"time"
)

// ==================== Customer 客户 ====================

// Customer 客户（收件人）
// email 唯一，CSV 导入与手工建单都以 email 做 upsert
type Customer struct {
	ID      int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string  `gorm:"size:255;not null" json:"name"`
	Company *string `gorm:"size:255" json:"company,omitempty"`
	Email   string  `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone   string  `gorm:"size:64" json:"phone"`

	// 地址
	StreetLine1 string  `gorm:"size:255" json:"street_line_1"`
	StreetLine2 *string `gorm:"size:255" json:"street_line_2,omitempty"`
	City        string  `gorm:"size:128" json:"city"`
	State       string  `gorm:"size:64" json:"state"`
	Zip         string  `gorm:"size:32" json:"zip"`
	Country     string  `gorm:"size:8;default:US" json:"country"`

	// 审计
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (*Customer) TableName() string {
	return "customers"
}

// ApplyUpdate 用最新提交覆盖可变字段（last-write-wins）
func (c *Customer) ApplyUpdate(latest *Customer) {
	c.Name = latest.Name
	c.Company = latest.Company
	c.Phone = latest.Phone
	c.StreetLine1 = latest.StreetLine1
	c.StreetLine2 = latest.StreetLine2
	c.City = latest.City
	c.State = latest.State
	c.Zip = latest.Zip
	c.Country = latest.Country
}
